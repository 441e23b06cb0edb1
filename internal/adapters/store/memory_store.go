package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fuchs284/Cybersecurityproject/internal/core"
	"github.com/fuchs284/Cybersecurityproject/internal/utils"
)

// MemoryStore is an in-memory implementation of the DetectionStore
// interface. Detections do not survive the process; it backs tests and
// the no-persistence mode.
type MemoryStore struct {
	mu         sync.RWMutex
	detections []core.Detection
	snapshots  map[int64]string
	nextID     int64
	logger     *zap.Logger
	text       *utils.TextProcessor
	previewLen int
}

// NewMemoryStore creates a new in-memory detection store.
func NewMemoryStore(text *utils.TextProcessor, logger *zap.Logger, previewLen int) *MemoryStore {
	return &MemoryStore{
		snapshots:  make(map[int64]string),
		nextID:     1,
		logger:     logger,
		text:       text,
		previewLen: previewLen,
	}
}

// Record appends the detection and its feature snapshot.
func (s *MemoryStore) Record(ctx context.Context, d *core.Detection, features string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *d
	stored.ID = s.nextID
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	s.nextID++

	s.detections = append(s.detections, stored)
	s.snapshots[stored.ID] = features
	return stored.ID, nil
}

// History returns the limit most recent detections, most recent first.
func (s *MemoryStore) History(ctx context.Context, limit int) ([]core.DetectionSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.detections)
	if limit > n {
		limit = n
	}
	if limit < 0 {
		limit = 0
	}

	summaries := make([]core.DetectionSummary, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		d := s.detections[i]
		summaries = append(summaries, core.DetectionSummary{
			ID:         d.ID,
			CreatedAt:  d.CreatedAt,
			Prediction: d.Prediction,
			Confidence: d.Confidence,
			Preview:    s.text.Preview(d.Content, s.previewLen),
		})
	}
	return summaries, nil
}

// Snapshot returns the feature snapshot recorded for a detection.
func (s *MemoryStore) Snapshot(ctx context.Context, detectionID int64) (*core.FeatureSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	features, ok := s.snapshots[detectionID]
	if !ok {
		return nil, fmt.Errorf("no feature snapshot for detection %d", detectionID)
	}
	return &core.FeatureSnapshot{
		ID:          detectionID,
		DetectionID: detectionID,
		Features:    features,
	}, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
