package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fuchs284/Cybersecurityproject/internal/allowlist"
	"github.com/fuchs284/Cybersecurityproject/internal/utils"
)

// DetectorService is the core service for phishing detection. It composes
// the extractor, normalizer, pipeline and detection store, owns the single
// resident model for the process, and writes every prediction to the store.
type DetectorService struct {
	extractor  EmailExtractor
	normalizer TextNormalizer
	trainer    PipelineTrainer
	models     PipelineRepository
	samples    SampleSource
	store      DetectionStore
	allowlist  *allowlist.Checker
	text       *utils.TextProcessor
	logger     *zap.Logger

	maxBodySize int

	mu       sync.Mutex
	pipeline Pipeline
}

// NewDetectorService creates a new detector service.
func NewDetectorService(
	extractor EmailExtractor,
	normalizer TextNormalizer,
	trainer PipelineTrainer,
	models PipelineRepository,
	samples SampleSource,
	store DetectionStore,
	allow *allowlist.Checker,
	text *utils.TextProcessor,
	logger *zap.Logger,
	maxBodySize int,
) *DetectorService {
	return &DetectorService{
		extractor:   extractor,
		normalizer:  normalizer,
		trainer:     trainer,
		models:      models,
		samples:     samples,
		store:       store,
		allowlist:   allow,
		text:        text,
		logger:      logger,
		maxBodySize: maxBodySize,
	}
}

// Train fits a new pipeline from the labeled dataset at dataPath, persists
// it, and returns the held-out diagnostics. Nothing is persisted when the
// data cannot be loaded or the fit fails.
func (s *DetectorService) Train(ctx context.Context, dataPath string, splitRatio float64, seed int64) (*TrainingReport, error) {
	texts, labels, err := s.samples.Load(dataPath)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Loaded training data",
		zap.String("path", dataPath),
		zap.Int("rows", len(texts)))

	corpus := make([]string, len(texts))
	for i, raw := range texts {
		body, _ := s.extractor.Extract(raw)
		body = s.text.ProcessText(body, s.maxBodySize)
		corpus[i] = s.normalizer.Normalize(body)
	}

	pipeline, report, err := s.trainer.Train(corpus, labels, splitRatio, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to fit pipeline: %w", err)
	}

	if err := s.models.Save(pipeline); err != nil {
		return nil, fmt.Errorf("failed to persist model: %w", err)
	}

	s.mu.Lock()
	s.pipeline = pipeline
	s.mu.Unlock()

	s.logger.Info("Training complete",
		zap.Int("train_size", report.TrainSize),
		zap.Int("test_size", report.TestSize),
		zap.Float64("accuracy", report.Accuracy))

	return report, nil
}

// Predict classifies one raw email document. Every call writes a detection
// record; a failure to write is surfaced on the verdict, never as a failed
// classification.
func (s *DetectorService) Predict(ctx context.Context, rawEmail string) (*Verdict, error) {
	body, sender := s.extractor.Extract(rawEmail)

	// Allowlisted senders bypass the model entirely.
	if sender != "" && s.allowlist.IsAllowed(sender) {
		s.logger.Info("Skipping classification for allowlisted sender",
			zap.String("sender", sender))
		verdict := &Verdict{
			IsPhishing: false,
			Confidence: 1.0,
			ModelUsed:  "allowlist",
			AnalyzedAt: time.Now(),
		}
		s.record(ctx, rawEmail, verdict, EncodeFeatureSnapshot(nil))
		return verdict, nil
	}

	pipeline, err := s.ensurePipeline()
	if err != nil {
		return nil, err
	}

	body = s.text.ProcessText(body, s.maxBodySize)
	normalized := s.normalizer.Normalize(body)

	pred := pipeline.Predict(normalized)
	verdict := &Verdict{
		IsPhishing: pred.IsPhishing,
		Confidence: pred.Confidence,
		ModelUsed:  pred.ModelUsed,
		AnalyzedAt: time.Now(),
	}
	s.record(ctx, rawEmail, verdict, pred.Snapshot)
	return verdict, nil
}

// History returns the most recent detections, most recent first.
func (s *DetectorService) History(ctx context.Context, limit int) ([]DetectionSummary, error) {
	return s.store.History(ctx, limit)
}

// ensurePipeline loads the persisted model on first use and caches it for
// the process lifetime.
func (s *DetectorService) ensurePipeline() (Pipeline, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pipeline != nil {
		return s.pipeline, nil
	}
	pipeline, err := s.models.Load()
	if err != nil {
		if errors.Is(err, ErrModelNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	s.logger.Info("Loaded model artifact")
	s.pipeline = pipeline
	return pipeline, nil
}

// record writes the detection and its snapshot. A store failure is logged
// and carried on the verdict so callers can report it without losing the
// classification.
func (s *DetectorService) record(ctx context.Context, content string, verdict *Verdict, snapshot string) {
	prediction := LabelLegitimate
	if verdict.IsPhishing {
		prediction = LabelPhishing
	}
	d := &Detection{
		Content:    content,
		Prediction: prediction,
		Confidence: verdict.Confidence,
		CreatedAt:  verdict.AnalyzedAt,
	}
	id, err := s.store.Record(ctx, d, snapshot)
	if err != nil {
		verdict.StoreErr = fmt.Errorf("failed to record detection: %w", err)
		s.logger.Warn("Detection was not recorded", zap.Error(err))
		return
	}
	verdict.RecordID = id
}
