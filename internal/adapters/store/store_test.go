package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/fuchs284/Cybersecurityproject/internal/core"
	"github.com/fuchs284/Cybersecurityproject/internal/utils"
)

func testStores(t *testing.T) map[string]core.DetectionStore {
	t.Helper()
	text := utils.NewTextProcessor(zap.NewNop())

	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "detections.db"), text, zap.NewNop(), 40)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}

	return map[string]core.DetectionStore{
		"memory": NewMemoryStore(text, zap.NewNop(), 40),
		"sqlite": sqlite,
	}
}

func recordN(t *testing.T, s core.DetectionStore, n int) []int64 {
	t.Helper()
	base := time.Now().Add(-time.Minute)
	ids := make([]int64, n)
	for i := 0; i < n; i++ {
		d := &core.Detection{
			Content:    fmt.Sprintf("email body number %d", i),
			Prediction: i % 2,
			Confidence: 0.5 + float64(i)/100,
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		}
		id, err := s.Record(context.Background(), d, core.EncodeFeatureSnapshot([]float64{0, float64(i), 0.5}))
		if err != nil {
			t.Fatalf("Record %d failed: %v", i, err)
		}
		ids[i] = id
	}
	return ids
}

func TestStoreRecordAndHistory(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()

			ids := recordN(t, s, 5)
			for i := 1; i < len(ids); i++ {
				if ids[i] <= ids[i-1] {
					t.Errorf("ids not strictly increasing: %v", ids)
				}
			}

			all, err := s.History(context.Background(), 5)
			if err != nil {
				t.Fatalf("History failed: %v", err)
			}
			if len(all) != 5 {
				t.Fatalf("History returned %d entries, want 5", len(all))
			}
			for i := 1; i < len(all); i++ {
				if !all[i].CreatedAt.Before(all[i-1].CreatedAt) {
					t.Errorf("history not in descending timestamp order at %d", i)
				}
			}
			if all[0].ID != ids[4] {
				t.Errorf("most recent entry id = %d, want %d", all[0].ID, ids[4])
			}

			// Every record carries a snapshot that round-trips.
			for _, id := range ids {
				snap, err := s.Snapshot(context.Background(), id)
				if err != nil {
					t.Fatalf("Snapshot(%d) failed: %v", id, err)
				}
				vec, err := core.DecodeFeatureSnapshot(snap.Features)
				if err != nil {
					t.Fatalf("snapshot for %d does not decode: %v", id, err)
				}
				if len(vec) != 3 {
					t.Errorf("snapshot dim = %d, want 3", len(vec))
				}
			}
		})
	}
}

func TestStoreHistoryLimit(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()

			ids := recordN(t, s, 5)

			recent, err := s.History(context.Background(), 3)
			if err != nil {
				t.Fatalf("History failed: %v", err)
			}
			if len(recent) != 3 {
				t.Fatalf("History returned %d entries, want 3", len(recent))
			}
			want := []int64{ids[4], ids[3], ids[2]}
			for i, summary := range recent {
				if summary.ID != want[i] {
					t.Errorf("entry %d id = %d, want %d", i, summary.ID, want[i])
				}
			}
		})
	}
}

func TestStorePreviewTruncation(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()

			long := ""
			for i := 0; i < 50; i++ {
				long += "verylongword "
			}
			d := &core.Detection{Content: long, Prediction: 1, Confidence: 0.9, CreatedAt: time.Now()}
			if _, err := s.Record(context.Background(), d, core.EncodeFeatureSnapshot(nil)); err != nil {
				t.Fatalf("Record failed: %v", err)
			}

			entries, err := s.History(context.Background(), 1)
			if err != nil {
				t.Fatalf("History failed: %v", err)
			}
			preview := entries[0].Preview
			if len(preview) > 50 {
				t.Errorf("preview not bounded: %d bytes", len(preview))
			}
			if preview[len(preview)-3:] != "..." {
				t.Errorf("preview truncation not marked: %q", preview)
			}
		})
	}
}

func TestStoreSnapshotMissing(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()
			if _, err := s.Snapshot(context.Background(), 999); err == nil {
				t.Error("expected error for missing snapshot")
			}
		})
	}
}
