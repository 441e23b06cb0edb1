package ml

import (
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/fuchs284/Cybersecurityproject/internal/core"
)

func TestFileRepositoryRoundTrip(t *testing.T) {
	texts, labels := toyCorpus()
	trainer := NewTrainer(1000, 20, zap.NewNop())
	pipeline, _, err := trainer.Train(texts, labels, 0.2, 3)
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "model.json")
	repo := NewFileRepository(path, zap.NewNop())

	if err := repo.Save(pipeline); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := repo.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// The restored predictor must be functionally identical.
	samples := []string{
		"please verify your account immediately",
		"meeting notes attached",
		"verify account suspension warning",
		"",
	}
	for _, sample := range samples {
		want := pipeline.Predict(sample)
		got := loaded.Predict(sample)
		if got.IsPhishing != want.IsPhishing || got.Confidence != want.Confidence {
			t.Errorf("prediction mismatch after round trip for %q: got (%v, %v), want (%v, %v)",
				sample, got.IsPhishing, got.Confidence, want.IsPhishing, want.Confidence)
		}
	}
}

func TestFileRepositoryMissingArtifact(t *testing.T) {
	repo := NewFileRepository(filepath.Join(t.TempDir(), "missing.json"), zap.NewNop())

	_, err := repo.Load()
	if err == nil {
		t.Fatal("expected error for missing artifact")
	}
	if !errors.Is(err, core.ErrModelNotFound) {
		t.Errorf("error = %v, want ErrModelNotFound", err)
	}
}

func TestFileRepositorySaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "model.json")
	repo := NewFileRepository(path, zap.NewNop())

	pipeline := &Pipeline{Vectorizer: NewTfidfVectorizer(8), Forest: NewRandomForest(1)}
	pipeline.Vectorizer.Fit([]string{"alpha"})
	if err := pipeline.Forest.Fit([][]float64{{1, 0}, {0, 1}}, []int{1, 0}, 1); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if err := repo.Save(pipeline); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := repo.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
}
