package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/fuchs284/Cybersecurityproject/internal/core"
)

// FileRepository persists fitted pipelines as a single JSON artifact at a
// fixed path.
type FileRepository struct {
	path   string
	logger *zap.Logger
}

// NewFileRepository creates a repository for the artifact at path.
func NewFileRepository(path string, logger *zap.Logger) *FileRepository {
	return &FileRepository{
		path:   path,
		logger: logger,
	}
}

// Load reads the artifact back into an equivalent predictor. A missing
// artifact is reported as core.ErrModelNotFound.
func (r *FileRepository) Load() (core.Pipeline, error) {
	if _, err := os.Stat(r.path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w at %s", core.ErrModelNotFound, r.path)
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact %s: %w", r.path, err)
	}

	var pipeline Pipeline
	if err := json.Unmarshal(data, &pipeline); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model artifact %s: %w", r.path, err)
	}
	if pipeline.Vectorizer == nil || pipeline.Forest == nil {
		return nil, fmt.Errorf("model artifact %s is incomplete", r.path)
	}

	r.logger.Debug("Loaded model artifact",
		zap.String("path", r.path),
		zap.Int("vocab_terms", len(pipeline.Vectorizer.Vocabulary)),
		zap.Int("trees", len(pipeline.Forest.Roots)))

	return &pipeline, nil
}

// Save serializes the pipeline and replaces the artifact atomically, so a
// crash mid-write never leaves a truncated model behind.
func (r *FileRepository) Save(p core.Pipeline) error {
	pipeline, ok := p.(*Pipeline)
	if !ok {
		return fmt.Errorf("unsupported pipeline type %T", p)
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create model directory: %w", err)
		}
	}

	data, err := json.Marshal(pipeline)
	if err != nil {
		return fmt.Errorf("failed to marshal pipeline: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write model artifact %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace model artifact %s: %w", r.path, err)
	}

	r.logger.Info("Saved model artifact",
		zap.String("path", r.path),
		zap.Int("bytes", len(data)))

	return nil
}
