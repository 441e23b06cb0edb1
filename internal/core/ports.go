package core

import (
	"context"
)

// EmailExtractor reduces a raw email document to its plain-text body and
// sender address. It never fails; unusable input yields empty strings.
type EmailExtractor interface {
	Extract(raw string) (body, sender string)
}

// TextNormalizer turns extracted body text into the canonical token form
// the feature space is built on. It must be the same at training and
// prediction time.
type TextNormalizer interface {
	Normalize(text string) string
}

// Pipeline is a fitted feature-extraction + classification pipeline.
type Pipeline interface {
	// Predict classifies one normalized text. Empty input short-circuits
	// to (legitimate, 0.0) without consulting the classifier.
	Predict(text string) Prediction
}

// PipelineTrainer fits a fresh pipeline from a labeled corpus of
// normalized texts, holding out a test partition for diagnostics.
type PipelineTrainer interface {
	Train(texts []string, labels []int, splitRatio float64, seed int64) (Pipeline, *TrainingReport, error)
}

// PipelineRepository persists fitted pipelines as a single artifact.
// Load returns ErrModelNotFound when no artifact exists.
type PipelineRepository interface {
	Load() (Pipeline, error)
	Save(p Pipeline) error
}

// SampleSource loads a labeled training corpus from a data file.
type SampleSource interface {
	Load(path string) (texts []string, labels []int, err error)
}

// DetectionStore is the append-only record of every prediction made.
type DetectionStore interface {
	// Record persists a detection and its feature snapshot atomically and
	// returns the assigned id.
	Record(ctx context.Context, d *Detection, features string) (int64, error)

	// History returns the limit most recent detections, most recent first.
	History(ctx context.Context, limit int) ([]DetectionSummary, error)

	// Snapshot returns the feature snapshot recorded for a detection.
	Snapshot(ctx context.Context, detectionID int64) (*FeatureSnapshot, error)

	Close() error
}
