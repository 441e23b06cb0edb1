package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Class labels produced by the classifier.
const (
	LabelLegitimate = 0
	LabelPhishing   = 1
)

// Detection is one persisted prediction. IsPhishing holds the ground truth
// once a human has reviewed the record; it is nil on the prediction path.
type Detection struct {
	ID         int64
	Content    string
	IsPhishing *bool
	Prediction int
	Confidence float64
	CreatedAt  time.Time
}

// FeatureSnapshot is the serialized feature vector recorded alongside a
// detection for later inspection.
type FeatureSnapshot struct {
	ID          int64
	DetectionID int64
	Features    string
}

// DetectionSummary is a compact view of a detection as returned by History.
type DetectionSummary struct {
	ID         int64
	CreatedAt  time.Time
	Prediction int
	Confidence float64
	Preview    string
}

// Prediction is the outcome of running one normalized text through the
// fitted pipeline.
type Prediction struct {
	IsPhishing bool
	Confidence float64
	Snapshot   string
	ModelUsed  string
}

// Verdict is what the detector returns to the caller for one email.
type Verdict struct {
	IsPhishing bool
	Confidence float64
	ModelUsed  string
	RecordID   int64
	AnalyzedAt time.Time
	// StoreErr is set when the detection could not be written to the
	// store. The classification itself is still valid.
	StoreErr error
}

// ClassMetrics holds per-class evaluation results on the held-out partition.
type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// TrainingReport summarizes a training run. It is surfaced to the caller
// and never persisted.
type TrainingReport struct {
	Accuracy   float64
	TrainSize  int
	TestSize   int
	Legitimate ClassMetrics
	Phishing   ClassMetrics
	TrainedAt  time.Time
}

// featureSnapshot is the wire form of a feature vector: total dimension
// plus the non-zero entries keyed by index.
type featureSnapshot struct {
	Dim     int                `json:"dim"`
	Weights map[string]float64 `json:"weights,omitempty"`
}

// EncodeFeatureSnapshot serializes a feature vector into the sparse JSON
// form stored with every detection.
func EncodeFeatureSnapshot(vec []float64) string {
	snap := featureSnapshot{Dim: len(vec)}
	for i, w := range vec {
		if w == 0 {
			continue
		}
		if snap.Weights == nil {
			snap.Weights = make(map[string]float64)
		}
		snap.Weights[strconv.Itoa(i)] = w
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return `{"dim":0}`
	}
	return string(data)
}

// DecodeFeatureSnapshot restores a feature vector from its serialized form.
func DecodeFeatureSnapshot(s string) ([]float64, error) {
	var snap featureSnapshot
	if err := json.Unmarshal([]byte(s), &snap); err != nil {
		return nil, fmt.Errorf("failed to decode feature snapshot: %w", err)
	}
	if snap.Dim < 0 {
		return nil, fmt.Errorf("invalid feature snapshot dimension %d", snap.Dim)
	}
	vec := make([]float64, snap.Dim)
	for key, w := range snap.Weights {
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= snap.Dim {
			return nil, fmt.Errorf("feature snapshot index %q out of range", key)
		}
		vec[i] = w
	}
	return vec, nil
}
