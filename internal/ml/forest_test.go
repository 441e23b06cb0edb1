package ml

import (
	"encoding/json"
	"testing"
)

// separable training data: class 1 has mass in the first dimension,
// class 0 in the second.
func separableData() ([][]float64, []int) {
	vectors := [][]float64{
		{0.9, 0.1}, {0.8, 0.0}, {1.0, 0.2}, {0.7, 0.1},
		{0.1, 0.9}, {0.0, 0.8}, {0.2, 1.0}, {0.1, 0.7},
	}
	labels := []int{1, 1, 1, 1, 0, 0, 0, 0}
	return vectors, labels
}

func TestRandomForestFitPredict(t *testing.T) {
	vectors, labels := separableData()

	f := NewRandomForest(100)
	if err := f.Fit(vectors, labels, 7); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	label, probs := f.Predict([]float64{0.95, 0.05})
	if label != 1 {
		t.Errorf("Predict label = %d, want 1", label)
	}
	if probs[1] < 0.9 {
		t.Errorf("probs[1] = %v, want near-unanimous vote", probs[1])
	}

	label, probs = f.Predict([]float64{0.05, 0.95})
	if label != 0 {
		t.Errorf("Predict label = %d, want 0", label)
	}

	var total float64
	for _, p := range probs {
		if p < 0 || p > 1 {
			t.Errorf("probability %v outside [0,1]", p)
		}
		total += p
	}
	if total < 0.999 || total > 1.001 {
		t.Errorf("probabilities sum to %v, want 1", total)
	}
}

func TestRandomForestDeterministicWithSeed(t *testing.T) {
	vectors, labels := separableData()

	a := NewRandomForest(20)
	if err := a.Fit(vectors, labels, 42); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	b := NewRandomForest(20)
	if err := b.Fit(vectors, labels, 42); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	aJSON, _ := json.Marshal(a)
	bJSON, _ := json.Marshal(b)
	if string(aJSON) != string(bJSON) {
		t.Error("same seed produced different forests")
	}
}

func TestRandomForestFitValidation(t *testing.T) {
	f := NewRandomForest(5)

	if err := f.Fit(nil, nil, 1); err == nil {
		t.Error("expected error for empty training set")
	}
	if err := f.Fit([][]float64{{1}}, []int{0, 1}, 1); err == nil {
		t.Error("expected error for mismatched labels")
	}
	if err := f.Fit([][]float64{{1}}, []int{3}, 1); err == nil {
		t.Error("expected error for out-of-range label")
	}
}
