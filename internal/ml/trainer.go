package ml

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/fuchs284/Cybersecurityproject/internal/core"
)

// Trainer fits fresh pipelines from a labeled corpus of normalized texts.
type Trainer struct {
	vocabSize int
	numTrees  int
	logger    *zap.Logger
}

// NewTrainer creates a trainer with the configured feature-space size and
// forest size.
func NewTrainer(vocabSize, numTrees int, logger *zap.Logger) *Trainer {
	return &Trainer{
		vocabSize: vocabSize,
		numTrees:  numTrees,
		logger:    logger,
	}
}

// Train shuffles the corpus with the given seed, holds out splitRatio of
// it as a test partition, fits the pipeline on the remainder only, and
// evaluates it on the held-out rows.
func (t *Trainer) Train(texts []string, labels []int, splitRatio float64, seed int64) (core.Pipeline, *core.TrainingReport, error) {
	if len(texts) == 0 {
		return nil, nil, fmt.Errorf("training corpus is empty")
	}
	if len(texts) != len(labels) {
		return nil, nil, fmt.Errorf("corpus size %d does not match label count %d", len(texts), len(labels))
	}
	if splitRatio < 0 || splitRatio >= 1 {
		return nil, nil, fmt.Errorf("split ratio %v out of range [0, 1)", splitRatio)
	}

	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(len(texts))
	testSize := int(math.Round(float64(len(texts)) * splitRatio))
	if len(texts)-testSize < 1 {
		return nil, nil, fmt.Errorf("split ratio %v leaves no training data", splitRatio)
	}
	testIdx, trainIdx := perm[:testSize], perm[testSize:]

	trainTexts := make([]string, len(trainIdx))
	trainLabels := make([]int, len(trainIdx))
	for i, idx := range trainIdx {
		trainTexts[i] = texts[idx]
		trainLabels[i] = labels[idx]
	}

	t.logger.Info("Fitting pipeline",
		zap.Int("train_size", len(trainIdx)),
		zap.Int("test_size", len(testIdx)),
		zap.Int("vocab_size", t.vocabSize),
		zap.Int("trees", t.numTrees))

	vectorizer := NewTfidfVectorizer(t.vocabSize)
	vectorizer.Fit(trainTexts)

	vectors := make([][]float64, len(trainTexts))
	for i, text := range trainTexts {
		vectors[i] = vectorizer.Transform(text)
	}

	forest := NewRandomForest(t.numTrees)
	if err := forest.Fit(vectors, trainLabels, seed); err != nil {
		return nil, nil, err
	}

	pipeline := &Pipeline{Vectorizer: vectorizer, Forest: forest}

	report := &core.TrainingReport{
		TrainSize: len(trainIdx),
		TestSize:  len(testIdx),
		TrainedAt: time.Now(),
	}
	if len(testIdx) > 0 {
		yTrue := make([]int, len(testIdx))
		yPred := make([]int, len(testIdx))
		for i, idx := range testIdx {
			yTrue[i] = labels[idx]
			label, _ := forest.Predict(vectorizer.Transform(texts[idx]))
			yPred[i] = label
		}
		report.Accuracy = accuracy(yTrue, yPred)
		report.Legitimate = classMetrics(yTrue, yPred, core.LabelLegitimate)
		report.Phishing = classMetrics(yTrue, yPred, core.LabelPhishing)
	}

	return pipeline, report, nil
}
