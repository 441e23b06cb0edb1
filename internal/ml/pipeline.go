package ml

import (
	"strings"

	"github.com/fuchs284/Cybersecurityproject/internal/core"
)

// Pipeline couples a fitted TF-IDF vectorizer with a fitted random
// forest. Both stages share the vocabulary established at training time.
type Pipeline struct {
	Vectorizer *TfidfVectorizer `json:"vectorizer"`
	Forest     *RandomForest    `json:"forest"`
}

// Predict classifies one normalized text. Empty input carries no signal
// and short-circuits to (legitimate, 0.0) without consulting the forest.
func (p *Pipeline) Predict(text string) core.Prediction {
	if strings.TrimSpace(text) == "" {
		dim := 0
		if p.Vectorizer != nil {
			dim = p.Vectorizer.Dim()
		}
		return core.Prediction{
			IsPhishing: false,
			Confidence: 0.0,
			Snapshot:   core.EncodeFeatureSnapshot(make([]float64, dim)),
			ModelUsed:  "none",
		}
	}

	vec := p.Vectorizer.Transform(text)
	label, probs := p.Forest.Predict(vec)
	return core.Prediction{
		IsPhishing: label == core.LabelPhishing,
		Confidence: probs[label],
		Snapshot:   core.EncodeFeatureSnapshot(vec),
		ModelUsed:  "forest",
	}
}
