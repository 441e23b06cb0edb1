package ml

import (
	"github.com/fuchs284/Cybersecurityproject/internal/core"
)

func accuracy(yTrue, yPred []int) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue))
}

// classMetrics computes precision, recall and F1 for one class over the
// held-out partition. Undefined ratios (empty denominators) report as 0.
func classMetrics(yTrue, yPred []int, class int) core.ClassMetrics {
	var tp, fp, fn, support int
	for i := range yTrue {
		if yTrue[i] == class {
			support++
			if yPred[i] == class {
				tp++
			} else {
				fn++
			}
		} else if yPred[i] == class {
			fp++
		}
	}

	m := core.ClassMetrics{Support: support}
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}
