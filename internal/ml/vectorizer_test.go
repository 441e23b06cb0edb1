package ml

import (
	"math"
	"testing"
)

func TestTfidfVectorizerFitTransform(t *testing.T) {
	corpus := []string{
		"verify account now",
		"verify account today",
		"meeting note agenda",
		"meeting note minutes",
	}

	v := NewTfidfVectorizer(100)
	v.Fit(corpus)

	if v.Documents != 4 {
		t.Errorf("Documents = %d, want 4", v.Documents)
	}
	if v.Dim() != 100 {
		t.Errorf("Dim() = %d, want configured size", v.Dim())
	}
	if _, ok := v.Vocabulary["verify"]; !ok {
		t.Error("vocabulary missing unigram 'verify'")
	}
	if _, ok := v.Vocabulary["verify account"]; !ok {
		t.Error("vocabulary missing bigram 'verify account'")
	}

	vec := v.Transform("verify account")
	if len(vec) != v.Dim() {
		t.Fatalf("Transform length = %d, want %d", len(vec), v.Dim())
	}
	if vec[v.Vocabulary["verify"]] <= 0 {
		t.Error("expected positive weight for in-vocabulary term")
	}

	// Unit L2 norm.
	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	if math.Abs(norm-1.0) > 1e-9 {
		t.Errorf("vector norm^2 = %v, want 1", norm)
	}
}

func TestTfidfVectorizerOutOfVocabulary(t *testing.T) {
	v := NewTfidfVectorizer(10)
	v.Fit([]string{"alpha beta", "alpha gamma"})

	vec := v.Transform("delta epsilon zeta")
	for i, w := range vec {
		if w != 0 {
			t.Fatalf("expected zero vector for OOV text, got %v at %d", w, i)
		}
	}
}

func TestTfidfVectorizerVocabularyCap(t *testing.T) {
	v := NewTfidfVectorizer(3)
	v.Fit([]string{"a b c d e f g"})

	if len(v.Vocabulary) != 3 {
		t.Errorf("vocabulary size = %d, want capped at 3", len(v.Vocabulary))
	}
	if len(v.Transform("a b c")) != 3 {
		t.Errorf("vector length must equal configured size")
	}
}

func TestTfidfVectorizerDeterministic(t *testing.T) {
	corpus := []string{"one two three", "two three four", "three four five"}

	a := NewTfidfVectorizer(50)
	a.Fit(corpus)
	b := NewTfidfVectorizer(50)
	b.Fit(corpus)

	for term, idx := range a.Vocabulary {
		if b.Vocabulary[term] != idx {
			t.Fatalf("vocabulary order differs for %q", term)
		}
	}
}
