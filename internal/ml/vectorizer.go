package ml

import (
	"math"
	"sort"
	"strings"
)

// TfidfVectorizer maps normalized text onto a fixed-length vector of
// TF-IDF weights over a fitted vocabulary of unigrams and bigrams.
// The vector dimension is always MaxFeatures, even when the corpus yields
// a smaller vocabulary. Out-of-vocabulary terms carry zero weight.
type TfidfVectorizer struct {
	MaxFeatures int            `json:"max_features"`
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
	Documents   int            `json:"document_count"`
}

// NewTfidfVectorizer creates an unfitted vectorizer with the given
// vocabulary size.
func NewTfidfVectorizer(maxFeatures int) *TfidfVectorizer {
	return &TfidfVectorizer{MaxFeatures: maxFeatures}
}

// Dim returns the fixed feature-vector length.
func (v *TfidfVectorizer) Dim() int {
	return v.MaxFeatures
}

// Fit builds the vocabulary from the training corpus: the MaxFeatures
// terms with the highest document frequency, weighted by log(N/df).
func (v *TfidfVectorizer) Fit(corpus []string) {
	df := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]bool)
		for _, term := range ngrams(doc) {
			if !seen[term] {
				df[term]++
				seen[term] = true
			}
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	// Most frequent first; ties broken lexicographically so a fixed seed
	// always yields the same vocabulary.
	sort.Slice(terms, func(i, j int) bool {
		if df[terms[i]] != df[terms[j]] {
			return df[terms[i]] > df[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > v.MaxFeatures {
		terms = terms[:v.MaxFeatures]
	}
	sort.Strings(terms)

	v.Documents = len(corpus)
	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, v.MaxFeatures)
	for i, term := range terms {
		v.Vocabulary[term] = i
		v.IDF[i] = math.Log(float64(v.Documents) / float64(df[term]))
	}
}

// Transform maps one text onto the fitted feature space. Unknown terms
// are ignored.
func (v *TfidfVectorizer) Transform(text string) []float64 {
	vec := make([]float64, v.MaxFeatures)
	terms := ngrams(text)
	if len(terms) == 0 || len(v.Vocabulary) == 0 {
		return vec
	}

	counts := make(map[int]float64)
	for _, term := range terms {
		if idx, ok := v.Vocabulary[term]; ok {
			counts[idx]++
		}
	}
	total := float64(len(terms))
	for idx, count := range counts {
		vec[idx] = (count / total) * v.IDF[idx]
	}
	return normalizeVector(vec)
}

// ngrams expands whitespace-separated tokens into unigrams plus adjacent
// bigrams.
func ngrams(text string) []string {
	tokens := strings.Fields(text)
	terms := make([]string, 0, 2*len(tokens))
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

// normalizeVector scales a vector to unit L2 length.
func normalizeVector(vec []float64) []float64 {
	var norm float64
	for _, val := range vec {
		norm += val * val
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i, val := range vec {
		vec[i] = val / norm
	}
	return vec
}
