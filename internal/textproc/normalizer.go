package textproc

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

var (
	urlPattern     = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)
	addressPattern = regexp.MustCompile(`\S+@\S+`)
	nonAlnum       = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
)

// Normalizer reduces body text to the canonical token form the feature
// space is built on: URLs and addresses removed, punctuation stripped,
// lower-cased, stop words dropped, remaining tokens lemmatized. The same
// normalizer must be applied at training and prediction time.
//
// The lemmatization dictionary is loaded once in the constructor and is
// immutable afterwards, so a single Normalizer can be shared freely.
type Normalizer struct {
	lemmatizer *golem.Lemmatizer
}

// NewNormalizer loads the English lemmatization dictionary and returns a
// ready normalizer.
func NewNormalizer() (*Normalizer, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("failed to load lemmatization dictionary: %w", err)
	}
	return &Normalizer{lemmatizer: lemmatizer}, nil
}

// Normalize is deterministic, pure, and idempotent on its own output.
// Empty input yields empty output.
func (n *Normalizer) Normalize(text string) string {
	text = urlPattern.ReplaceAllString(text, " ")
	text = addressPattern.ReplaceAllString(text, " ")
	text = nonAlnum.ReplaceAllString(text, "")
	text = strings.ToLower(text)

	var kept []string
	for _, token := range strings.Fields(text) {
		if stopWords[token] {
			continue
		}
		lemma := n.lemma(token)
		// A lemma can itself land on a stop word ("using" -> "use" does
		// not, "having" -> "have" does); filter again to stay idempotent.
		if stopWords[lemma] {
			continue
		}
		kept = append(kept, lemma)
	}
	return strings.Join(kept, " ")
}

// lemma reduces a token to a fixed point of the dictionary lookup so that
// re-normalizing output never changes it.
func (n *Normalizer) lemma(token string) string {
	for i := 0; i < 5; i++ {
		next := n.lemmatizer.Lemma(token)
		if next == token {
			break
		}
		token = next
	}
	return token
}
