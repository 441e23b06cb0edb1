package textproc

import (
	"testing"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	n, err := NewNormalizer()
	if err != nil {
		t.Fatalf("NewNormalizer failed: %v", err)
	}
	return n
}

func TestNormalize(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: "   \n\t  ",
			want:  "",
		},
		{
			name:  "case folding",
			input: "URGENT Security Alert",
			want:  "urgent security alert",
		},
		{
			name:  "urls removed",
			input: "click http://evil.example.com/login quickly",
			want:  "click quickly",
		},
		{
			name:  "www urls removed",
			input: "click www.evil-example.com quickly",
			want:  "click quickly",
		},
		{
			name:  "addresses removed",
			input: "contact support@bank.example today",
			want:  "contact today",
		},
		{
			name:  "punctuation stripped",
			input: "re-send: password!!!",
			want:  "resend password",
		},
		{
			name:  "stop words dropped",
			input: "please verify your account immediately",
			want:  "please verify account immediately",
		},
		{
			name:  "plurals lemmatized",
			input: "accounts passwords invoices",
			want:  "account password invoice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := newTestNormalizer(t)

	inputs := []string{
		"",
		"Dear customer, please VERIFY your accounts at http://evil.example.com now!",
		"The meetings were rescheduled; notes attached below.",
		"Having been notified, users should be resetting their passwords.",
		"Winner!!! You have won $1,000,000 -- claim at www.lottery-example.net",
	}

	for _, input := range inputs {
		once := n.Normalize(input)
		twice := n.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q:\n once:  %q\n twice: %q", input, once, twice)
		}
	}
}
