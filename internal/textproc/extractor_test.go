package textproc

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

func crlf(lines ...string) string {
	return strings.Join(lines, "\r\n")
}

func TestExtractMultipart(t *testing.T) {
	e := NewExtractor(zap.NewNop())

	raw := crlf(
		"From: Alice <alice@example.com>",
		"To: bob@example.com",
		"Subject: hello",
		"MIME-Version: 1.0",
		`Content-Type: multipart/alternative; boundary="BOUNDARY"`,
		"",
		"--BOUNDARY",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"plain part one",
		"--BOUNDARY",
		"Content-Type: text/html; charset=utf-8",
		"",
		"<b>html part</b>",
		"--BOUNDARY--",
		"",
	)

	body, sender := e.Extract(raw)
	if !strings.Contains(body, "plain part one") {
		t.Errorf("body missing text/plain part: %q", body)
	}
	if strings.Contains(body, "html part") {
		t.Errorf("body should not contain html part: %q", body)
	}
	if sender != "alice@example.com" {
		t.Errorf("sender = %q, want alice@example.com", sender)
	}
}

func TestExtractSimpleMessage(t *testing.T) {
	e := NewExtractor(zap.NewNop())

	raw := crlf(
		"From: x@example.com",
		"Subject: hi",
		"",
		"just the body",
		"",
	)

	body, sender := e.Extract(raw)
	if !strings.Contains(body, "just the body") {
		t.Errorf("body = %q, want the plain payload", body)
	}
	if sender != "x@example.com" {
		t.Errorf("sender = %q", sender)
	}
}

func TestExtractNonMultipartPayloadUsedDirectly(t *testing.T) {
	e := NewExtractor(zap.NewNop())

	// A single-part message keeps its payload even when it is not
	// text/plain.
	raw := crlf(
		"From: x@example.com",
		"Content-Type: text/html; charset=utf-8",
		"",
		"<p>rendered content</p>",
		"",
	)

	body, _ := e.Extract(raw)
	if !strings.Contains(body, "rendered content") {
		t.Errorf("body = %q, want the single-part payload", body)
	}
}

func TestExtractBareText(t *testing.T) {
	e := NewExtractor(zap.NewNop())

	raw := "please verify your account immediately"
	body, sender := e.Extract(raw)
	if body != raw {
		t.Errorf("body = %q, want input unchanged", body)
	}
	if sender != "" {
		t.Errorf("sender = %q, want empty", sender)
	}
}

func TestExtractNeverPanics(t *testing.T) {
	e := NewExtractor(zap.NewNop())

	inputs := []string{
		"",
		"   \n\t  ",
		crlf(
			`Content-Type: multipart/mixed; boundary="B"`,
			"",
			"--B",
			"Content-Type: text/plain",
			"",
			"truncated without closing boundary",
		),
		crlf(
			"Content-Type: multipart/mixed",
			"",
			"no boundary declared",
		),
	}

	for _, raw := range inputs {
		body, _ := e.Extract(raw)
		_ = body // must return a string, possibly empty
	}
}
