package textproc

import (
	"io"
	"regexp"
	"strings"

	_ "github.com/emersion/go-message/charset"
	gomail "github.com/emersion/go-message/mail"
	"go.uber.org/zap"
)

// headerLine matches an RFC 5322 header field at the start of a document.
// Input that doesn't open with one is treated as an already-plain body.
var headerLine = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*:`)

// Extractor reduces a raw email document to a single plain-text body.
// It never fails: malformed structure degrades to whatever text could be
// collected, possibly the empty string.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates a new email body extractor.
func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract returns the plain-text body and the sender address of a raw
// email document. For multipart messages every text/plain part is
// concatenated in document order; HTML parts and attachments are ignored.
// A non-multipart payload is used directly.
func (e *Extractor) Extract(raw string) (body, sender string) {
	if !looksLikeMessage(raw) {
		return raw, ""
	}

	mr, err := gomail.CreateReader(strings.NewReader(raw))
	if err != nil && mr == nil {
		e.logger.Debug("Unparsable email document", zap.Error(err))
		return "", ""
	}

	if addrs, err := mr.Header.AddressList("From"); err == nil && len(addrs) > 0 {
		sender = addrs[0].Address
	}

	contentType, _, _ := mr.Header.ContentType()
	multipart := strings.HasPrefix(contentType, "multipart/")

	var text strings.Builder
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Broken part boundary; keep what was collected so far.
			e.logger.Debug("Failed to read message part", zap.Error(err))
			break
		}

		header, ok := part.Header.(*gomail.InlineHeader)
		if !ok {
			continue
		}
		if multipart {
			partType, _, err := header.ContentType()
			if err != nil || !strings.EqualFold(partType, "text/plain") {
				continue
			}
		}

		data, err := io.ReadAll(part.Body)
		if err != nil {
			continue
		}
		text.Write(data)
		text.WriteString("\n")
	}

	return text.String(), sender
}

func looksLikeMessage(raw string) bool {
	return headerLine.MatchString(raw)
}
