package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/fuchs284/Cybersecurityproject/internal/core"
)

// CSVLoader reads a labeled training corpus from a CSV file with a header
// row. Column names are matched case-insensitively; row order does not
// matter and duplicate rows are allowed.
type CSVLoader struct {
	textColumn  string
	labelColumn string
	logger      *zap.Logger
}

// NewCSVLoader creates a loader for the given column names.
func NewCSVLoader(textColumn, labelColumn string, logger *zap.Logger) *CSVLoader {
	return &CSVLoader{
		textColumn:  textColumn,
		labelColumn: labelColumn,
		logger:      logger,
	}
}

// Load reads every row of the file. Any structural problem aborts the
// load with a core.DataFormatError before a partial corpus is returned.
func (l *CSVLoader) Load(path string) ([]string, []int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open training data: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, &core.DataFormatError{Path: path, Reason: "missing header row"}
	}

	textIdx, labelIdx := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case strings.ToLower(l.textColumn):
			textIdx = i
		case strings.ToLower(l.labelColumn):
			labelIdx = i
		}
	}
	if textIdx < 0 {
		return nil, nil, &core.DataFormatError{Path: path, Reason: fmt.Sprintf("missing column %q", l.textColumn)}
	}
	if labelIdx < 0 {
		return nil, nil, &core.DataFormatError{Path: path, Reason: fmt.Sprintf("missing column %q", l.labelColumn)}
	}

	var texts []string
	var labels []int
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, nil, &core.DataFormatError{Path: path, Reason: fmt.Sprintf("row %d: %v", row, err)}
		}
		if textIdx >= len(record) || labelIdx >= len(record) {
			return nil, nil, &core.DataFormatError{Path: path, Reason: fmt.Sprintf("row %d has too few fields", row)}
		}

		label, err := parseLabel(record[labelIdx])
		if err != nil {
			return nil, nil, &core.DataFormatError{Path: path, Reason: fmt.Sprintf("row %d: %v", row, err)}
		}
		texts = append(texts, record[textIdx])
		labels = append(labels, label)
	}

	if len(texts) == 0 {
		return nil, nil, &core.DataFormatError{Path: path, Reason: "no data rows"}
	}

	l.logger.Debug("Parsed training data",
		zap.String("path", path),
		zap.Int("rows", len(texts)))

	return texts, labels, nil
}

func parseLabel(raw string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "0", "false", "legitimate", "ham":
		return core.LabelLegitimate, nil
	case "1", "true", "phishing", "spam":
		return core.LabelPhishing, nil
	default:
		return 0, fmt.Errorf("unparsable label %q", raw)
	}
}
