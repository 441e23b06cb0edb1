package core

import (
	"errors"
	"fmt"
)

// ErrModelNotFound is returned when a prediction is requested but no
// trained model artifact exists. Prediction never falls back to an
// untrained model.
var ErrModelNotFound = errors.New("model artifact not found")

// DataFormatError reports training data that is missing required columns
// or contains unparsable rows. Training aborts before any model is
// produced.
type DataFormatError struct {
	Path   string
	Reason string
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("invalid training data in %s: %s", e.Path, e.Reason)
}
