package render

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-fishlist/pkg/model"
)

// ErrRendererNotFound is returned by Registry.Get for unknown names.
var ErrRendererNotFound = errors.New("render: renderer not found")

// RecordFailure wraps a record-level error with the renderer name so callers
// can tell which stage aborted the pass.
func RecordFailure(renderer string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s renderer: %w", renderer, err)
}

// IsMissingRecord reports whether err stems from a missing record.
func IsMissingRecord(err error) bool {
	return errors.Is(err, model.ErrMissingRecord)
}
