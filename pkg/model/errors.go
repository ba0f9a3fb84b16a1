package model

import (
	"errors"
	"strconv"
)

// ErrMissingRecord is returned when a renderer is invoked without a record.
var ErrMissingRecord = errors.New("required input missing: fish record")

// Require checks the record precondition shared by every renderer.
func Require(fish *Fish) error {
	if fish == nil {
		return ErrMissingRecord
	}
	return nil
}

// Require checks every element of the collection, reporting the index of the
// first missing record.
func (c Collection) Require() error {
	for idx, fish := range c {
		if fish == nil {
			return &RecordError{Index: idx, Err: ErrMissingRecord}
		}
	}
	return nil
}

// RecordError ties a record failure to its position in the collection.
type RecordError struct {
	Index int
	Err   error
}

func (e *RecordError) Error() string {
	return "record " + strconv.Itoa(e.Index) + ": " + e.Err.Error()
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
