package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrExtraction marks a fragment whose raw source fields were absent or
	// unreadable. Recovered at the fragment boundary.
	ErrExtraction = errors.New("extraction failed")
	// ErrNormalization marks a fragment whose fields could not be converted
	// to canonical types. Recovered at the fragment boundary.
	ErrNormalization = errors.New("normalization failed")
	// ErrPersistence marks a store rejection, including uniqueness-constraint
	// violations racing the dedup gate. Recovered at the fragment boundary.
	ErrPersistence = errors.New("persistence failed")
	// ErrFatalSource marks a source that could not be reached or initialized
	// at all. Aborts the run; the only error the coordinator propagates.
	ErrFatalSource = errors.New("source unavailable")
)

// NormalizationError carries the offending field and fragment context.
type NormalizationError struct {
	Field    string
	Fragment string
	Err      error
}

func (e *NormalizationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("normalize field %q of fragment %q: %v", e.Field, e.Fragment, e.Err)
	}
	return fmt.Sprintf("normalize field %q of fragment %q", e.Field, e.Fragment)
}

func (e *NormalizationError) Unwrap() error { return e.Err }

func (e *NormalizationError) Is(target error) bool { return target == ErrNormalization }

func normErr(field, fragment string, err error) *NormalizationError {
	return &NormalizationError{Field: field, Fragment: fragment, Err: err}
}
