package fmea

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched with errors.Is against a ValidationError or a
// ValidationErrors aggregate.
var (
	ErrEmptyName     = errors.New("empty variable name")
	ErrDuplicateName = errors.New("duplicate variable name")
	ErrInvalidRating = errors.New("rating out of range")
	ErrVariableCount = errors.New("variable count out of range")
)

// ErrorKind classifies a ValidationError.
type ErrorKind int

const (
	KindEmptyName ErrorKind = iota + 1
	KindDuplicateName
	KindInvalidRating
)

func (k ErrorKind) String() string {
	switch k {
	case KindEmptyName:
		return "empty_name"
	case KindDuplicateName:
		return "duplicate_name"
	case KindInvalidRating:
		return "invalid_rating"
	default:
		return "unknown"
	}
}

// ValidationError describes one problem with the collected input.
type ValidationError struct {
	Kind ErrorKind

	// Position is the 1-based index of the offending entry. Zero for
	// KindDuplicateName, which spans several entries.
	Position int

	// Field and Value identify the rating for KindInvalidRating.
	Field string
	Value int

	// Names lists every duplicated name, once each, for KindDuplicateName.
	Names []string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindEmptyName:
		return fmt.Sprintf("Variable %d name cannot be empty or whitespace.", e.Position)
	case KindDuplicateName:
		return fmt.Sprintf("Duplicate variable names found: %s", strings.Join(e.Names, ", "))
	case KindInvalidRating:
		return fmt.Sprintf("Variable %d %s must be between %d and %d, got %d.",
			e.Position, e.Field, MinRating, MaxRating, e.Value)
	default:
		return "invalid variable"
	}
}

func (e *ValidationError) Unwrap() error {
	switch e.Kind {
	case KindEmptyName:
		return ErrEmptyName
	case KindDuplicateName:
		return ErrDuplicateName
	case KindInvalidRating:
		return ErrInvalidRating
	default:
		return nil
	}
}

// ValidationErrors is the ordered list of problems found in one run.
// A non-empty list blocks the run entirely.
type ValidationErrors []*ValidationError

func (errs ValidationErrors) Error() string {
	return strings.Join(errs.Messages(), "\n")
}

// Unwrap exposes every element to errors.Is and errors.As.
func (errs ValidationErrors) Unwrap() []error {
	out := make([]error, len(errs))
	for i, e := range errs {
		out[i] = e
	}
	return out
}

// Messages returns the human-readable message of each error, in order.
func (errs ValidationErrors) Messages() []string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return msgs
}

// CheckCount reports whether n is an acceptable number of variables.
func CheckCount(n int) error {
	if n < MinVariables || n > MaxVariables {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrVariableCount, n, MinVariables, MaxVariables)
	}
	return nil
}
