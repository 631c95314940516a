package fmea

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ratingValidate checks the rating tags on RawEntry. Field names are
// reported by their json tag so messages read "severity", not "Severity".
var ratingValidate *validator.Validate

func init() {
	ratingValidate = validator.New()
	ratingValidate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
}

// FallbackName is the name used for bookkeeping when entry n (1-based)
// has an empty name.
func FallbackName(n int) string {
	return fmt.Sprintf("Variable %d", n)
}

// Validate checks the collected entries and returns the validated run.
//
// Every entry is processed before reporting. On failure the returned error
// is a ValidationErrors holding, in order: one empty-name error per
// offending entry, at most one duplicate-name error, then one invalid-rating
// error per out-of-range rating. No run is returned in that case.
func Validate(entries []RawEntry) (*AssessmentRun, error) {
	var errs ValidationErrors

	names := make([]string, len(entries))
	for i, raw := range entries {
		name := strings.TrimSpace(raw.Name)
		if name == "" {
			errs = append(errs, &ValidationError{Kind: KindEmptyName, Position: i + 1})
			name = FallbackName(i + 1)
		}
		names[i] = name
	}

	if dups := duplicateNames(names); len(dups) > 0 {
		errs = append(errs, &ValidationError{Kind: KindDuplicateName, Names: dups})
	}

	for i, raw := range entries {
		errs = append(errs, checkRatings(i+1, raw)...)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	run := &AssessmentRun{
		NumVars: len(entries),
		Entries: make([]VariableEntry, len(entries)),
	}
	for i, raw := range entries {
		run.Entries[i] = VariableEntry{
			Name:          names[i],
			Severity:      raw.Severity,
			Occurrence:    raw.Occurrence,
			Detectability: raw.Detectability,
		}
	}
	return run, nil
}

// duplicateNames returns every name occurring more than once, each listed
// once, in order of first appearance.
func duplicateNames(names []string) []string {
	counts := make(map[string]int, len(names))
	for _, n := range names {
		counts[n]++
	}

	var dups []string
	for _, n := range names {
		if counts[n] > 1 {
			dups = append(dups, n)
			counts[n] = 0
		}
	}
	return dups
}

// checkRatings reports every rating of raw outside [MinRating, MaxRating].
func checkRatings(position int, raw RawEntry) ValidationErrors {
	err := ratingValidate.Struct(raw)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{{Kind: KindInvalidRating, Position: position, Field: "rating"}}
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		value, _ := fe.Value().(int)
		out = append(out, &ValidationError{
			Kind:     KindInvalidRating,
			Position: position,
			Field:    fe.Field(),
			Value:    value,
		})
	}
	return out
}
