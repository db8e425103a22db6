package services

import (
	"errors"

	"github.com/diewo77/warung-ledger/internal/ledger"
	"github.com/diewo77/warung-ledger/internal/validation"
)

// ValidationError reports input that was rejected before anything was written.
// Code names a whole-request problem; Violations names per-field problems.
type ValidationError struct {
	Code       string
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	if e.Code != "" {
		return e.Code
	}
	return "validation failed: " + e.Violations.String()
}

var (
	// ErrEmptySelection is returned by checkout when no line is selected.
	ErrEmptySelection = &ValidationError{Code: "empty_selection"}
	// ErrLineNotPayable is returned by checkout when a selected line is already
	// paid or belongs to another tab.
	ErrLineNotPayable = &ValidationError{Code: "line_not_payable"}
	// ErrTabClosed is returned when ordering against, or merging into, a paid tab.
	ErrTabClosed = &ValidationError{Code: "tab_closed"}

	ErrNotFound = ledger.ErrNotFound
)

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Code returns the translatable code for err, or "" when it has none.
func Code(err error) string {
	var ve *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		if ve.Code != "" {
			return ve.Code
		}
		for _, f := range ve.Violations.Fields() {
			return ve.Violations[f]
		}
	case errors.Is(err, ledger.ErrNotFound):
		return "not_found"
	case ledger.IsConstraint(err):
		return "constraint"
	}
	return ""
}

func check(v validation.Violations) error {
	if v.Empty() {
		return nil
	}
	return &ValidationError{Violations: v}
}

func isNotFound(err error) bool {
	return errors.Is(err, ledger.ErrNotFound)
}
