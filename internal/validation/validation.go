// Package validation collects field-level input problems keyed by field name.
package validation

import (
	"sort"
	"strings"
)

// Codes are stable identifiers, translated for display by the i18n package.
const (
	CodeRequired       = "required"
	CodeMustBePositive = "must_be_positive"
	CodeNegative       = "must_not_be_negative"
	CodeOutOfRange     = "out_of_range"
	CodeSameValue      = "must_differ"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Fields returns the offending field names in sorted order.
func (v Violations) Fields() []string {
	out := make([]string, 0, len(v))
	for f := range v {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func (v Violations) String() string {
	parts := make([]string, 0, len(v))
	for _, f := range v.Fields() {
		parts = append(parts, f+": "+v[f])
	}
	return strings.Join(parts, ", ")
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = CodeRequired
	}
}

func PositiveInt(field string, val int64, v Violations) {
	if val <= 0 {
		v[field] = CodeMustBePositive
	}
}

func NonNegativeInt(field string, val int64, v Violations) {
	if val < 0 {
		v[field] = CodeNegative
	}
}

func RangeInt(field string, val, minVal, maxVal int64, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = CodeOutOfRange
	}
}

// Distinct flags field when a and b are equal.
func Distinct(field string, a, b uint, v Violations) {
	if a == b {
		v[field] = CodeSameValue
	}
}
