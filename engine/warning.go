package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidNumber means the raw input could not be parsed as a base-10 integer.
	ErrInvalidNumber = errors.New("not a whole number")
	// ErrNegativeAmount means the raw input parsed to a negative integer.
	ErrNegativeAmount = errors.New("negative amounts are not allowed")
	// ErrAmountOutOfRange means the raw input exceeds MaxAmount.
	ErrAmountOutOfRange = errors.New("amount is too large")
	// ErrOutOfRangeMargin is reported when the profit margin falls outside every advisory band.
	ErrOutOfRangeMargin = errors.New("profit margin is outside the normal range")
)

// WarningKind identifies the type of a non-fatal evaluation notice.
type WarningKind string

const (
	// InvalidNumericInput is raised per field when raw input was replaced by zero.
	InvalidNumericInput WarningKind = "invalid_numeric_input"
	// OutOfRangeMargin is raised when the classifier had to use its fallback tier.
	OutOfRangeMargin WarningKind = "out_of_range_margin"
)

// Warning is a recoverable notice produced during evaluation.
// It implements error so callers can match the cause with errors.Is.
type Warning struct {
	Kind  WarningKind `json:"kind"`
	Field string      `json:"field,omitempty"`
	Label string      `json:"label,omitempty"`
	Raw   string      `json:"raw,omitempty"`
	// Message is a human-readable description, suitable for display as-is.
	Message string `json:"message"`

	cause error
}

func newInputWarning(c Category, raw string, cause error) *Warning {
	return &Warning{
		Kind:    InvalidNumericInput,
		Field:   c.Key(),
		Label:   c.Prompt(),
		Raw:     raw,
		Message: fmt.Sprintf("Please enter a valid number for: %s", c.Prompt()),
		cause:   cause,
	}
}

func newMarginWarning() *Warning {
	return &Warning{
		Kind:    OutOfRangeMargin,
		Message: "Profit margin seems outside the normal range. Please verify your inputs.",
		cause:   ErrOutOfRangeMargin,
	}
}

func (w *Warning) Error() string {
	if w.cause == nil {
		return w.Message
	}
	if w.Field != "" {
		return fmt.Sprintf("%s: %q: %v", w.Field, w.Raw, w.cause)
	}
	return w.cause.Error()
}

func (w *Warning) Unwrap() error {
	return w.cause
}
