package engine

import (
	"errors"
	"strconv"
	"strings"
)

// MaxAmount is the largest amount accepted for a single field.
// Twelve-fold projections of eight such fields stay well inside int64.
const MaxAmount int64 = 1_000_000_000_000_000

// Normalize turns the raw text entered for a category into a non-negative amount.
//
// Blank input is zero. Input that is not a base-10 integer, is negative, or is larger
// than MaxAmount is also zero, and the returned warning says why. The warning is nil
// whenever the input was usable as entered.
func Normalize(c Category, raw string) (int64, *Warning) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, newInputWarning(c, raw, ErrAmountOutOfRange)
		}
		return 0, newInputWarning(c, raw, ErrInvalidNumber)
	}

	switch {
	case v < 0:
		return 0, newInputWarning(c, raw, ErrNegativeAmount)
	case v > MaxAmount:
		return 0, newInputWarning(c, raw, ErrAmountOutOfRange)
	}

	return v, nil
}
