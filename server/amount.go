package server

import (
	"bytes"
	"encoding/json"
	"errors"
)

var errInvalidAmountType = errors.New("amounts must be numbers, strings or null")

// rawAmount is an amount as sent by the client. Numbers keep their literal
// text so the engine sees exactly what was sent; null means blank.
type rawAmount string

func (r *rawAmount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errInvalidAmountType
	}

	switch c := data[0]; {
	case bytes.Equal(data, []byte("null")):
		*r = ""
	case c == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = rawAmount(s)
	case c == '-' || (c >= '0' && c <= '9'):
		*r = rawAmount(data)
	default:
		return errInvalidAmountType
	}

	return nil
}
