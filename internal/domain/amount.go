package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Amount is a lenient JSON number. Numbers, numeric strings, null and garbage
// all decode without error; anything that is not a finite number becomes 0.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			*a = 0
			return nil
		}
		b = []byte(s)
	}
	*a = Amount(SafeFloat(string(b)))
	return nil
}

// Float64 returns the amount as a finite float64.
func (a Amount) Float64() float64 {
	return Finite(float64(a))
}

// AmountPtr is a helper for building holdings with an explicit current value.
func AmountPtr(f float64) *Amount {
	a := Amount(f)
	return &a
}

// Text is a lenient JSON string. Numbers and booleans decode to their literal
// text, objects and arrays to their raw JSON, and null to "".
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*t = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*t = ""
			return nil
		}
		*t = Text(s)
	default:
		*t = Text(b)
	}
	return nil
}

func (t *Text) ptr() *string {
	if t == nil {
		return nil
	}
	s := string(*t)
	return &s
}
