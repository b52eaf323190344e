package web

import "encoding/json"

// Amount is a money value sent either as a JSON string or a JSON number.
//
// The literal is kept as written, a number is never decoded through float64.
type Amount string

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		*a = Amount(s)

		return nil
	}

	if string(b) == "null" {
		return nil
	}

	*a = Amount(b)

	return nil
}

// String returns the amount literal.
func (a Amount) String() string {
	return string(a)
}

// StringPtr returns the literal of a supplied amount and nil for an omitted one.
func (a *Amount) StringPtr() *string {
	if a == nil {
		return nil
	}

	s := string(*a)

	return &s
}
