package transactiondelivery

import "encoding/json"

// optionalString tells an omitted JSON field apart from a supplied one.
// A supplied null reads as the empty string.
type optionalString struct {
	set   bool
	value string
}

func (o *optionalString) UnmarshalJSON(b []byte) error {
	o.set = true

	if string(b) == "null" {
		o.value = ""
		return nil
	}

	return json.Unmarshal(b, &o.value)
}

// ptr returns nil for an omitted field.
func (o optionalString) ptr() *string {
	if !o.set {
		return nil
	}

	v := o.value

	return &v
}
