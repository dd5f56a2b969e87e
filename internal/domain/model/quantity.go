package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Quantity is an optional numeric vendor field. The zero value is absent.
type Quantity struct {
	value float64
	ok    bool
}

// Some returns a present Quantity.
func Some(v float64) Quantity { return Quantity{value: v, ok: true} }

// Get returns the value and whether it is present.
func (q Quantity) Get() (float64, bool) { return q.value, q.ok }

// Present reports whether the field carried a usable number.
func (q Quantity) Present() bool { return q.ok }

// UnmarshalJSON accepts numbers and numeric strings. null, empty strings and
// anything unparsable leave the Quantity absent instead of failing the
// whole payload.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	*q = Quantity{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*q = Some(v)
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*q = Some(v)
	}
	return nil
}

// MarshalJSON writes null for an absent Quantity.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if !q.ok {
		return []byte("null"), nil
	}
	return json.Marshal(q.value)
}

// Label is an optional free-text vendor field. Non-string scalars are kept
// as their JSON text.
type Label struct {
	text string
	ok   bool
}

// Text returns a present Label.
func Text(s string) Label { return Label{text: s, ok: true} }

// Get returns the text and whether it is present.
func (l Label) Get() (string, bool) { return l.text, l.ok }

// String returns the text, empty when absent.
func (l Label) String() string { return l.text }

// Or returns the text, or fallback when absent.
func (l Label) Or(fallback string) string {
	if !l.ok {
		return fallback
	}
	return l.text
}

// UnmarshalJSON never fails: objects and arrays are treated as absent.
func (l *Label) UnmarshalJSON(data []byte) error {
	*l = Label{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*l = Text(s)
		}
	case '{', '[':
	default:
		*l = Text(string(data))
	}
	return nil
}

// MarshalJSON writes null for an absent Label.
func (l Label) MarshalJSON() ([]byte, error) {
	if !l.ok {
		return []byte("null"), nil
	}
	return json.Marshal(l.text)
}
