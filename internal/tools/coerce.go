package tools

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/neboloop/nebo-contacts/internal/contacts"
)

// Kind is the primitive type a field accepts.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindLabeledValues
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindLabeledValues:
		return "array"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Field declares one named input of a tool.
type Field struct {
	Name        string
	Kind        Kind
	Required    bool
	Description string
	// NonEmpty treats an empty string as absent.
	NonEmpty bool
}

// ValidationError is returned before any script runs when a required field
// is missing.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " is required"
}

// Args holds coerced arguments. A key is present only if the caller supplied
// a value of the declared kind.
type Args map[string]any

// Coerce keeps each declared field whose runtime type matches its kind and
// drops the rest, so a string field given a number is simply absent. It then
// checks required fields in declaration order.
func Coerce(fields []Field, raw map[string]any) (Args, error) {
	args := make(Args, len(fields))
	for _, f := range fields {
		v, ok := raw[f.Name]
		if !ok || v == nil {
			continue
		}
		if c, ok := coerceValue(f, v); ok {
			args[f.Name] = c
		}
	}
	for _, f := range fields {
		if _, ok := args[f.Name]; f.Required && !ok {
			return nil, &ValidationError{Field: f.Name}
		}
	}
	return args, nil
}

func coerceValue(f Field, v any) (any, bool) {
	switch f.Kind {
	case KindString:
		s, ok := v.(string)
		if !ok || (f.NonEmpty && s == "") {
			return nil, false
		}
		return s, true
	case KindNumber:
		return toNumber(v)
	case KindLabeledValues:
		return toLabeledValues(v)
	}
	return nil, false
}

func toNumber(v any) (float64, bool) {
	var n float64
	switch x := v.(type) {
	case float64:
		n = x
	case float32:
		n = float64(x)
	case int:
		n = float64(x)
	case int64:
		n = float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// toLabeledValues accepts an array of {label, value} objects. Entries that
// are not objects or lack a string value are dropped; a missing label is
// left empty for the store default.
func toLabeledValues(v any) ([]contacts.LabeledValue, bool) {
	switch items := v.(type) {
	case []contacts.LabeledValue:
		return items, true
	case []any:
		out := make([]contacts.LabeledValue, 0, len(items))
		for _, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			value, ok := obj["value"].(string)
			if !ok {
				continue
			}
			label, _ := obj["label"].(string)
			out = append(out, contacts.LabeledValue{Label: label, Value: value})
		}
		return out, true
	}
	return nil, false
}

// String returns a string argument or "".
func (a Args) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// OptString returns a pointer to a string argument, or nil when absent.
func (a Args) OptString(name string) *string {
	s, ok := a[name].(string)
	if !ok {
		return nil
	}
	return &s
}

// Int returns a number argument truncated to int, or 0 when absent.
func (a Args) Int(name string) int {
	n, _ := a[name].(float64)
	return int(n)
}

// LabeledValues returns a labeled-value array argument or nil.
func (a Args) LabeledValues(name string) []contacts.LabeledValue {
	v, _ := a[name].([]contacts.LabeledValue)
	return v
}
