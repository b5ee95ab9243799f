package osascript

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/tidwall/gjson"
)

// DecodeError reports script output that does not fit the expected shape.
type DecodeError struct {
	Output string
	Err    error
}

func (e *DecodeError) Error() string {
	out := e.Output
	if len(out) > 200 {
		out = out[:200] + "..."
	}
	return fmt.Sprintf("unexpected script output %q: %v", out, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsNull reports whether the output is the bare null token that lookups
// print when nothing matched.
func IsNull(out string) bool {
	out = strings.TrimSpace(out)
	return gjson.Valid(out) && gjson.Parse(out).Type == gjson.Null
}

// Decode interprets runner output as T, dispatching on the shape of the
// output rather than trying an unmarshal and seeing what sticks.
//
//   - Empty output and a bare null are the zero value, with slices made
//     empty rather than nil.
//   - For string, a JSON string is unquoted and anything else (a bare
//     identifier, a number) is returned verbatim.
//   - For slices the output must be a JSON array, for structs and maps a
//     JSON object. Any other shape is a *DecodeError.
func Decode[T any](out string) (T, error) {
	var v T
	out = strings.TrimSpace(out)
	if out == "" {
		return emptySlices(v), nil
	}

	if s, ok := any(&v).(*string); ok {
		if res := gjson.Parse(out); gjson.Valid(out) && res.Type == gjson.String {
			*s = res.Str
		} else {
			*s = out
		}
		return v, nil
	}

	if !gjson.Valid(out) {
		return v, &DecodeError{Output: out, Err: errors.New("not valid JSON")}
	}
	res := gjson.Parse(out)
	if res.Type == gjson.Null {
		return emptySlices(v), nil
	}
	if want := expectedShape(reflect.TypeOf(v)); want != "" && shapeOf(res) != want {
		return v, &DecodeError{Output: out, Err: fmt.Errorf("expected JSON %s, got %s", want, shapeOf(res))}
	}
	if err := json.Unmarshal([]byte(res.Raw), &v); err != nil {
		return v, &DecodeError{Output: out, Err: err}
	}
	return emptySlices(v), nil
}

func expectedShape(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	}
	return ""
}

func shapeOf(res gjson.Result) string {
	switch {
	case res.IsArray():
		return "array"
	case res.IsObject():
		return "object"
	}
	switch res.Type {
	case gjson.String:
		return "string"
	case gjson.Number:
		return "number"
	case gjson.True, gjson.False:
		return "boolean"
	}
	return "null"
}

func emptySlices[T any](v T) T {
	rv := reflect.ValueOf(&v).Elem()
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		rv.Set(reflect.MakeSlice(rv.Type(), 0, 0))
	}
	return v
}
