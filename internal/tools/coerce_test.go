package tools

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neboloop/nebo-contacts/internal/contacts"
)

var testFields = []Field{
	{Name: "id", Kind: KindString, Required: true, NonEmpty: true},
	{Name: "name", Kind: KindString},
	{Name: "limit", Kind: KindNumber},
	{Name: "phones", Kind: KindLabeledValues},
}

func TestCoerceDropsMismatchedTypes(t *testing.T) {
	args, err := Coerce(testFields, map[string]any{
		"id":     "X",
		"name":   42.0,
		"limit":  "10",
		"phones": "555",
		"extra":  "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, Args{"id": "X"}, args)
	assert.Nil(t, args.OptString("name"))
	assert.Zero(t, args.Int("limit"))
	assert.Nil(t, args.LabeledValues("phones"))
}

func TestCoerceKeepsMatchingTypes(t *testing.T) {
	args, err := Coerce(testFields, map[string]any{
		"id":    "X",
		"name":  "",
		"limit": json.Number("7"),
		"phones": []any{
			map[string]any{"label": "home", "value": "1"},
			map[string]any{"value": "2"},
			map[string]any{"label": "bad", "value": 3.0},
			"not an object",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "", *args.OptString("name"), "empty string is present for optional fields")
	assert.Equal(t, 7, args.Int("limit"))
	assert.Equal(t, []contacts.LabeledValue{{Label: "home", Value: "1"}, {Value: "2"}}, args.LabeledValues("phones"))
}

func TestCoerceRequired(t *testing.T) {
	for _, raw := range []map[string]any{nil, {}, {"id": nil}, {"id": 1.0}, {"id": ""}} {
		_, err := Coerce(testFields, raw)
		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr), "raw=%v", raw)
		assert.Equal(t, "id", vErr.Field)
		assert.Equal(t, "id is required", err.Error())
	}
}

func TestCoerceNumberForms(t *testing.T) {
	for _, v := range []any{3.0, float32(3), 3, int64(3), json.Number("3.9")} {
		args, err := Coerce([]Field{{Name: "n", Kind: KindNumber}}, map[string]any{"n": v})
		require.NoError(t, err)
		assert.Equal(t, 3, args.Int("n"), "%T", v)
	}
	args, err := Coerce([]Field{{Name: "n", Kind: KindNumber}}, map[string]any{"n": json.Number("x")})
	require.NoError(t, err)
	assert.Empty(t, args)
}
