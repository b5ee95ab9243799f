package tools

import "github.com/google/jsonschema-go/jsonschema"

var labeledValueSchema = &jsonschema.Schema{
	Type: "object",
	Properties: map[string]*jsonschema.Schema{
		"label": {Type: "string", Description: "Label such as mobile, home or work"},
		"value": {Type: "string"},
	},
	Required: []string{"value"},
}

// Schema renders a descriptor's fields as a JSON Schema object.
func Schema(d Descriptor) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(d.Fields)),
	}
	for _, f := range d.Fields {
		prop := &jsonschema.Schema{Description: f.Description}
		switch f.Kind {
		case KindString:
			prop.Type = "string"
		case KindNumber:
			prop.Type = "number"
		case KindLabeledValues:
			prop.Type = "array"
			prop.Items = labeledValueSchema
		}
		s.Properties[f.Name] = prop
		if f.Required {
			s.Required = append(s.Required, f.Name)
		}
	}
	return s
}
