package ai

// SchemaType enumerates the value kinds a response schema can declare.
type SchemaType int

const (
	TypeString SchemaType = iota
	TypeInteger
	TypeNumber
	TypeBoolean
	TypeArray
	TypeObject
)

func (t SchemaType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	default:
		return "unknown"
	}
}

// geminiType returns the uppercase type name the Gemini responseSchema
// format uses.
func (t SchemaType) geminiType() string {
	switch t {
	case TypeString:
		return "STRING"
	case TypeInteger:
		return "INTEGER"
	case TypeNumber:
		return "NUMBER"
	case TypeBoolean:
		return "BOOLEAN"
	case TypeArray:
		return "ARRAY"
	case TypeObject:
		return "OBJECT"
	default:
		return "STRING"
	}
}

// Schema declares the expected shape of a generated response. Each content
// kind declares its schema once; the same declaration is rendered as a
// Gemini responseSchema for the outbound request and as a JSON Schema
// document for post-parse validation.
type Schema struct {
	Type        SchemaType
	Description string
	Enum        []string
	Items       *Schema            // set when Type is TypeArray
	Properties  map[string]*Schema // set when Type is TypeObject
	Required    []string
	Minimum     *float64
	Maximum     *float64
}

// String declares a string field.
func String(desc string) *Schema {
	return &Schema{Type: TypeString, Description: desc}
}

// Enum declares a string field restricted to the given values.
func Enum(desc string, values ...string) *Schema {
	return &Schema{Type: TypeString, Description: desc, Enum: values}
}

// Integer declares an integer field.
func Integer(desc string) *Schema {
	return &Schema{Type: TypeInteger, Description: desc}
}

// IntegerRange declares an integer field bounded to [min, max].
func IntegerRange(desc string, min, max float64) *Schema {
	return &Schema{Type: TypeInteger, Description: desc, Minimum: &min, Maximum: &max}
}

// ArrayOf declares an array whose elements match items.
func ArrayOf(desc string, items *Schema) *Schema {
	return &Schema{Type: TypeArray, Description: desc, Items: items}
}

// Object declares an object with the given properties, all required.
func Object(props map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: TypeObject, Properties: props, Required: required}
}

// Gemini renders the schema in the Gemini generateContent responseSchema
// format (an OpenAPI subset with uppercase type names).
func (s *Schema) Gemini() map[string]any {
	m := map[string]any{"type": s.Type.geminiType()}
	if s.Description != "" {
		m["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		m["enum"] = s.Enum
	}
	if s.Items != nil {
		m["items"] = s.Items.Gemini()
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, p := range s.Properties {
			props[name] = p.Gemini()
		}
		m["properties"] = props
	}
	if len(s.Required) > 0 {
		m["required"] = s.Required
	}
	if s.Minimum != nil {
		m["minimum"] = *s.Minimum
	}
	if s.Maximum != nil {
		m["maximum"] = *s.Maximum
	}
	return m
}

// JSONSchema renders the schema as a standard JSON Schema document suitable
// for validating a parsed response. Extra properties are tolerated; only
// declared fields and types are enforced.
func (s *Schema) JSONSchema() map[string]any {
	m := map[string]any{"type": s.Type.String()}
	if len(s.Enum) > 0 {
		m["enum"] = s.Enum
	}
	if s.Items != nil {
		m["items"] = s.Items.JSONSchema()
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, p := range s.Properties {
			props[name] = p.JSONSchema()
		}
		m["properties"] = props
	}
	if len(s.Required) > 0 {
		m["required"] = s.Required
	}
	if s.Minimum != nil {
		m["minimum"] = *s.Minimum
	}
	if s.Maximum != nil {
		m["maximum"] = *s.Maximum
	}
	return m
}
