package actions

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-openapi/spec"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedType reports a type for which no schema can be derived.
var ErrUnsupportedType = errors.New("type cannot be schema-validated")

// JSONSchema validates option values against a schema derived from a Go
// type. Raw values are parsed as YAML, of which JSON is a subset.
type JSONSchema struct {
	Type   reflect.Type
	Schema *spec.Schema

	nullable bool
}

// NewJSONSchema derives a schema for rtype, failing for kinds that have no
// schema representation (functions, channels, non-string map keys, ...).
func NewJSONSchema(rtype reflect.Type) (*JSONSchema, error) {
	if rtype == nil {
		return nil, fmt.Errorf("%w: no type given", ErrUnsupportedType)
	}
	schema, err := schemaFor(rtype, make(map[reflect.Type]bool))
	if err != nil {
		return nil, err
	}
	return &JSONSchema{
		Type:     rtype,
		Schema:   schema,
		nullable: rtype.Kind() == reflect.Pointer,
	}, nil
}

// Apply parses raw and validates it against the schema.
func (a *JSONSchema) Apply(raw string) (any, error) {
	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		return nil, fmt.Errorf("invalid value for %v: %w", a.Type, err)
	}
	if value == nil {
		if a.nullable {
			return nil, nil
		}
		return nil, fmt.Errorf("null is not a valid value for %v", a.Type)
	}
	if err := validate.AgainstSchema(a.Schema, value, strfmt.Default); err != nil {
		return nil, err
	}
	return value, nil
}

func schemaFor(rtype reflect.Type, seen map[reflect.Type]bool) (*spec.Schema, error) {
	switch rtype.Kind() {
	case reflect.Bool:
		return spec.BoolProperty(), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return spec.Int64Property(), nil

	case reflect.Float32, reflect.Float64:
		return spec.Float64Property(), nil

	case reflect.String:
		return spec.StringProperty(), nil

	case reflect.Pointer:
		return schemaFor(rtype.Elem(), seen)

	case reflect.Slice, reflect.Array:
		items, err := schemaFor(rtype.Elem(), seen)
		if err != nil {
			return nil, err
		}
		return spec.ArrayProperty(items), nil

	case reflect.Map:
		if rtype.Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: map key %v", ErrUnsupportedType, rtype.Key())
		}
		values, err := schemaFor(rtype.Elem(), seen)
		if err != nil {
			return nil, err
		}
		return spec.MapProperty(values), nil

	case reflect.Interface:
		if rtype.NumMethod() == 0 {
			return &spec.Schema{}, nil // empty schema accepts anything
		}
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedType, rtype)

	case reflect.Struct:
		if seen[rtype] {
			return nil, fmt.Errorf("%w: recursive type %v", ErrUnsupportedType, rtype)
		}
		seen[rtype] = true
		defer delete(seen, rtype)

		props := make(map[string]spec.Schema)
		for i := 0; i < rtype.NumField(); i++ {
			field := rtype.Field(i)
			if field.PkgPath != "" {
				continue
			}
			fs, err := schemaFor(field.Type, seen)
			if err != nil {
				return nil, err
			}
			props[schemaFieldName(field)] = *fs
		}
		schema := &spec.Schema{}
		schema.Typed("object", "")
		schema.Properties = props
		return schema, nil

	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedType, rtype)
	}
}

func schemaFieldName(field reflect.StructField) string {
	for _, key := range []string{"json", "yaml"} {
		if tag := field.Tag.Get(key); tag != "" {
			name, _, _ := strings.Cut(tag, ",")
			if name != "" && name != "-" {
				return name
			}
		}
	}
	return strings.ToLower(field.Name)
}
