package schema

import (
	"fmt"
	"reflect"
)

// Validate checks that the node is well formed: it has an id, is an object,
// declares at least one property, and every property is itself valid.
// All problems are reported together as *ValidationErrors.
func (n Node) Validate() error {
	errs := &ValidationErrors{}

	if n.ID == "" {
		errs.Add("id", "node id is required")
	}
	if n.Type != TypeNameObject {
		errs.AddError(&ValidationError{
			Path:    joinPath(n.ID, "type"),
			Message: fmt.Sprintf("node type must be %q, got %q", TypeNameObject, n.Type),
			Value:   n.Type,
		})
	}
	if len(n.Properties) == 0 {
		errs.Add(joinPath(n.ID, "properties"), "node declares no properties")
	}

	for _, key := range n.PropertyKeys() {
		if key == "" {
			errs.Add(joinPath(n.ID, "properties"), "property key is empty")
			continue
		}
		errs.Merge(n.Properties[key].check(key))
	}

	return errs.AsError()
}

// Validate checks a single property declared under key.
func (p Property) Validate(key string) error {
	return p.check(key).AsError()
}

func (p Property) check(key string) *ValidationErrors {
	errs := &ValidationErrors{}

	if !knownTypes[p.Type] {
		errs.AddError(&ValidationError{
			Path:    joinPath(key, "type"),
			Message: fmt.Sprintf("unknown property type %q", p.Type),
			Value:   p.Type,
		})
		// Nothing else can be checked without a type.
		return errs
	}

	for i, v := range p.Enum {
		path := fmt.Sprintf("%s[%d]", joinPath(key, "enum"), i)
		if !matchesType(v, p.Type) {
			errs.AddError(NewTypeError(path, p.Type, v))
			continue
		}
		for _, prev := range p.Enum[:i] {
			if valuesEqual(prev, v) {
				errs.AddError(&ValidationError{
					Path:    path,
					Message: fmt.Sprintf("duplicate enum value %v", v),
					Value:   v,
				})
				break
			}
		}
	}

	if p.Default != nil {
		path := joinPath(key, "default")
		switch {
		case !matchesType(p.Default, p.Type):
			errs.AddError(NewTypeError(path, p.Type, p.Default))
		case !p.Allows(p.Default):
			errs.AddError(NewEnumError(path, p.Default, p.Enum))
		}
	}

	return errs
}

// ValidateValue checks a user-supplied value against the property's type and
// enumeration. path is used for error reporting only.
func (p Property) ValidateValue(path string, value any) error {
	if !matchesType(value, p.Type) {
		return NewTypeError(path, p.Type, value)
	}
	if !p.Allows(value) {
		return NewEnumError(path, value, p.Enum)
	}
	return nil
}

// matchesType checks if a value matches a JSON Schema type.
func matchesType(value any, typ string) bool {
	switch typ {
	case TypeNameString:
		_, ok := value.(string)
		return ok
	case TypeNameNumber:
		return isNumber(value)
	case TypeNameInteger:
		return isInteger(value)
	case TypeNameBoolean:
		_, ok := value.(bool)
		return ok
	case TypeNameArray:
		return isArray(value)
	case TypeNameObject:
		_, ok := value.(map[string]any)
		return ok
	default:
		return false
	}
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	default:
		return false
	}
}

func isInteger(v any) bool {
	switch val := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float32:
		return float32(int32(val)) == val
	case float64:
		// Decoded JSON numbers are float64.
		return float64(int64(val)) == val
	default:
		return false
	}
}

func isArray(v any) bool {
	switch v.(type) {
	case []any, []string, []int, []int64, []float64, []bool:
		return true
	default:
		return false
	}
}

func toFloat64(v any) float64 {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	default:
		return 0
	}
}

// valuesEqual compares enum members. Numbers compare by value so that an int
// literal matches the float64 produced by a JSON decoder.
func valuesEqual(a, b any) bool {
	if isNumber(a) && isNumber(b) {
		return toFloat64(a) == toFloat64(b)
	}
	return reflect.DeepEqual(a, b)
}

func containsValue(values []any, value any) bool {
	for _, v := range values {
		if valuesEqual(v, value) {
			return true
		}
	}
	return false
}

func joinPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}
