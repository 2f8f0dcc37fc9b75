package typedesc

import (
	"fmt"
	"reflect"
)

// TypeClass buckets effective parameter types for option-kind dispatch.
type TypeClass int

const (
	_ TypeClass = iota // skip zero value, use it as "no usable class"

	ClassString
	ClassInt
	ClassFloat
	ClassBool
	ClassEnum

	// ClassTotal is the total number of classes defined.
	ClassTotal = int(iota) - 1
)

// String returns a human-readable class name.
func (c TypeClass) String() string {
	switch c {
	case ClassString:
		return "string"
	case ClassInt:
		return "int"
	case ClassFloat:
		return "float"
	case ClassBool:
		return "bool"
	case ClassEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// IsSimple reports whether the class maps to a plain typed option.
func (c TypeClass) IsSimple() bool {
	switch c {
	case ClassString, ClassInt, ClassFloat, ClassBool:
		return true
	default:
		return false
	}
}

// Enum is the convention for enumeration types usable as choice options:
// String names the current value, Choices lists every valid name, and Set
// parses a name into the receiver (so it is implemented on a pointer).
type Enum interface {
	fmt.Stringer
	Choices() []string
	Set(name string) error
}

var enumType = reflect.TypeOf((*Enum)(nil)).Elem()

// IsEnum reports whether rtype follows the Enum convention.
func IsEnum(rtype reflect.Type) bool {
	if rtype == nil {
		return false
	}
	return rtype.Implements(enumType) || reflect.PointerTo(rtype).Implements(enumType)
}

// EnumChoices returns the valid names of an Enum-convention type.
func EnumChoices(rtype reflect.Type) []string {
	e, ok := reflect.New(rtype).Interface().(Enum)
	if !ok {
		return nil
	}
	return e.Choices()
}

// ParseEnum parses name into a value of rtype.
func ParseEnum(rtype reflect.Type, name string) (any, error) {
	ptr := reflect.New(rtype)
	e, ok := ptr.Interface().(Enum)
	if !ok {
		return nil, fmt.Errorf("%v does not follow the enum convention", rtype)
	}
	if err := e.Set(name); err != nil {
		return nil, err
	}
	return ptr.Elem().Interface(), nil
}

// ClassOf classifies an effective type for option-kind dispatch: exact
// builtin simple types first, then the Enum convention, then named types
// whose underlying kind still narrows to text, integer or real number.
// Named bool types do not narrow and classify as unknown.
func ClassOf(rtype reflect.Type) TypeClass {
	if rtype == nil {
		return 0
	}

	// check if true builtin type
	switch rtype {
	case reflect.TypeOf(""):
		return ClassString
	case reflect.TypeOf(int(0)):
		return ClassInt
	case reflect.TypeOf(float64(0)):
		return ClassFloat
	case reflect.TypeOf(false):
		return ClassBool
	}

	if IsEnum(rtype) {
		return ClassEnum
	}

	// check if it's a narrowing subtype of text, integer or real number
	switch rtype.Kind() {
	default:
		return 0
	case reflect.String:
		return ClassString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return ClassInt
	case reflect.Float32, reflect.Float64:
		return ClassFloat
	}
}

// IsNilable reports whether values of rtype can hold nil.
func IsNilable(rtype reflect.Type) bool {
	if rtype == nil {
		return false
	}
	switch rtype.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return true
	default:
		return false
	}
}

// Nullable returns a type based on rtype that can hold nil, wrapping
// non-nilable types in a pointer.
func Nullable(rtype reflect.Type) reflect.Type {
	if rtype == nil || IsNilable(rtype) {
		return rtype
	}
	return reflect.PointerTo(rtype)
}
