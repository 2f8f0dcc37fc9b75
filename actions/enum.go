// Package actions provides the reference option actions consumed by the
// deriver: an enum-backed choice action, a schema-validating action, a
// config-subtree loading action, and the subclass/class-path machinery.
package actions

import (
	"errors"
	"fmt"
	"reflect"

	"sigargs/typedesc"
)

// ErrNotEnum reports a type that does not follow the enum convention.
var ErrNotEnum = errors.New("type does not follow the enum convention")

// EnumChoice is a choice action backed by an Enum-convention type.
type EnumChoice struct {
	Type reflect.Type

	choices []string
}

// NewEnumChoice builds a choice action for rtype, failing when the type
// does not implement typedesc.Enum.
func NewEnumChoice(rtype reflect.Type) (*EnumChoice, error) {
	if !typedesc.IsEnum(rtype) {
		return nil, fmt.Errorf("%w: %v", ErrNotEnum, rtype)
	}
	return &EnumChoice{Type: rtype, choices: typedesc.EnumChoices(rtype)}, nil
}

// Choices returns the valid names.
func (a *EnumChoice) Choices() []string {
	return append([]string(nil), a.choices...)
}

// Apply parses raw into a typed enum value.
func (a *EnumChoice) Apply(raw string) (any, error) {
	return typedesc.ParseEnum(a.Type, raw)
}
