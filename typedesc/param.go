package typedesc

import "reflect"

// ParamKind classifies how a parameter is declared in a signature.
type ParamKind int

const (
	// PositionalOrKeyword is an ordinary named parameter.
	PositionalOrKeyword ParamKind = iota
	// VarPositional is a catch-all positional parameter (*args style).
	VarPositional
	// VarKeyword is a catch-all keyword parameter (**kwargs style).
	VarKeyword
)

// String returns a human-readable kind name.
func (k ParamKind) String() string {
	switch k {
	case PositionalOrKeyword:
		return "positional_or_keyword"
	case VarPositional:
		return "var_positional"
	case VarKeyword:
		return "var_keyword"
	default:
		return "unknown"
	}
}

// Param describes one parameter of a callable.
//
// Type is the declared annotation and is nil when the source had none.
// A parameter with neither a default nor a factory is required. Factory is
// a deferred default: a zero-argument producer evaluated exactly once when
// the parameter is registered.
type Param struct {
	Name       string
	Kind       ParamKind
	Type       reflect.Type
	Default    any
	HasDefault bool
	Factory    func() any
}

// Required reports whether the parameter has no default value of any form.
func (p Param) Required() bool {
	return !p.HasDefault && p.Factory == nil
}

// ResolveDefault returns the effective default value, invoking the deferred
// factory when one is present.
func (p Param) ResolveDefault() any {
	if p.Factory != nil {
		return p.Factory()
	}
	return p.Default
}

// Signature is an ordered parameter list.
type Signature struct {
	Params []Param
}

// HasVarPositional reports whether a *args-style parameter is declared.
func (s Signature) HasVarPositional() bool {
	for _, p := range s.Params {
		if p.Kind == VarPositional {
			return true
		}
	}
	return false
}

// HasVarKeyword reports whether a **kwargs-style parameter is declared.
func (s Signature) HasVarKeyword() bool {
	for _, p := range s.Params {
		if p.Kind == VarKeyword {
			return true
		}
	}
	return false
}
