package typedesc

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

var (
	ErrNotAFunction = errors.New("provided value is not a function")
	ErrNotAStruct   = errors.New("prototype is not a struct or pointer to struct")
)

// ReceiverName is the synthesized first parameter of class initializers and
// bound methods.
const ReceiverName = "self"

// CallableFromFunc builds a Callable descriptor by reflecting over fn.
// Parameter names come from paramNames; missing names are synthesized as
// arg0, arg1, and so on. A variadic final argument becomes a VarPositional
// parameter.
//
// Go reflection exposes neither parameter names nor defaults, so every
// parameter of the result is required. Build the Signature by hand or use
// ClassFromStruct for richer descriptors.
func CallableFromFunc(name string, fn any, paramNames ...string) (*Callable, error) {
	if fn == nil {
		return nil, ErrNotAFunction
	}
	fnType := reflect.TypeOf(fn)
	if fnType.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: %T", ErrNotAFunction, fn)
	}

	var sig Signature
	for i := 0; i < fnType.NumIn(); i++ {
		pname := fmt.Sprintf("arg%d", i)
		if i < len(paramNames) && paramNames[i] != "" {
			pname = paramNames[i]
		}
		ptype := fnType.In(i)
		kind := PositionalOrKeyword
		if fnType.IsVariadic() && i == fnType.NumIn()-1 {
			kind = VarPositional
			ptype = ptype.Elem()
		}
		sig.Params = append(sig.Params, Param{Name: pname, Kind: kind, Type: ptype})
	}

	return &Callable{Name: name, Signature: sig}, nil
}

// ClassFromStruct builds a Class descriptor from a struct prototype.
//
// Each exported field becomes an initializer parameter: its name comes from
// the `arg` tag (or the snake_cased field name), its annotation from the
// field type, and its default from the prototype's field value. Tag options:
//
//	arg:"-"              exclude the field
//	arg:"name,required"  no default; the prototype value is ignored
//	arg:",args"          declare a *args-style catch-all
//	arg:",kwargs"        declare a **kwargs-style catch-all
//
// Embedded structs become base classes. When a struct embeds bases and
// declares no catch-alls of its own, variadic parameters are synthesized so
// inherited parameters keep propagating, mirroring how embedded fields stay
// assignable in Go.
func ClassFromStruct(name string, prototype any, doc string) (*Class, error) {
	rv := reflect.ValueOf(prototype)
	if !rv.IsValid() {
		return nil, ErrNotAStruct
	}
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv = reflect.New(rv.Type().Elem()).Elem()
		} else {
			rv = rv.Elem()
		}
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T", ErrNotAStruct, prototype)
	}
	rt := rv.Type()

	params := []Param{{Name: ReceiverName, Kind: PositionalOrKeyword}}
	var bases []*Class
	hasArgs, hasKwargs := false, false

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if field.PkgPath != "" {
			continue // unexported
		}
		tag := field.Tag.Get("arg")
		if tag == "-" {
			continue
		}
		tagName, tagOpts := splitArgTag(tag)

		if field.Anonymous && tagName == "" {
			base, err := ClassFromStruct(field.Type.Name(), rv.Field(i).Interface(), "")
			if err != nil {
				return nil, err
			}
			bases = append(bases, base)
			continue
		}

		pname := tagName
		if pname == "" {
			pname = snakeCase(field.Name)
		}
		param := Param{Name: pname, Kind: PositionalOrKeyword, Type: field.Type}
		switch {
		case tagOpts["args"]:
			param.Kind = VarPositional
			hasArgs = true
		case tagOpts["kwargs"]:
			param.Kind = VarKeyword
			hasKwargs = true
		case !tagOpts["required"]:
			param.Default = rv.Field(i).Interface()
			param.HasDefault = true
		}
		params = append(params, param)
	}

	if len(bases) > 0 {
		if !hasArgs {
			params = append(params, Param{Name: "args", Kind: VarPositional})
		}
		if !hasKwargs {
			params = append(params, Param{Name: "kwargs", Kind: VarKeyword})
		}
	}

	return &Class{
		Name:  name,
		Doc:   doc,
		Init:  &Callable{Name: name, Signature: Signature{Params: params}},
		Bases: bases,
		Type:  rt,
	}, nil
}

func splitArgTag(tag string) (string, map[string]bool) {
	opts := make(map[string]bool)
	if tag == "" {
		return "", opts
	}
	parts := strings.Split(tag, ",")
	for _, opt := range parts[1:] {
		opts[opt] = true
	}
	return parts[0], opts
}

func snakeCase(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			boundary := i > 0 &&
				(!unicode.IsUpper(runes[i-1]) || (i+1 < len(runes) && !unicode.IsUpper(runes[i+1])))
			if boundary {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
