// Package derive adds parser options based on the signatures of class,
// method and function descriptors: parameter names, type annotations,
// defaults, and the documentation attached to a class hierarchy.
package derive

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"sigargs/actions"
	"sigargs/argreg"
	"sigargs/typedesc"
)

var (
	// ErrInvalidArgument reports a caller mistake: a nil class descriptor,
	// an unknown method, or a nil callable.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidConfiguration reports a required parameter that could not
	// be mapped to any option kind.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// Hooks bundles the action constructors supplied by the collaborating
// options system.
type Hooks struct {
	NewEnumAction       func(rtype reflect.Type) (argreg.Action, error)
	NewSchemaAction     func(rtype reflect.Type) (argreg.Action, error)
	NewConfigLoadAction func(nestedKey string) argreg.Action
	NewSubclassAction   func(base *typedesc.Class) (argreg.Action, error)
	NewClassHelpAction  func(base *typedesc.Class) argreg.Action
}

// DefaultHooks wires the reference actions package.
func DefaultHooks() Hooks {
	return Hooks{
		NewEnumAction: func(rtype reflect.Type) (argreg.Action, error) {
			return actions.NewEnumChoice(rtype)
		},
		NewSchemaAction: func(rtype reflect.Type) (argreg.Action, error) {
			return actions.NewJSONSchema(rtype)
		},
		NewConfigLoadAction: func(nestedKey string) argreg.Action {
			return actions.NewConfigLoad(nestedKey)
		},
		NewSubclassAction: func(base *typedesc.Class) (argreg.Action, error) {
			return actions.NewSubclassValue(base)
		},
		NewClassHelpAction: func(base *typedesc.Class) argreg.Action {
			return actions.NewClassPathHelp(base, DescribeClass)
		},
	}
}

// Deriver derives options from signature descriptors and registers them on
// a parser. Derivations run synchronously in the caller's goroutine and the
// target parser is assumed single-writer.
type Deriver struct {
	parser     argreg.Container
	log        *zap.Logger
	hooks      Hooks
	docstrings bool
}

// Option configures a Deriver.
type Option func(*Deriver)

// WithLogger sets the logger used for debug-level skip notes.
func WithLogger(log *zap.Logger) Option {
	return func(d *Deriver) {
		if log != nil {
			d.log = log
		}
	}
}

// WithHooks replaces the action constructors.
func WithHooks(hooks Hooks) Option {
	return func(d *Deriver) { d.hooks = hooks }
}

// WithDocstrings toggles docstring parsing support. When disabled the
// deriver degrades to empty descriptions instead of failing.
func WithDocstrings(enabled bool) Option {
	return func(d *Deriver) { d.docstrings = enabled }
}

// New creates a Deriver registering into parser.
func New(parser argreg.Container, opts ...Option) *Deriver {
	d := &Deriver{
		parser:     parser,
		log:        zap.NewNop(),
		hooks:      DefaultHooks(),
		docstrings: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DescribeClass derives the arguments of class into a scratch parser and
// renders them one per line. It backs the default class-path help action.
func DescribeClass(class *typedesc.Class) (string, error) {
	parser := argreg.NewParser()
	if _, err := New(parser).AddClassArguments(class, ""); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Arguments of %s:\n", class.Name)
	for _, opt := range parser.Options() {
		fmt.Fprintf(&b, "  %s", opt.Flag)
		if opt.Config.Type != nil {
			fmt.Fprintf(&b, " (%v)", opt.Config.Type)
		}
		if opt.Config.Required {
			b.WriteString(" [required]")
		} else if opt.Config.HasDefault {
			fmt.Fprintf(&b, " (default: %v)", opt.Config.Default)
		}
		if opt.Config.Help != "" {
			fmt.Fprintf(&b, ": %s", opt.Config.Help)
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}
