package derive

import (
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"sigargs/argreg"
	"sigargs/docstring"
	"sigargs/typedesc"
)

// AddOption adjusts a single derivation call.
type AddOption func(*addConfig)

type addConfig struct {
	asGroup      bool
	asPositional bool
	skip         map[string]struct{}
	metavar      string
	help         string
}

func newAddConfig(opts []AddOption) addConfig {
	cfg := addConfig{asGroup: true, skip: make(map[string]struct{})}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithoutGroup registers options directly on the parser instead of a new
// argument group.
func WithoutGroup() AddOption {
	return func(c *addConfig) { c.asGroup = false }
}

// AsPositional registers required parameters as positional options.
func AsPositional() AddOption {
	return func(c *addConfig) { c.asPositional = true }
}

// Skip excludes the named parameters from registration.
func Skip(names ...string) AddOption {
	return func(c *addConfig) {
		for _, name := range names {
			c.skip[name] = struct{}{}
		}
	}
}

// WithMetavar overrides the metavar of a subclass option.
func WithMetavar(metavar string) AddOption {
	return func(c *addConfig) { c.metavar = metavar }
}

// WithHelp overrides the help of a subclass option; a %s placeholder stands
// for the base class name.
func WithHelp(help string) AddOption {
	return func(c *addConfig) { c.help = help }
}

// source is one chain position: the callable to inspect, the name of the
// owning object for messages, and its raw docstring texts.
type source struct {
	callable *typedesc.Callable
	owner    string
	docs     []string
}

// AddClassArguments adds one option per eligible parameter of the class's
// initializer chain: the class itself and its ancestors, most-derived
// first. The implicit receiver parameter is always skipped. Returns the
// number of options registered.
func (d *Deriver) AddClassArguments(class *typedesc.Class, nestedKey string, opts ...AddOption) (int, error) {
	if class == nil {
		return 0, fmt.Errorf(`%w: expected "class" to be a class descriptor`, ErrInvalidArgument)
	}

	mro := class.MRO()
	chain := make([]source, 0, len(mro))
	for _, cl := range mro {
		init := cl.InitCallable()
		chain = append(chain, source{
			callable: init,
			owner:    cl.Name,
			docs:     []string{init.Doc, cl.Doc},
		})
	}

	return d.addSignatureArguments(chain, nestedKey, newAddConfig(opts), true, class.Name, "class "+class.Name)
}

// AddMethodArguments adds one option per eligible parameter of the named
// method, resolved along the class's MRO. The first parameter is skipped
// unless the method is static.
func (d *Deriver) AddMethodArguments(class *typedesc.Class, method string, nestedKey string, opts ...AddOption) (int, error) {
	if class == nil {
		return 0, fmt.Errorf(`%w: expected "class" to be a class descriptor`, ErrInvalidArgument)
	}
	m, ok := class.Method(method)
	if !ok {
		return 0, fmt.Errorf(`%w: expected "method" to be a callable member of %s, got %q`, ErrInvalidArgument, class.Name, method)
	}

	display := class.Name + "." + method
	chain := []source{{callable: m, owner: display, docs: []string{m.Doc}}}

	return d.addSignatureArguments(chain, nestedKey, newAddConfig(opts), !m.Static, method, display)
}

// AddFunctionArguments adds one option per eligible parameter of the given
// function descriptor. No parameter is auto-skipped.
func (d *Deriver) AddFunctionArguments(fn *typedesc.Callable, nestedKey string, opts ...AddOption) (int, error) {
	if fn == nil {
		return 0, fmt.Errorf(`%w: expected "function" to be a callable descriptor`, ErrInvalidArgument)
	}

	chain := []source{{callable: fn, owner: fn.Name, docs: []string{fn.Doc}}}

	return d.addSignatureArguments(chain, nestedKey, newAddConfig(opts), false, fn.Name, "function "+fn.Name)
}

// addSignatureArguments walks the callable chain, computes parameter
// propagation, gathers docstrings, and registers one option per eligible
// parameter. It returns the number of distinct destinations registered.
func (d *Deriver) addSignatureArguments(chain []source, nestedKey string, cfg addConfig, skipFirst bool, objName, objDisplay string) (int, error) {
	// Propagation of parameters from deeper chain positions: each position
	// records whether *args / **kwargs propagation is still open when it is
	// reached. The flags only ever narrow, and once both are closed the
	// rest of the chain cannot contribute anything.
	addTypes := [][2]bool{{true, true}}
	hasArgs := chain[0].callable.Signature.HasVarPositional()
	hasKwargs := chain[0].callable.Signature.HasVarKeyword()
	for i := 1; i < len(chain); i++ {
		if !hasArgs && !hasKwargs {
			chain = chain[:i]
			break
		}
		addTypes = append(addTypes, [2]bool{hasArgs, hasKwargs})
		hasArgs = hasArgs && chain[i].callable.Signature.HasVarPositional()
		hasKwargs = hasKwargs && chain[i].callable.Signature.HasVarKeyword()
	}

	docShort, docParams := d.gatherDocstrings(chain)

	target := d.createGroupIfRequested(objName, objDisplay, nestedKey, cfg.asGroup, docShort, true)

	prefix := ""
	if nestedKey != "" {
		prefix = nestedKey + "."
	}
	added := make(map[string]struct{})

	for i, src := range chain {
		addArgs, addKwargs := addTypes[i][0], addTypes[i][1]

		for num, param := range src.callable.Signature.Params {
			name := param.Name
			required := param.Required()
			skipNote := func(reason string, extra ...zap.Field) {
				fields := append([]zap.Field{
					zap.String("parameter", name),
					zap.String("source", src.owner),
					zap.String("reason", reason),
				}, extra...)
				d.log.Debug("skipping parameter", fields...)
			}

			if param.Kind == typedesc.VarPositional || param.Kind == typedesc.VarKeyword ||
				(required && skipFirst && num == 0) ||
				(param.Type == nil && !required && param.Factory == nil && param.Default == nil) {
				continue
			}
			if required && !addArgs {
				skipNote("positional parameter but *args not propagated")
				continue
			}
			if !required && !addKwargs {
				skipNote("keyword parameter but **kwargs not propagated")
				continue
			}
			if _, skip := cfg.skip[name]; skip {
				skipNote("parameter requested to be skipped")
				continue
			}

			annotation := param.Type
			var def any
			if !required {
				def = param.ResolveDefault() // deferred factories run exactly once
				if annotation == nil {
					annotation = reflect.TypeOf(def)
				}
			}

			optCfg := argreg.Config{Help: docParams[name]}
			if !required {
				optCfg.Default = def
				optCfg.HasDefault = true
				if def == nil && annotation != nil && !typedesc.IsNilable(annotation) {
					annotation = typedesc.Nullable(annotation)
				}
			} else if !cfg.asPositional {
				optCfg.Required = true
			}

			switch {
			case typedesc.ClassOf(annotation).IsSimple():
				optCfg.Type = annotation
			case typedesc.ClassOf(annotation) == typedesc.ClassEnum:
				action, err := d.hooks.NewEnumAction(annotation)
				if err != nil {
					skipNote("enum action construction failed", zap.Error(err))
				} else {
					optCfg.Action = action
				}
			default:
				action, err := d.hooks.NewSchemaAction(annotation)
				if err != nil {
					skipNote("type not supported by schema action", zap.Error(err))
				} else {
					optCfg.Action = action
				}
			}

			if optCfg.Type == nil && optCfg.Action == nil {
				if required {
					return len(added), fmt.Errorf("%w: required parameter without a valid type for %s parameter %q",
						ErrInvalidConfiguration, src.owner, name)
				}
				continue
			}

			dest := prefix + name
			if _, dup := added[dest]; dup {
				skipNote("argument already added")
				continue
			}
			optStr := "--" + dest
			if required && cfg.asPositional {
				optStr = dest
			}
			if _, err := target.AddArgument(optStr, optCfg); err != nil {
				return len(added), fmt.Errorf("registering %q: %w", optStr, err)
			}
			added[dest] = struct{}{}
		}
	}

	return len(added), nil
}

// AddSubclassArguments registers a pair of options under nestedKey for
// choosing any registered subclass of base at parse time: a help probe
// (--<key>.help) and the principal option (--<key>), whose value must
// resolve to a mapping with a class path and optional init arguments.
func (d *Deriver) AddSubclassArguments(base *typedesc.Class, nestedKey string, opts ...AddOption) error {
	if base == nil {
		return fmt.Errorf(`%w: expected "base" to be a class descriptor`, ErrInvalidArgument)
	}
	cfg := newAddConfig(opts)

	init := base.InitCallable()
	docShort, _ := d.gatherDocstrings([]source{{
		callable: init,
		owner:    base.Name,
		docs:     []string{init.Doc, base.Doc},
	}})
	group := d.createGroupIfRequested(base.Name, "class "+base.Name, nestedKey, cfg.asGroup, docShort, false)

	helpCfg := argreg.Config{
		Action: d.hooks.NewClassHelpAction(base),
		Help:   fmt.Sprintf("print the arguments accepted by a given subclass of %s", base.Name),
	}
	if _, err := group.AddArgument("--"+nestedKey+".help", helpCfg); err != nil {
		return err
	}

	action, err := d.hooks.NewSubclassAction(base)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	metavar := cfg.metavar
	if metavar == "" {
		metavar = `{"class_path":...[,"init_args":...]}`
	}
	help := cfg.help
	if help == "" {
		help = `Mapping with "class_path" and "init_args" for any subclass of %s.`
	}
	if strings.Contains(help, "%s") {
		help = fmt.Sprintf(help, base.Name)
	}

	_, err = group.AddArgument("--"+nestedKey, argreg.Config{
		Action:  action,
		Metavar: metavar,
		Help:    help,
	})
	return err
}

// gatherDocstrings scans the chain in order: the first non-empty short
// description wins, and the first description per parameter name wins.
// With docstring support disabled it degrades to empty results.
func (d *Deriver) gatherDocstrings(chain []source) (string, map[string]string) {
	params := make(map[string]string)
	if !d.docstrings {
		return "", params
	}

	short := ""
	for _, src := range chain {
		for _, text := range src.docs {
			if strings.TrimSpace(text) == "" {
				continue
			}
			parsed, err := docstring.Parse(text)
			if err != nil {
				d.log.Debug("failed parsing docstring",
					zap.String("source", src.owner), zap.Error(err))
				continue
			}
			if short == "" {
				short = parsed.Short
			}
			for _, p := range parsed.Params {
				if _, ok := params[p.Name]; !ok {
					params[p.Name] = p.Description
				}
			}
		}
	}
	return short, params
}

// createGroupIfRequested returns the registration target: a new named group
// when grouping was requested, the parser itself otherwise. For grouped
// registrations under a nested key a config-subtree loading option is also
// registered, unless configLoad is off (subclass groups handle the key
// themselves).
func (d *Deriver) createGroupIfRequested(objName, objDisplay, nestedKey string, asGroup bool, docShort string, configLoad bool) argreg.Registrar {
	if !asGroup {
		return d.parser
	}

	title := docShort
	if title == "" {
		title = objDisplay
	}
	name := objName
	if nestedKey != "" {
		name = nestedKey
	}
	group := d.parser.AddArgumentGroup(title, name)

	if configLoad && nestedKey != "" {
		cfg := argreg.Config{
			Action: d.hooks.NewConfigLoadAction(nestedKey),
			Help:   "load values for this group from a config source",
			Hidden: true,
		}
		if _, err := group.AddArgument("--"+nestedKey, cfg); err != nil {
			d.log.Debug("config load option not registered",
				zap.String("key", nestedKey), zap.Error(err))
		}
	}
	return group
}
