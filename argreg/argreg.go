// Package argreg holds the option-registration surface the deriver talks
// to: a per-option configuration bundle, group creation, and an in-memory
// reference parser that records registrations without parsing any argv.
package argreg

import (
	"fmt"
	"reflect"
	"strings"
)

// Action validates or transforms a raw argument value into its final form.
// Actions are constructed per option; constructors may reject types they
// cannot support.
type Action interface {
	Apply(raw string) (any, error)
}

// Config is the option configuration bundle recognized by AddArgument.
type Config struct {
	Type       reflect.Type
	Default    any
	HasDefault bool
	Required   bool
	Help       string
	Metavar    string
	Action     Action
	Hidden     bool
}

// Registrar registers named options.
type Registrar interface {
	AddArgument(optStr string, cfg Config) (*Option, error)
}

// Container additionally creates named sub-groups.
type Container interface {
	Registrar
	AddArgumentGroup(title, name string) *Group
}

// Option is one recorded registration.
type Option struct {
	Dest       string
	Flag       string
	Positional bool
	Config     Config
}

// Parser records options and groups; it implements Container. The parser is
// single-writer: callers must not register concurrently against the same
// instance.
type Parser struct {
	opts   map[string]*Option
	order  []string
	groups []*Group
}

// NewParser returns an empty parser.
func NewParser() *Parser {
	return &Parser{opts: make(map[string]*Option)}
}

// AddArgument registers an option. Flag-style options start with "--", all
// others are positional. The destination key (the option string without the
// leading dashes) must be unique per parser.
func (p *Parser) AddArgument(optStr string, cfg Config) (*Option, error) {
	if optStr == "" || optStr == "--" {
		return nil, fmt.Errorf("empty option string")
	}
	dest := strings.TrimPrefix(optStr, "--")
	if _, exists := p.opts[dest]; exists {
		return nil, fmt.Errorf("argument %q: destination %q already registered", optStr, dest)
	}

	opt := &Option{
		Dest:       dest,
		Flag:       optStr,
		Positional: !strings.HasPrefix(optStr, "--"),
		Config:     cfg,
	}
	p.opts[dest] = opt
	p.order = append(p.order, dest)

	return opt, nil
}

// AddArgumentGroup creates a named sub-group that registers into the parser.
func (p *Parser) AddArgumentGroup(title, name string) *Group {
	g := &Group{Title: title, Name: name, parser: p}
	p.groups = append(p.groups, g)
	return g
}

// Lookup returns the option registered under dest.
func (p *Parser) Lookup(dest string) (*Option, bool) {
	opt, ok := p.opts[dest]
	return opt, ok
}

// Options returns all registrations in registration order.
func (p *Parser) Options() []*Option {
	out := make([]*Option, 0, len(p.order))
	for _, dest := range p.order {
		out = append(out, p.opts[dest])
	}
	return out
}

// Groups returns the created groups in creation order.
func (p *Parser) Groups() []*Group {
	return append([]*Group(nil), p.groups...)
}

// Group is a named registration scope delegating storage to its parser.
type Group struct {
	Title string
	Name  string

	parser *Parser
	dests  []string
}

// AddArgument registers an option through the group.
func (g *Group) AddArgument(optStr string, cfg Config) (*Option, error) {
	opt, err := g.parser.AddArgument(optStr, cfg)
	if err != nil {
		return nil, err
	}
	g.dests = append(g.dests, opt.Dest)
	return opt, nil
}

// Dests returns the destinations registered through the group.
func (g *Group) Dests() []string {
	return append([]string(nil), g.dests...)
}
