package actions

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"sigargs/typedesc"
)

var (
	// ErrUnknownClassPath reports a class path with no registration.
	ErrUnknownClassPath = errors.New("unknown class path")
	// ErrNotASubclass reports a resolved class outside the base hierarchy.
	ErrNotASubclass = errors.New("class is not a subclass of the base")
)

// Go has no dynamic import, so resolvable classes are registered explicitly
// under dotted paths.
var (
	registryMu sync.RWMutex
	registry   = make(map[string]*typedesc.Class)
)

// RegisterClass makes class resolvable under path.
func RegisterClass(path string, class *typedesc.Class) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[path] = class
}

// LookupClass resolves a registered class path.
func LookupClass(path string) (*typedesc.Class, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	class, ok := registry[path]
	return class, ok
}

// RegisteredPaths returns all registered class paths, sorted.
func RegisteredPaths() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	paths := make([]string, 0, len(registry))
	for path := range registry {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// SubclassSpec is the parsed value of a subclass option.
type SubclassSpec struct {
	ClassPath string         `json:"class_path"          yaml:"class_path"`
	InitArgs  map[string]any `json:"init_args,omitempty" yaml:"init_args,omitempty"`
}

// SubclassValue resolves raw values into SubclassSpec instances validated
// against a base class. Accepted forms: a plain class path, a path to a
// YAML/JSON file holding the mapping, or the inline mapping itself.
type SubclassValue struct {
	Base *typedesc.Class
}

// NewSubclassValue builds the action for base.
func NewSubclassValue(base *typedesc.Class) (*SubclassValue, error) {
	if base == nil {
		return nil, errors.New("subclass action requires a base class")
	}
	return &SubclassValue{Base: base}, nil
}

// Apply resolves and validates raw.
func (a *SubclassValue) Apply(raw string) (any, error) {
	parsed, err := decodeSubclassSpec(raw)
	if err != nil {
		return nil, err
	}
	class, ok := LookupClass(parsed.ClassPath)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClassPath, parsed.ClassPath)
	}
	if !class.IsSubclassOf(a.Base) {
		return nil, fmt.Errorf("%w: %q does not inherit from %s", ErrNotASubclass, parsed.ClassPath, a.Base.Name)
	}
	return parsed, nil
}

var classPathRe = regexp.MustCompile(`^[A-Za-z_][\w.]*$`)

func decodeSubclassSpec(raw string) (SubclassSpec, error) {
	text := strings.TrimSpace(raw)
	if info, err := os.Stat(raw); err == nil && !info.IsDir() {
		data, err := os.ReadFile(raw)
		if err != nil {
			return SubclassSpec{}, err
		}
		text = string(data)
	}

	if classPathRe.MatchString(text) {
		return SubclassSpec{ClassPath: text}, nil
	}

	var parsed SubclassSpec
	if err := yaml.Unmarshal([]byte(text), &parsed); err == nil && parsed.ClassPath != "" {
		return parsed, nil
	}
	return SubclassSpec{}, fmt.Errorf("value %q does not resolve to a class_path mapping", raw)
}

// DescribeFunc renders the derived arguments of a class for help output.
// The rendering is injected to keep this package independent of the deriver.
type DescribeFunc func(*typedesc.Class) (string, error)

// ClassPathHelp resolves a class path and returns the derived-argument help
// text for the resolved class.
type ClassPathHelp struct {
	Base     *typedesc.Class
	Describe DescribeFunc
}

// NewClassPathHelp builds the help-probe action for base.
func NewClassPathHelp(base *typedesc.Class, describe DescribeFunc) *ClassPathHelp {
	return &ClassPathHelp{Base: base, Describe: describe}
}

// Apply resolves raw as a class path and renders its arguments.
func (a *ClassPathHelp) Apply(raw string) (any, error) {
	path := strings.TrimSpace(raw)
	class, ok := LookupClass(path)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClassPath, path)
	}
	if a.Base != nil && !class.IsSubclassOf(a.Base) {
		return nil, fmt.Errorf("%w: %q does not inherit from %s", ErrNotASubclass, path, a.Base.Name)
	}
	if a.Describe == nil {
		return fmt.Sprintf("%s accepts no further inspection", class.Name), nil
	}
	return a.Describe(class)
}
