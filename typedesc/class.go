package typedesc

import "reflect"

// Callable pairs a signature with the documentation attached to it.
type Callable struct {
	Name      string
	Doc       string
	Signature Signature
	// Static marks methods that take no receiver.
	Static bool
}

// Class describes a class-like source object: an initializer, base classes
// and named methods. Type optionally carries the concrete Go type backing
// the class, so that descriptor trees built independently from the same
// prototype still compare as related.
type Class struct {
	Name    string
	Doc     string
	Init    *Callable
	Bases   []*Class
	Methods map[string]*Callable
	Type    reflect.Type
}

// InitCallable returns the initializer, or an empty one named after the
// class when none was declared.
func (c *Class) InitCallable() *Callable {
	if c.Init != nil {
		return c.Init
	}
	return &Callable{Name: c.Name}
}

// MRO returns the method resolution order: the class itself first, then its
// ancestors depth-first in declaration order, keeping only the first
// occurrence of each class.
func (c *Class) MRO() []*Class {
	var order []*Class
	seen := make(map[*Class]struct{})

	var walk func(*Class)
	walk = func(cl *Class) {
		if cl == nil {
			return
		}
		if _, ok := seen[cl]; ok {
			return
		}
		seen[cl] = struct{}{}
		order = append(order, cl)
		for _, base := range cl.Bases {
			walk(base)
		}
	}
	walk(c)

	return order
}

// Method resolves a named method along the MRO.
func (c *Class) Method(name string) (*Callable, bool) {
	for _, cl := range c.MRO() {
		if m, ok := cl.Methods[name]; ok {
			return m, m != nil
		}
	}
	return nil, false
}

// IsSubclassOf reports whether c is base or inherits from it. Ancestors
// carrying the same concrete Go type as base also match, so descriptors
// built separately from one prototype stay compatible.
func (c *Class) IsSubclassOf(base *Class) bool {
	if c == nil || base == nil {
		return false
	}
	for _, cl := range c.MRO() {
		if cl == base {
			return true
		}
		if base.Type != nil && cl.Type != nil && cl.Type == base.Type {
			return true
		}
	}
	return false
}
