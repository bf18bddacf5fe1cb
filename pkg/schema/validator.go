package schema

import (
	"errors"
	"fmt"
)

// ErrUnknownRule is returned when a named rule cannot be resolved.
var ErrUnknownRule = errors.New("schema: unknown rule")

// Validator describes the rules attached to a field. It is one of Named,
// Inline or List.
type Validator interface {
	validator()
}

// Named references a rule registered under a name (e.g. "email").
type Named string

// Inline carries a rule function directly.
type Inline RuleFunc

// List composes validators; entries run in declaration order.
type List []Validator

func (Named) validator()  {}
func (Inline) validator() {}
func (List) validator()   {}

// Rules builds a List of named rules.
func Rules(names ...string) List {
	out := make(List, 0, len(names))
	for _, name := range names {
		out = append(out, Named(name))
	}
	return out
}

// Bound is a resolved rule ready to run.
type Bound struct {
	// Name is the registry name, empty for inline rules.
	Name string
	Fn   RuleFunc
}

// Resolver looks up named rules.
type Resolver interface {
	Lookup(name string) (RuleFunc, bool)
}

// Flatten normalizes v into an ordered list of callables. Nested lists are
// expanded depth-first so the declared order is kept. Nil entries are
// skipped; unknown names fail with ErrUnknownRule.
func Flatten(v Validator, resolver Resolver) ([]Bound, error) {
	var out []Bound
	if err := flatten(v, resolver, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func flatten(v Validator, resolver Resolver, out *[]Bound) error {
	switch typed := v.(type) {
	case nil:
		return nil
	case Named:
		if resolver == nil {
			return fmt.Errorf("%w %q: no registry", ErrUnknownRule, string(typed))
		}
		fn, ok := resolver.Lookup(string(typed))
		if !ok || fn == nil {
			return fmt.Errorf("%w %q", ErrUnknownRule, string(typed))
		}
		*out = append(*out, Bound{Name: string(typed), Fn: fn})
	case Inline:
		if typed == nil {
			return nil
		}
		*out = append(*out, Bound{Fn: RuleFunc(typed)})
	case List:
		for _, entry := range typed {
			if err := flatten(entry, resolver, out); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("schema: unsupported validator %T", v)
	}
	return nil
}
