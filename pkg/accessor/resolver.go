package accessor

import "github.com/goliatone/go-formbind/pkg/schema"

// FieldFormatter transforms the raw model value before it is exposed.
type FieldFormatter interface {
	FormatValueToField(value any) any
}

// ModelFormatter transforms an exposed value before it is written.
type ModelFormatter interface {
	FormatValueToModel(value any) any
}

// Resolver applies the accessor precedence and value transforms for one
// field implementation.
type Resolver struct {
	// Formatter may implement FieldFormatter, ModelFormatter or both.
	Formatter any
	// Hub, when set, is notified after every path write.
	Hub *Hub
}

// Read returns the exposed value: custom getter or path lookup, then
// FormatValueToField. A nil model is only handed to custom getters.
func (r Resolver) Read(model any, s *schema.FieldSchema) any {
	if s == nil {
		return nil
	}
	var value any
	switch {
	case s.Get != nil:
		value = s.Get(model)
	case model != nil && s.Model != "":
		value = Path(s.Model).Read(model)
	}
	if f, ok := r.Formatter.(FieldFormatter); ok {
		value = f.FormatValueToField(value)
	}
	return value
}

// Write stores value: FormatValueToModel, then custom setter or path
// assignment. Dependents watching an overlapping path are notified. Without
// a setter, a nil model makes the write a no-op.
func (r Resolver) Write(model any, s *schema.FieldSchema, value any) error {
	if s == nil || (s.Set == nil && model == nil) {
		return nil
	}
	if f, ok := r.Formatter.(ModelFormatter); ok {
		value = f.FormatValueToModel(value)
	}
	if err := For(s).Write(model, value); err != nil {
		return err
	}
	if s.Model != "" {
		r.Hub.Notify(s.Model)
	}
	return nil
}
