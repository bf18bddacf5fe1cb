package field

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/goliatone/go-formbind/pkg/accessor"
	"github.com/goliatone/go-formbind/pkg/rules"
	"github.com/goliatone/go-formbind/pkg/schema"
)

var defaultRegistry = sync.OnceValue(func() *rules.Registry {
	return rules.NewRegistry()
})

// Field binds one schema to a model. It exposes the bound value, owns the
// schema error list and runs the configured rules.
type Field struct {
	schema   *schema.FieldSchema
	model    any
	registry *rules.Registry
	hub      *accessor.Hub
	logger   *slog.Logger

	formatter            any
	disabled             bool
	validateAfterChanged bool

	trigger Trigger
	writing bool
	cancel  func()
}

// New binds s to model. The schema error list is allocated when missing and
// ShowHelp is reset. The current value primes change detection, so binding
// never fires OnChanged.
func New(s *schema.FieldSchema, model any, opts ...Option) *Field {
	if s == nil {
		s = &schema.FieldSchema{}
	}
	f := &Field{
		schema: s,
		model:  model,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if f.registry == nil {
		f.registry = defaultRegistry()
	}

	s.EnsureErrors()
	s.ShowHelp = false
	f.trigger.Prime(f.Value())

	if f.hub != nil && s.Model != "" {
		f.cancel = f.hub.Watch(s.Model, f.onExternalWrite)
	}
	return f
}

func (f *Field) resolver() accessor.Resolver {
	return accessor.Resolver{Formatter: f.formatter, Hub: f.hub}
}

// Schema returns the bound schema.
func (f *Field) Schema() *schema.FieldSchema { return f.schema }

// Model returns the bound model.
func (f *Field) Model() any { return f.model }

// Path returns the schema model path.
func (f *Field) Path() string { return f.schema.Model }

// Value reads the bound value through the accessor.
func (f *Field) Value() any {
	return f.resolver().Read(f.model, f.schema)
}

// SetValue writes v through the accessor and reacts to the transition:
// OnChanged runs when the value changed and, with ValidateAfterChanged,
// Validate follows. Accessor failures are returned without touching the
// change state.
func (f *Field) SetValue(v any) error {
	f.writing = true
	err := f.resolver().Write(f.model, f.schema, v)
	f.writing = false
	if err != nil {
		return fmt.Errorf("field: %s: %w", f.key(), err)
	}
	return f.Sync()
}

// Sync re-reads the value and reacts when it differs from the last
// observation. Call it after writing the model behind the field's back.
func (f *Field) Sync() error {
	current := f.Value()
	old, changed := f.trigger.Observe(current)
	if !changed {
		return nil
	}
	f.logger.Debug("field: value changed", slog.String("field", f.key()))
	if f.schema.OnChanged != nil {
		f.schema.OnChanged(f.model, current, old, f.schema)
	}
	if f.validateAfterChanged {
		if _, err := f.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (f *Field) onExternalWrite(string) {
	if f.writing {
		return
	}
	if err := f.Sync(); err != nil {
		f.logger.Error("field: sync after write failed", slog.String("field", f.key()), slog.Any("error", err))
	}
}

// Validate clears the error list and runs the rules in declaration order,
// appending every message they return. Readonly and disabled fields run no
// rule. OnValidated receives the final messages unless a rule reports a
// configuration error, in which case the messages gathered so far are
// returned along with the error.
func (f *Field) Validate() ([]string, error) {
	errs := f.schema.EnsureErrors()
	f.ClearValidationErrors()

	if f.schema.Readonly || f.disabled {
		f.validated(errs)
		return errs.Items(), nil
	}

	bound, err := schema.Flatten(f.schema.Validator, f.registry)
	if err != nil {
		return errs.Items(), fmt.Errorf("field: %s: %w", f.key(), err)
	}

	value := f.Value()
	for _, rule := range bound {
		res, err := rule.Fn(value, f.schema, f.model)
		if err != nil {
			name := rule.Name
			if name == "" {
				name = "inline"
			}
			return errs.Items(), fmt.Errorf("field: %s: rule %s: %w", f.key(), name, err)
		}
		errs.Append(res...)
	}

	f.logger.Debug("field: validated",
		slog.String("field", f.key()),
		slog.Int("rules", len(bound)),
		slog.Int("errors", errs.Len()),
	)
	f.validated(errs)
	return errs.Items(), nil
}

func (f *Field) validated(errs *schema.ErrorList) {
	if f.schema.OnValidated != nil {
		f.schema.OnValidated(f.model, errs.Items(), f.schema)
	}
}

// ClearValidationErrors empties the error list in place. It is idempotent
// and never replaces the list once allocated.
func (f *Field) ClearValidationErrors() {
	f.schema.EnsureErrors().Clear()
}

// IsInvalid reports whether the error list holds any message.
func (f *Field) IsInvalid() bool {
	return !f.schema.Errors.Empty()
}

// Errors returns a snapshot of the current messages.
func (f *Field) Errors() []string {
	return f.schema.Errors.Items()
}

// ToggleHelp flips ShowHelp.
func (f *Field) ToggleHelp() {
	f.schema.ShowHelp = !f.schema.ShowHelp
}

// SetDisabled changes the disabled state. Disabled fields skip their rules.
func (f *Field) SetDisabled(disabled bool) { f.disabled = disabled }

// Disabled reports the disabled state.
func (f *Field) Disabled() bool { return f.disabled }

// Close detaches the field from the hub.
func (f *Field) Close() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

func (f *Field) key() string {
	if key := f.schema.Key(); key != "" {
		return key
	}
	return "<unbound>"
}
