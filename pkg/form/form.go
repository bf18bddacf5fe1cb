package form

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/goliatone/go-formbind/pkg/accessor"
	"github.com/goliatone/go-formbind/pkg/field"
	"github.com/goliatone/go-formbind/pkg/rules"
	"github.com/goliatone/go-formbind/pkg/schema"
)

// Options holds the form level configuration read by every field.
type Options struct {
	// ValidateAfterChanged runs a field's rules after every value change.
	ValidateAfterChanged bool `json:"validateAfterChanged" yaml:"validateAfterChanged"`
}

// Form groups the fields bound to one model. Fields share a rule registry and
// a write hub so a write through one field re-syncs overlapping fields.
type Form struct {
	model    any
	options  Options
	registry *rules.Registry
	hub      *accessor.Hub
	logger   *slog.Logger

	fields []*field.Field
	keys   []string
}

// Option configures a Form.
type Option func(*Form)

// WithOptions sets the form options.
func WithOptions(options Options) Option {
	return func(f *Form) {
		f.options = options
	}
}

// WithRegistry sets the rule registry shared by every field.
func WithRegistry(reg *rules.Registry) Option {
	return func(f *Form) {
		if reg != nil {
			f.registry = reg
		}
	}
}

// WithLogger sets the logger handed to every field.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// New binds every schema to model in declaration order. Nil schemas are
// skipped.
func New(model any, schemas []*schema.FieldSchema, opts ...Option) *Form {
	f := &Form{
		model:  model,
		hub:    accessor.NewHub(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if f.registry == nil {
		f.registry = rules.NewRegistry(rules.WithLogger(f.logger))
	}

	for idx, s := range schemas {
		if s == nil {
			continue
		}
		f.fields = append(f.fields, field.New(s, model,
			field.WithRegistry(f.registry),
			field.WithHub(f.hub),
			field.WithValidateAfterChanged(f.options.ValidateAfterChanged),
			field.WithLogger(f.logger),
		))
		key := s.Key()
		if key == "" {
			key = fmt.Sprintf("#%d", idx)
		}
		f.keys = append(f.keys, key)
	}
	return f
}

// Model returns the bound model.
func (f *Form) Model() any { return f.model }

// Options returns the form options.
func (f *Form) Options() Options { return f.options }

// Registry returns the shared rule registry.
func (f *Form) Registry() *rules.Registry { return f.registry }

// Fields returns the bound fields in declaration order.
func (f *Form) Fields() []*field.Field {
	return append([]*field.Field(nil), f.fields...)
}

// Field returns the field bound to key (model path, label or #index).
func (f *Form) Field(key string) (*field.Field, bool) {
	for idx, k := range f.keys {
		if k == key {
			return f.fields[idx], true
		}
	}
	return nil, false
}

// Validate runs every field in declaration order and returns the messages
// of invalid fields keyed like Field. A configuration error stops the run;
// the messages collected so far are returned with it.
func (f *Form) Validate() (map[string][]string, error) {
	out := make(map[string][]string)
	for idx, fld := range f.fields {
		errs, err := fld.Validate()
		if len(errs) > 0 {
			out[f.keys[idx]] = errs
		}
		if err != nil {
			return out, fmt.Errorf("form: %w", err)
		}
	}
	f.logger.Debug("form: validated", slog.Int("fields", len(f.fields)), slog.Int("invalid", len(out)))
	return out, nil
}

// Valid reports whether no field currently holds an error. It does not run
// the rules.
func (f *Form) Valid() bool {
	for _, fld := range f.fields {
		if fld.IsInvalid() {
			return false
		}
	}
	return true
}

// Errors returns the current messages of invalid fields without running the
// rules.
func (f *Form) Errors() map[string][]string {
	out := make(map[string][]string)
	for idx, fld := range f.fields {
		if errs := fld.Errors(); len(errs) > 0 {
			out[f.keys[idx]] = errs
		}
	}
	return out
}

// Close detaches every field from the shared hub.
func (f *Form) Close() {
	for _, fld := range f.fields {
		fld.Close()
	}
}
