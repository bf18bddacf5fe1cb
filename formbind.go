package formbind

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/messages"
	"github.com/goliatone/go-formbind/pkg/rules"
	"github.com/goliatone/go-formbind/pkg/schema"
)

// FieldSchema aliases schema.FieldSchema so callers can declare fields from
// the top-level module.
type FieldSchema = schema.FieldSchema

// Options aliases form.Options.
type Options = form.Options

var embedded = sync.OnceValues(func() (*messages.Bundle, error) {
	return messages.LoadFS(messages.EmbeddedFS())
})

// Messages returns the bundle built from the catalogs shipped with the
// module. The bundle is loaded once and shared; registries built by this
// package receive copies of its catalogs.
func Messages() (*messages.Bundle, error) {
	return embedded()
}

// Option configures BindSchemas and FromDefinition.
type Option func(*config)

type config struct {
	bundle *messages.Bundle
	locale string
	logger *slog.Logger
	form   []form.Option
}

// WithBundle replaces the embedded message bundle.
func WithBundle(bundle *messages.Bundle) Option {
	return func(c *config) {
		if bundle != nil {
			c.bundle = bundle
		}
	}
}

// WithLocale selects the message locale. Empty values are ignored so a
// definition's own locale stays in effect.
func WithLocale(locale string) Option {
	return func(c *config) {
		if locale = strings.TrimSpace(locale); locale != "" {
			c.locale = locale
		}
	}
}

// WithLogger routes registry and form diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFormOptions appends options handed to form.New. They run after the
// ones derived from a definition.
func WithFormOptions(opts ...form.Option) Option {
	return func(c *config) {
		c.form = append(c.form, opts...)
	}
}

// NewRegistry returns a rule registry whose messages come from a private
// copy of the embedded catalog for locale. Unknown locales fall back to
// English.
func NewRegistry(locale string, opts ...rules.Option) (*rules.Registry, error) {
	bundle, err := Messages()
	if err != nil {
		return nil, err
	}
	return newRegistry(bundle, locale, opts...), nil
}

func newRegistry(bundle *messages.Bundle, locale string, opts ...rules.Option) *rules.Registry {
	if locale == "" {
		locale = "en"
	}
	base := []rules.Option{
		rules.WithCatalog(bundle.Catalog(locale).Clone()),
		rules.WithLocale(locale),
	}
	return rules.NewRegistry(append(base, opts...)...)
}

// Bind exposes the form constructor from the top-level module.
func Bind(model any, schemas []*FieldSchema, opts ...form.Option) *form.Form {
	return form.New(model, schemas, opts...)
}

// BindSchemas binds schemas to model with a registry localized from the
// configured bundle. Every field's rules are resolved up front so unknown
// names fail here rather than on the first validation.
func BindSchemas(model any, schemas []*FieldSchema, opts ...Option) (*form.Form, error) {
	cfg := config{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.bundle == nil {
		bundle, err := Messages()
		if err != nil {
			return nil, err
		}
		cfg.bundle = bundle
	}

	registry := newRegistry(cfg.bundle, cfg.locale, rules.WithLogger(cfg.logger))
	for _, s := range schemas {
		if s == nil {
			continue
		}
		if _, err := schema.Flatten(s.Validator, registry); err != nil {
			return nil, fmt.Errorf("formbind: field %q: %w", s.Key(), err)
		}
	}

	base := []form.Option{
		form.WithRegistry(registry),
		form.WithLogger(cfg.logger),
	}
	return form.New(model, schemas, append(base, cfg.form...)...), nil
}

// FromDefinition binds a declarative definition to model. The definition's
// locale and options apply unless opts override them.
func FromDefinition(model any, def form.Definition, opts ...Option) (*form.Form, error) {
	base := []Option{
		WithLocale(def.Locale),
		WithFormOptions(form.WithOptions(def.Options)),
	}
	return BindSchemas(model, def.Schemas(), append(base, opts...)...)
}
