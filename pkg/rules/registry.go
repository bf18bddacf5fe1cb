package rules

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goliatone/go-formbind/pkg/messages"
	"github.com/goliatone/go-formbind/pkg/schema"
	"golang.org/x/text/language"
)

// Built-in rule names.
const (
	Required     = "required"
	Number       = "number"
	Integer      = "integer"
	Double       = "double"
	String       = "string"
	Array        = "array"
	Date         = "date"
	Regexp       = "regexp"
	Email        = "email"
	URL          = "url"
	CreditCard   = "creditCard"
	Alpha        = "alpha"
	AlphaNumeric = "alphaNumeric"
)

// TagPrefix selects a go-playground validator tag expression, for example
// "tag:hexcolor" or "tag:min=3,max=8".
const TagPrefix = "tag:"

var (
	// ErrUnknownRule is returned when a named rule is not registered.
	ErrUnknownRule = schema.ErrUnknownRule
	// ErrInvalidPattern reports a field pattern that does not compile.
	ErrInvalidPattern = errors.New("rules: invalid pattern")
	// ErrInvalidTag reports a validator tag expression that cannot run.
	ErrInvalidTag = errors.New("rules: invalid validator tag")
)

// Registry maps rule names to rule functions. Rules resolve their messages
// through the registry catalog at call time, so swapping the catalog
// relocalizes every rule without re-registering it.
type Registry struct {
	mu      sync.RWMutex
	rules   map[string]schema.RuleFunc
	catalog *messages.Catalog
	locale  language.Tag
	logger  *slog.Logger

	patterns sync.Map // pattern -> *regexp.Regexp

	tagsOnce sync.Once
	tags     *validator.Validate
}

// Option configures a Registry.
type Option func(*Registry)

// WithCatalog sets the message catalog. Nil keeps the English default.
func WithCatalog(catalog *messages.Catalog) Option {
	return func(r *Registry) {
		if catalog != nil {
			r.catalog = catalog
		}
	}
}

// WithLocale sets the locale used to print dates in messages.
func WithLocale(locale string) Option {
	return func(r *Registry) {
		if tag, err := language.Parse(strings.TrimSpace(locale)); err == nil {
			r.locale = tag
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry constructs a registry with the built-in rules registered.
func NewRegistry(opts ...Option) *Registry {
	reg := &Registry{
		rules:   make(map[string]schema.RuleFunc),
		catalog: messages.Default(),
		locale:  language.English,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(reg)
		}
	}
	reg.registerBuiltins()
	return reg
}

// Register adds a rule under name. Names are case sensitive; registering an
// existing name fails.
func (r *Registry) Register(name string, fn schema.RuleFunc) error {
	if r == nil {
		return errors.New("rules: registry is nil")
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errors.New("rules: rule name required")
	}
	if strings.HasPrefix(trimmed, TagPrefix) {
		return fmt.Errorf("rules: name %q uses the reserved %q prefix", trimmed, TagPrefix)
	}
	if fn == nil {
		return fmt.Errorf("rules: rule %q has no function", trimmed)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rules[trimmed]; exists {
		return fmt.Errorf("rules: rule %q already registered", trimmed)
	}
	r.rules[trimmed] = fn
	return nil
}

// MustRegister is Register that panics on error.
func (r *Registry) MustRegister(name string, fn schema.RuleFunc) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

// Lookup returns the rule registered under name. Names starting with
// TagPrefix resolve to a validator tag rule without registration.
func (r *Registry) Lookup(name string) (schema.RuleFunc, bool) {
	if r == nil {
		return nil, false
	}
	if tag, ok := strings.CutPrefix(name, TagPrefix); ok {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			return nil, false
		}
		return r.tagRule(tag), true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.rules[name]
	return fn, ok
}

// Names returns the registered rule names, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Catalog returns the active message catalog.
func (r *Registry) Catalog() *messages.Catalog {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.catalog
}

// SetCatalog replaces the message catalog. A nil catalog restores the
// English defaults.
func (r *Registry) SetCatalog(catalog *messages.Catalog) {
	if catalog == nil {
		catalog = messages.Default()
	}
	r.mu.Lock()
	r.catalog = catalog
	r.mu.Unlock()
}

// Locale returns the locale used for date formatting.
func (r *Registry) Locale() language.Tag {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.locale
}

// SetLocale changes the date formatting locale.
func (r *Registry) SetLocale(tag language.Tag) {
	r.mu.Lock()
	r.locale = tag
	r.mu.Unlock()
}

func (r *Registry) message(key string, args ...any) string {
	catalog := r.Catalog()
	if _, ok := catalog.Get(key); !ok {
		r.logger.Debug("rules: message key missing from catalog", slog.String("key", key))
	}
	return catalog.Message(key, args...)
}

func (r *Registry) pattern(expr string) (*regexp.Regexp, error) {
	if cached, ok := r.patterns.Load(expr); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, expr, err)
	}
	r.patterns.Store(expr, re)
	return re, nil
}
