package messages

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// ErrMissingTranslation is returned by Translate when no catalog holds the
// requested key.
var ErrMissingTranslation = errors.New("messages: missing translation")

// Translator resolves a key for a locale, formatting it with args.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// Bundle groups catalogs by locale. Lookups match the requested locale against
// the registered ones (so "fr-CA" resolves to "fr") and fall back to the
// bundle's default locale.
type Bundle struct {
	mu       sync.RWMutex
	catalogs map[language.Tag]*Catalog
	tags     []language.Tag
	matcher  language.Matcher
	fallback language.Tag
	logger   *slog.Logger
}

// BundleOption configures a Bundle.
type BundleOption func(*Bundle)

// WithFallback sets the locale used when nothing matches. Invalid tags are
// ignored.
func WithFallback(locale string) BundleOption {
	return func(b *Bundle) {
		if tag, err := language.Parse(strings.TrimSpace(locale)); err == nil {
			b.fallback = tag
		}
	}
}

// WithLogger routes bundle diagnostics to logger.
func WithLogger(logger *slog.Logger) BundleOption {
	return func(b *Bundle) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBundle returns a bundle seeded with the English defaults.
func NewBundle(options ...BundleOption) *Bundle {
	b := &Bundle{
		catalogs: make(map[language.Tag]*Catalog),
		fallback: language.English,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
	b.put(language.English, Default())
	return b
}

// Add registers (or replaces) the catalog for locale.
func (b *Bundle) Add(locale string, catalog *Catalog) error {
	if catalog == nil {
		return fmt.Errorf("messages: catalog for %q is nil", locale)
	}
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return fmt.Errorf("messages: invalid locale %q: %w", locale, err)
	}
	b.put(tag, catalog)
	return nil
}

func (b *Bundle) put(tag language.Tag, catalog *Catalog) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.catalogs[tag]; !exists {
		b.tags = append(b.tags, tag)
	}
	b.catalogs[tag] = catalog
	b.matcher = language.NewMatcher(b.tags)
}

// Catalog returns the best catalog for locale.
func (b *Bundle) Catalog(locale string) *Catalog {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if trimmed := strings.TrimSpace(locale); trimmed != "" && b.matcher != nil {
		if requested, err := language.Parse(trimmed); err == nil {
			_, idx, confidence := b.matcher.Match(requested)
			if confidence != language.No && idx >= 0 && idx < len(b.tags) {
				return b.catalogs[b.tags[idx]]
			}
		}
		b.logger.Debug("messages: locale not matched, using fallback", "locale", locale, "fallback", b.fallback.String())
	}
	if catalog, ok := b.catalogs[b.fallback]; ok {
		return catalog
	}
	return b.catalogs[language.English]
}

// Translate implements Translator.
func (b *Bundle) Translate(locale, key string, args ...any) (string, error) {
	catalog := b.Catalog(locale)
	tmpl, ok := catalog.Get(key)
	if !ok {
		return key, fmt.Errorf("%w: %s (%s)", ErrMissingTranslation, key, locale)
	}
	return Format(tmpl, args...), nil
}

// Locales lists the registered locales in sorted order.
func (b *Bundle) Locales() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, 0, len(b.tags))
	for _, tag := range b.tags {
		out = append(out, tag.String())
	}
	sort.Strings(out)
	return out
}
