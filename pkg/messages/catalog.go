package messages

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Message keys understood by the built-in rules.
const (
	FieldIsRequired = "fieldIsRequired"
	InvalidFormat   = "invalidFormat"

	NumberTooSmall = "numberTooSmall"
	NumberTooBig   = "numberTooBig"
	InvalidNumber  = "invalidNumber"

	TextTooSmall = "textTooSmall"
	TextTooBig   = "textTooBig"
	ThisNotText  = "thisNotText"

	ThisNotArray = "thisNotArray"

	SelectMinItems = "selectMinItems"
	SelectMaxItems = "selectMaxItems"

	InvalidDate = "invalidDate"
	DateIsEarly = "dateIsEarly"
	DateIsLate  = "dateIsLate"

	InvalidEmail = "invalidEmail"
	InvalidURL   = "invalidURL"

	InvalidCard       = "invalidCard"
	InvalidCardNumber = "invalidCardNumber"

	InvalidTextContainNumber = "invalidTextContainNumber"
	InvalidTextContainSpec   = "invalidTextContainSpec"
)

var placeholderPattern = regexp.MustCompile(`\{\d+\}`)

// Format substitutes args into template by position: each argument replaces
// the first placeholder still present, left to right. Placeholder numbers are
// not interpreted, so "{1} {0}" receives the arguments in reading order.
// Surplus placeholders are kept verbatim and surplus arguments ignored.
func Format(template string, args ...any) string {
	out := template
	for _, arg := range args {
		loc := placeholderPattern.FindStringIndex(out)
		if loc == nil {
			break
		}
		out = out[:loc[0]] + FormatArg(arg) + out[loc[1]:]
	}
	return out
}

// FormatArg renders a single template argument. Floats use the shortest
// decimal form without exponent so 1e6 prints as "1000000".
func FormatArg(arg any) string {
	switch v := arg.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return formatFloat(v, 64)
	case float32:
		return formatFloat(float64(v), 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(v float64, bits int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'f', -1, bits)
}

// Catalog maps message keys to templates. It is safe for concurrent use and
// can be replaced wholesale to localize messages without touching rules.
type Catalog struct {
	mu        sync.RWMutex
	templates map[string]string
}

// NewCatalog builds a catalog holding a copy of templates.
func NewCatalog(templates map[string]string) *Catalog {
	c := &Catalog{templates: make(map[string]string, len(templates))}
	for key, tmpl := range templates {
		c.templates[key] = tmpl
	}
	return c
}

// Default returns a fresh catalog populated with the English templates.
func Default() *Catalog {
	return NewCatalog(english)
}

// Get returns the template stored under key.
func (c *Catalog) Get(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	tmpl, ok := c.templates[key]
	return tmpl, ok
}

// Set stores or replaces a template.
func (c *Catalog) Set(key, template string) {
	key = strings.TrimSpace(key)
	if c == nil || key == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.templates == nil {
		c.templates = make(map[string]string)
	}
	c.templates[key] = template
}

// Merge applies templates over the current entries.
func (c *Catalog) Merge(templates map[string]string) {
	for key, tmpl := range templates {
		c.Set(key, tmpl)
	}
}

// Keys returns the sorted list of keys.
func (c *Catalog) Keys() []string {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.templates))
	for key := range c.templates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns an independent copy.
func (c *Catalog) Clone() *Catalog {
	if c == nil {
		return NewCatalog(nil)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return NewCatalog(c.templates)
}

// Message resolves key and formats it with args. Unknown keys resolve to the
// key itself so missing translations stay visible.
func (c *Catalog) Message(key string, args ...any) string {
	tmpl, ok := c.Get(key)
	if !ok {
		tmpl = key
	}
	return Format(tmpl, args...)
}
