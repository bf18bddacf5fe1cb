package rules

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formbind/internal/coerce"
	"github.com/goliatone/go-formbind/pkg/messages"
	"github.com/goliatone/go-formbind/pkg/schema"
)

var (
	emailPattern        = regexp.MustCompile(`^(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)
	urlPattern          = regexp.MustCompile(`https?://(www\.)?[-a-zA-Z0-9@:%._\+~#=]{2,256}\.[a-z]{2,4}\b([-a-zA-Z0-9@:%_\+.~#?&/=]*)`)
	cardBrandPattern    = regexp.MustCompile(`^(?:4[0-9]{12}(?:[0-9]{3})?|5[1-5][0-9]{14}|6(?:011|5[0-9][0-9])[0-9]{12}|3[47][0-9]{13}|3(?:0[0-5]|[68][0-9])[0-9]{11}|(?:2131|1800|35[0-9]{3})[0-9]{11})$`)
	alphaPattern        = regexp.MustCompile(`^[a-zA-Z]*$`)
	alphaNumericPattern = regexp.MustCompile(`^[a-zA-Z0-9]*$`)
)

func (r *Registry) registerBuiltins() {
	r.MustRegister(Required, r.required)
	r.MustRegister(Number, r.number)
	r.MustRegister(Integer, r.integer)
	r.MustRegister(Double, r.double)
	r.MustRegister(String, r.text)
	r.MustRegister(Array, r.array)
	r.MustRegister(Date, r.date)
	r.MustRegister(Regexp, r.matchPattern)
	r.MustRegister(Email, r.match(emailPattern, messages.InvalidEmail))
	r.MustRegister(URL, r.match(urlPattern, messages.InvalidURL))
	r.MustRegister(CreditCard, r.creditCard)
	r.MustRegister(Alpha, r.match(alphaPattern, messages.InvalidTextContainNumber))
	r.MustRegister(AlphaNumeric, r.match(alphaNumericPattern, messages.InvalidTextContainSpec))
}

// checkEmpty reports whether value is empty. Empty required fields yield the
// required message; optional ones yield nothing.
func (r *Registry) checkEmpty(value any, field *schema.FieldSchema) (schema.Result, bool) {
	if !coerce.IsEmpty(value) {
		return nil, false
	}
	if field != nil && field.Required {
		return schema.Message(r.message(messages.FieldIsRequired)), true
	}
	return nil, true
}

func (r *Registry) required(value any, field *schema.FieldSchema, _ any) (schema.Result, error) {
	res, _ := r.checkEmpty(value, field)
	return res, nil
}

func (r *Registry) number(value any, field *schema.FieldSchema, _ any) (schema.Result, error) {
	if res, empty := r.checkEmpty(value, field); empty {
		return res, nil
	}
	n, ok, _ := coerce.Number(value)
	if !ok {
		return schema.Message(r.message(messages.InvalidNumber)), nil
	}
	var out schema.Result
	if lo, ok := bound(field, true); ok && n < lo {
		out = append(out, r.message(messages.NumberTooSmall, field.Min))
	}
	if hi, ok := bound(field, false); ok && n > hi {
		out = append(out, r.message(messages.NumberTooBig, field.Max))
	}
	return out, nil
}

func (r *Registry) integer(value any, field *schema.FieldSchema, _ any) (schema.Result, error) {
	if res, empty := r.checkEmpty(value, field); empty {
		return res, nil
	}
	n, ok, integer := coerce.Number(value)
	valid := ok && (integer || (!math.IsInf(n, 0) && !math.IsNaN(n) && math.Trunc(n) == n))
	if !valid {
		return schema.Message(r.message(messages.InvalidNumber)), nil
	}
	return nil, nil
}

// double accepts values with a non-zero fractional part only, so 4.0 fails.
func (r *Registry) double(value any, field *schema.FieldSchema, _ any) (schema.Result, error) {
	if res, empty := r.checkEmpty(value, field); empty {
		return res, nil
	}
	n, ok, integer := coerce.Number(value)
	valid := ok && !integer && !math.IsNaN(n) && math.Mod(n, 1) != 0
	if !valid {
		return schema.Message(r.message(messages.InvalidNumber)), nil
	}
	return nil, nil
}

func (r *Registry) text(value any, field *schema.FieldSchema, _ any) (schema.Result, error) {
	if res, empty := r.checkEmpty(value, field); empty {
		return res, nil
	}
	s, ok := coerce.String(value)
	if !ok {
		return schema.Message(r.message(messages.ThisNotText)), nil
	}
	length := utf8.RuneCountInString(s)
	var out schema.Result
	if lo, ok := bound(field, true); ok && float64(length) < lo {
		out = append(out, r.message(messages.TextTooSmall, length, field.Min))
	}
	if hi, ok := bound(field, false); ok && float64(length) > hi {
		out = append(out, r.message(messages.TextTooBig, length, field.Max))
	}
	return out, nil
}

// array skips the shared emptiness check: a required list must be a
// non-empty slice, and cardinality is checked whenever a value is present.
func (r *Registry) array(value any, field *schema.FieldSchema, _ any) (schema.Result, error) {
	if field == nil {
		return nil, nil
	}
	if field.Required {
		n, isList := coerce.Len(value)
		if !isList {
			return schema.Message(r.message(messages.ThisNotArray)), nil
		}
		if n == 0 {
			return schema.Message(r.message(messages.FieldIsRequired)), nil
		}
	}
	if coerce.IsNil(value) {
		return nil, nil
	}
	n, measurable := coerce.Measure(value)
	if !measurable {
		return nil, nil
	}
	if lo, ok := bound(field, true); ok && float64(n) < lo {
		return schema.Message(r.message(messages.SelectMinItems, field.Min)), nil
	}
	if hi, ok := bound(field, false); ok && float64(n) > hi {
		return schema.Message(r.message(messages.SelectMaxItems, field.Max)), nil
	}
	return nil, nil
}

func (r *Registry) date(value any, field *schema.FieldSchema, _ any) (schema.Result, error) {
	if res, empty := r.checkEmpty(value, field); empty {
		return res, nil
	}
	when, ok := ParseDate(value)
	if !ok {
		return schema.Message(r.message(messages.InvalidDate)), nil
	}
	if field == nil {
		return nil, nil
	}
	layout := ShortDateLayout(r.Locale())
	var out schema.Result
	if earliest, ok := ParseDate(field.Min); ok && when.Before(earliest) {
		out = append(out, r.message(messages.DateIsEarly, when.Format(layout), earliest.Format(layout)))
	}
	if latest, ok := ParseDate(field.Max); ok && when.After(latest) {
		out = append(out, r.message(messages.DateIsLate, when.Format(layout), latest.Format(layout)))
	}
	return out, nil
}

func (r *Registry) matchPattern(value any, field *schema.FieldSchema, _ any) (schema.Result, error) {
	if res, empty := r.checkEmpty(value, field); empty {
		return res, nil
	}
	if field == nil || field.Pattern == "" {
		return nil, nil
	}
	re, err := r.pattern(field.Pattern)
	if err != nil {
		return nil, err
	}
	if !re.MatchString(coerce.Text(value)) {
		return schema.Message(r.message(messages.InvalidFormat)), nil
	}
	return nil, nil
}

func (r *Registry) match(re *regexp.Regexp, key string) schema.RuleFunc {
	return func(value any, field *schema.FieldSchema, _ any) (schema.Result, error) {
		if res, empty := r.checkEmpty(value, field); empty {
			return res, nil
		}
		if !re.MatchString(coerce.Text(value)) {
			return schema.Message(r.message(key)), nil
		}
		return nil, nil
	}
}

func (r *Registry) creditCard(value any, field *schema.FieldSchema, _ any) (schema.Result, error) {
	if res, empty := r.checkEmpty(value, field); empty {
		return res, nil
	}
	digits := stripNonDigits(coerce.Text(value))
	if !cardBrandPattern.MatchString(digits) {
		return schema.Message(r.message(messages.InvalidCard)), nil
	}
	if !Luhn(digits) {
		return schema.Message(r.message(messages.InvalidCardNumber)), nil
	}
	return nil, nil
}

// Luhn reports whether a string of ASCII digits passes the mod 10 checksum.
func Luhn(digits string) bool {
	sum := 0
	second := false
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if second {
			d *= 2
			if d >= 10 {
				d -= 9
			}
		}
		sum += d
		second = !second
	}
	return sum%10 == 0
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func bound(field *schema.FieldSchema, lower bool) (float64, bool) {
	if field == nil {
		return 0, false
	}
	if lower {
		return coerce.Bound(field.Min)
	}
	return coerce.Bound(field.Max)
}
