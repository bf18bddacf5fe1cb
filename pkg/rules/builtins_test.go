package rules

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbind/pkg/schema"
)

func run(t *testing.T, reg *Registry, name string, value any, field *schema.FieldSchema) schema.Result {
	t.Helper()
	fn, ok := reg.Lookup(name)
	if !ok {
		t.Fatalf("rule %q not registered", name)
	}
	res, err := fn(value, field, nil)
	if err != nil {
		t.Fatalf("rule %q returned error: %v", name, err)
	}
	return res
}

func TestBuiltins(t *testing.T) {
	reg := NewRegistry()
	required := "This field is required!"
	invalidNumber := "Invalid number"

	tests := []struct {
		name  string
		rule  string
		value any
		field schema.FieldSchema
		want  schema.Result
	}{
		{name: "required empty string", rule: Required, value: "", field: schema.FieldSchema{Required: true}, want: schema.Result{required}},
		{name: "required nil", rule: Required, value: nil, field: schema.FieldSchema{Required: true}, want: schema.Result{required}},
		{name: "required typed nil", rule: Number, value: (*int)(nil), field: schema.FieldSchema{Required: true}, want: schema.Result{required}},
		{name: "optional empty", rule: Number, value: "", field: schema.FieldSchema{}},
		{name: "required present", rule: Required, value: "x", field: schema.FieldSchema{Required: true}},

		{name: "number in range", rule: Number, value: 5, field: schema.FieldSchema{Min: 1, Max: 10}},
		{name: "number too small", rule: Number, value: 0.5, field: schema.FieldSchema{Min: 1}, want: schema.Result{"The number is too small! Minimum: 1"}},
		{name: "number too big", rule: Number, value: int64(11), field: schema.FieldSchema{Max: 10.5}, want: schema.Result{"The number is too big! Maximum: 10.5"}},
		{name: "number min above max", rule: Number, value: 7, field: schema.FieldSchema{Min: 10, Max: 5}, want: schema.Result{
			"The number is too small! Minimum: 10",
			"The number is too big! Maximum: 5",
		}},
		{name: "number string", rule: Number, value: "12", want: schema.Result{invalidNumber}},

		{name: "integer int", rule: Integer, value: 3},
		{name: "integer whole float", rule: Integer, value: 3.0},
		{name: "integer fraction", rule: Integer, value: 3.5, want: schema.Result{invalidNumber}},
		{name: "integer infinity", rule: Integer, value: math.Inf(1), want: schema.Result{invalidNumber}},
		{name: "integer string", rule: Integer, value: "3", want: schema.Result{invalidNumber}},

		{name: "double fraction", rule: Double, value: 3.5},
		{name: "double whole float", rule: Double, value: 4.0, want: schema.Result{invalidNumber}},
		{name: "double int", rule: Double, value: 4, want: schema.Result{invalidNumber}},
		{name: "double NaN", rule: Double, value: math.NaN(), want: schema.Result{invalidNumber}},

		{name: "string ok", rule: String, value: "hello", field: schema.FieldSchema{Min: 2, Max: 8}},
		{name: "string counts runes", rule: String, value: "héllo", field: schema.FieldSchema{Min: 6}, want: schema.Result{"The length of text is too small! Current: 5, Minimum: 6"}},
		{name: "string too long", rule: String, value: "abcdef", field: schema.FieldSchema{Max: "3"}, want: schema.Result{"The length of text is too big! Current: 6, Maximum: 3"}},
		{name: "string not text", rule: String, value: 42, want: schema.Result{"This is not a text!"}},

		{name: "array required nil", rule: Array, value: nil, field: schema.FieldSchema{Required: true}, want: schema.Result{"This is not a list!"}},
		{name: "array required empty", rule: Array, value: []string{}, field: schema.FieldSchema{Required: true}, want: schema.Result{required}},
		{name: "array optional nil", rule: Array, value: nil, field: schema.FieldSchema{Min: 2}},
		{name: "array too few", rule: Array, value: []int{1}, field: schema.FieldSchema{Min: 2}, want: schema.Result{"Select minimum 2 items!"}},
		{name: "array too many", rule: Array, value: []any{1, 2, 3}, field: schema.FieldSchema{Max: 2}, want: schema.Result{"Select maximum 2 items!"}},

		{name: "date invalid", rule: Date, value: "nope", want: schema.Result{"Invalid date!"}},
		{name: "date early", rule: Date, value: "2024-01-05", field: schema.FieldSchema{Min: "2024-02-01"}, want: schema.Result{"The date is too early! Current: 01/05/2024, Minimum: 02/01/2024"}},
		{name: "date late", rule: Date, value: "2024-03-05T10:00:00Z", field: schema.FieldSchema{Max: "2024-02-01T00:00:00Z"}, want: schema.Result{"The date is too late! Current: 03/05/2024, Maximum: 02/01/2024"}},
		{name: "date in range", rule: Date, value: "2024-01-15", field: schema.FieldSchema{Min: "2024-01-01", Max: "2024-02-01"}},

		{name: "regexp match", rule: Regexp, value: "abc", field: schema.FieldSchema{Pattern: `^[a-z]+$`}},
		{name: "regexp mismatch", rule: Regexp, value: "abc1", field: schema.FieldSchema{Pattern: `^[a-z]+$`}, want: schema.Result{"Invalid format!"}},
		{name: "regexp without pattern", rule: Regexp, value: "anything"},

		{name: "email ok", rule: Email, value: "ada@example.co"},
		{name: "email bad", rule: Email, value: "ada@", want: schema.Result{"Invalid e-mail address!"}},
		{name: "url ok", rule: URL, value: "see https://example.com/docs?q=1"},
		{name: "url bad", rule: URL, value: "example", want: schema.Result{"Invalid URL!"}},

		{name: "card valid", rule: CreditCard, value: "4111111111111111"},
		{name: "card valid with spaces", rule: CreditCard, value: "4111 1111 1111 1111"},
		{name: "card checksum", rule: CreditCard, value: "4111111111111112", want: schema.Result{"Invalid card number!"}},
		{name: "card brand", rule: CreditCard, value: "1234", want: schema.Result{"Invalid card format!"}},

		{name: "alpha ok", rule: Alpha, value: "abcXYZ"},
		{name: "alpha digit", rule: Alpha, value: "ab1", want: schema.Result{"Invalid text! Cannot contains numbers or special characters"}},
		{name: "alphanumeric ok", rule: AlphaNumeric, value: "ab12"},
		{name: "alphanumeric symbol", rule: AlphaNumeric, value: "ab-12", want: schema.Result{"Invalid text! Cannot contains special characters"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := tt.field
			got := run(t, reg, tt.rule, tt.value, &field)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("unexpected messages (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRegexp_MalformedPatternIsConfigurationError(t *testing.T) {
	reg := NewRegistry()
	fn, _ := reg.Lookup(Regexp)
	_, err := fn("abc", &schema.FieldSchema{Pattern: "("}, nil)
	if !errors.Is(err, ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
}

func TestLuhn(t *testing.T) {
	if !Luhn("4111111111111111") {
		t.Fatalf("expected 4111111111111111 to pass")
	}
	if Luhn("4111111111111112") {
		t.Fatalf("expected 4111111111111112 to fail")
	}
	if !Luhn("79927398713") {
		t.Fatalf("expected 79927398713 to pass")
	}
}

func TestDate_LocaleLayout(t *testing.T) {
	reg := NewRegistry(WithLocale("de"))
	got := run(t, reg, Date, "2024-01-05", &schema.FieldSchema{Min: "2024-02-01"})
	want := schema.Result{"The date is too early! Current: 05.01.2024, Minimum: 01.02.2024"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected messages (-want +got):\n%s", diff)
	}
}

func TestTagRules(t *testing.T) {
	reg := NewRegistry()

	if got := run(t, reg, "tag:hexcolor", "#fff", &schema.FieldSchema{}); len(got) != 0 {
		t.Fatalf("expected valid color, got %v", got)
	}
	got := run(t, reg, "tag:hexcolor", "zzz", &schema.FieldSchema{})
	if diff := cmp.Diff(schema.Result{"Invalid format!"}, got); diff != "" {
		t.Fatalf("unexpected messages (-want +got):\n%s", diff)
	}
	if got := run(t, reg, "tag:hexcolor", "", &schema.FieldSchema{Required: true}); len(got) != 1 {
		t.Fatalf("expected required message for empty value, got %v", got)
	}

	fn, ok := reg.Lookup("tag:no_such_tag")
	if !ok {
		t.Fatalf("expected tag rule to resolve")
	}
	if _, err := fn("x", &schema.FieldSchema{}, nil); !errors.Is(err, ErrInvalidTag) {
		t.Fatalf("expected ErrInvalidTag, got %v", err)
	}
	if _, ok := reg.Lookup("tag:"); ok {
		t.Fatalf("expected empty tag to be unknown")
	}
}
