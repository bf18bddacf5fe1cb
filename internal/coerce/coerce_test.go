package coerce

import (
	"math"
	"testing"
)

func TestIsEmpty(t *testing.T) {
	var nilPtr *int
	var nilSlice []string
	empty := ""
	cases := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, true},
		{"empty string", "", true},
		{"typed nil pointer", nilPtr, true},
		{"nil slice", nilSlice, true},
		{"pointer to empty string", &empty, true},
		{"zero int", 0, false},
		{"false", false, false},
		{"space", " ", false},
		{"empty slice", []string{}, false},
	}
	for _, tc := range cases {
		if got := IsEmpty(tc.value); got != tc.want {
			t.Fatalf("%s: IsEmpty = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestNumber(t *testing.T) {
	if f, ok, integer := Number(int8(-3)); !ok || !integer || f != -3 {
		t.Fatalf("int8: got %v %v %v", f, ok, integer)
	}
	if f, ok, integer := Number(float32(1.5)); !ok || integer || f != 1.5 {
		t.Fatalf("float32: got %v %v %v", f, ok, integer)
	}
	if _, ok, _ := Number("5"); ok {
		t.Fatalf("numeric strings must not count as numbers")
	}
	if f, ok, _ := Number(math.NaN()); !ok || !math.IsNaN(f) {
		t.Fatalf("NaN is still a number")
	}
}

func TestBound(t *testing.T) {
	if f, ok := Bound(" 4.5 "); !ok || f != 4.5 {
		t.Fatalf("string bound: got %v %v", f, ok)
	}
	if _, ok := Bound("x"); ok {
		t.Fatalf("expected invalid bound")
	}
	if _, ok := Bound(nil); ok {
		t.Fatalf("nil bound must be absent")
	}
}

func TestText(t *testing.T) {
	cases := map[string]any{
		"42":                   42,
		"18446744073709551615": uint64(math.MaxUint64),
		"0.1":                  0.1,
		"abc":                  "abc",
		"true":                 true,
	}
	for want, value := range cases {
		if got := Text(value); got != want {
			t.Fatalf("Text(%#v) = %q, want %q", value, got, want)
		}
	}
}
