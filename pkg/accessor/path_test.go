package accessor

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type address struct {
	City string `json:"city"`
	Zip  string
}

type person struct {
	Name    string            `json:"name"`
	Age     int               `json:"age"`
	Address *address          `json:"address"`
	Tags    []string          `json:"tags"`
	Extra   map[string]any    `json:"extra"`
	Labels  map[string]string `json:"labels"`
}

func TestSet_CreatesIntermediateMaps(t *testing.T) {
	model := map[string]any{}
	if err := Set(model, "a.b.c", 42); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	want := map[string]any{"a": map[string]any{"b": map[string]any{"c": 42}}}
	if diff := cmp.Diff(want, model); diff != "" {
		t.Fatalf("model mismatch (-want +got):\n%s", diff)
	}

	got, ok := Get(model, "a.b.c")
	if !ok || got != 42 {
		t.Fatalf("expected round trip value 42, got %v (ok=%v)", got, ok)
	}
}

func TestSet_GrowsSlices(t *testing.T) {
	model := map[string]any{"items": []any{"x"}}
	if err := Set(model, "items.2.name", "z"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	want := map[string]any{"items": []any{"x", nil, map[string]any{"name": "z"}}}
	if diff := cmp.Diff(want, model); diff != "" {
		t.Fatalf("model mismatch (-want +got):\n%s", diff)
	}
}

func TestGetSet_Structs(t *testing.T) {
	model := &person{}

	for path, value := range map[string]any{
		"name":         "Ada",
		"age":          36.0,
		"address.city": "London",
		"address.zip":  "NW1",
		"tags.1":       "math",
		"extra.level":  3,
		"labels.team":  "core",
	} {
		if err := Set(model, path, value); err != nil {
			t.Fatalf("Set(%q) returned error: %v", path, err)
		}
	}

	if model.Age != 36 || model.Address == nil || model.Address.City != "London" || model.Address.Zip != "NW1" {
		t.Fatalf("unexpected struct state: %+v / %+v", model, model.Address)
	}
	if diff := cmp.Diff([]string{"", "math"}, model.Tags); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}

	if got, _ := Get(model, "address.city"); got != "London" {
		t.Fatalf("expected London, got %v", got)
	}
	if got, _ := Get(*model, "extra.level"); got != 3 {
		t.Fatalf("expected read through value struct, got %v", got)
	}
	if got, _ := Get(model, "labels.team"); got != "core" {
		t.Fatalf("expected core, got %v", got)
	}
}

func TestGet_MissingSegmentsNeverPanic(t *testing.T) {
	model := map[string]any{"a": "scalar", "list": []any{1}}
	for _, path := range []string{"missing", "a.b.c", "list.5", "list.x", "", "..."} {
		if got, ok := Get(model, path); ok || got != nil {
			t.Fatalf("Get(%q) = %v, %v; want nil, false", path, got, ok)
		}
	}
	if got, ok := Get(nil, "a"); ok || got != nil {
		t.Fatalf("nil model must resolve to nil")
	}
}

func TestSet_Errors(t *testing.T) {
	if err := Set(map[string]any{"a": "scalar"}, "a.b", 1); !errors.Is(err, ErrUnsupportedContainer) {
		t.Fatalf("expected ErrUnsupportedContainer, got %v", err)
	}
	if err := Set(person{}, "name", "x"); !errors.Is(err, ErrUnaddressable) {
		t.Fatalf("expected ErrUnaddressable, got %v", err)
	}
	if err := Set(&person{}, "age", "old"); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
	if err := Set(nil, "a", 1); !errors.Is(err, ErrUnaddressable) {
		t.Fatalf("expected ErrUnaddressable for nil model, got %v", err)
	}
}

type measures struct {
	Age   int     `json:"age"`
	Small int8    `json:"small"`
	Count uint    `json:"count"`
	Ratio float32 `json:"ratio"`
}

func TestSet_NumericConversions(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		value any
		want  any
		fails bool
	}{
		{name: "whole float into int", path: "age", value: 12.0, want: 12},
		{name: "fraction into int", path: "age", value: 12.7, fails: true},
		{name: "NaN into int", path: "age", value: math.NaN(), fails: true},
		{name: "Inf into int", path: "age", value: math.Inf(1), fails: true},
		{name: "fits int8", path: "small", value: 100, want: int8(100)},
		{name: "overflows int8", path: "small", value: 300, fails: true},
		{name: "float overflows int8", path: "small", value: 128.0, fails: true},
		{name: "unsigned", path: "count", value: int64(5), want: uint(5)},
		{name: "negative into unsigned", path: "count", value: -1, fails: true},
		{name: "negative float into unsigned", path: "count", value: -2.0, fails: true},
		{name: "huge uint into int8", path: "small", value: uint64(1 << 40), fails: true},
		{name: "int into float32", path: "ratio", value: 3, want: float32(3)},
		{name: "float32 overflow", path: "ratio", value: 1e300, fails: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &measures{}
			err := Set(model, tt.path, tt.value)
			if tt.fails {
				if !errors.Is(err, ErrTypeMismatch) {
					t.Fatalf("expected ErrTypeMismatch, got %v", err)
				}
				if diff := cmp.Diff(measures{}, *model); diff != "" {
					t.Fatalf("model changed on failed write (-want +got):\n%s", diff)
				}
				return
			}
			if err != nil {
				t.Fatalf("Set returned error: %v", err)
			}
			got, _ := Get(model, tt.path)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("stored value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
