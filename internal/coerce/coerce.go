// Package coerce holds the value classification helpers shared by the rules,
// the accessor and the terminal consumer.
package coerce

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// IsEmpty reports whether value counts as "no value": nil, a typed nil
// pointer/map/slice/interface, or the empty string.
func IsEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return true
		}
	}
	if rv.Kind() == reflect.Pointer && rv.Elem().Kind() == reflect.String {
		return rv.Elem().String() == ""
	}
	return false
}

// IsNil reports whether value is nil or a typed nil reference. Unlike
// IsEmpty, the empty string is not nil.
func IsNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// Number converts Go numeric kinds to float64. Strings are not numbers.
// The second result reports whether value was numeric; integer reports
// whether it was one of the integer kinds.
func Number(value any) (f float64, ok bool, integer bool) {
	if value == nil {
		return 0, false, false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true, true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true, false
	default:
		return 0, false, false
	}
}

// Bound converts a schema bound (min/max) to float64. Numeric strings are
// accepted here since bounds often come from text configuration.
func Bound(value any) (float64, bool) {
	if value == nil {
		return 0, false
	}
	if f, ok, _ := Number(value); ok {
		return f, true
	}
	if s, ok := value.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, err == nil
	}
	return 0, false
}

// String unwraps string and *string values.
func String(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	default:
		rv := reflect.ValueOf(value)
		if rv.IsValid() && rv.Kind() == reflect.String {
			return rv.String(), true
		}
		return "", false
	}
}

// Len returns the length of slice and array values.
func Len(value any) (int, bool) {
	if value == nil {
		return 0, false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len(), true
	default:
		return 0, false
	}
}

// Measure returns the length of lists, maps and strings (in runes).
func Measure(value any) (int, bool) {
	if n, ok := Len(value); ok {
		return n, true
	}
	if s, ok := String(value); ok {
		return utf8.RuneCountInString(s), true
	}
	if rv := reflect.ValueOf(value); rv.IsValid() && rv.Kind() == reflect.Map {
		return rv.Len(), true
	}
	return 0, false
}

// Text renders any value for display and pattern matching.
func Text(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := String(value); ok {
		return s
	}
	if b, ok := value.([]byte); ok {
		return string(b)
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	}
	return fmt.Sprint(value)
}
