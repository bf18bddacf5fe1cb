package accessor

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

var (
	// ErrUnsupportedContainer is returned when a path walks through a value
	// that cannot hold children (a string, a number, ...).
	ErrUnsupportedContainer = errors.New("accessor: unsupported container")
	// ErrTypeMismatch is returned when the written value cannot be stored in
	// the destination slot.
	ErrTypeMismatch = errors.New("accessor: type mismatch")
	// ErrUnaddressable is returned when the model root cannot be modified in
	// place (for example a struct passed by value).
	ErrUnaddressable = errors.New("accessor: model is not addressable")
)

// Segments splits a dotted path, dropping empty segments.
func Segments(path string) []string {
	parts := strings.Split(strings.TrimSpace(path), ".")
	out := parts[:0]
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Get resolves a dotted path against model. Maps are indexed by key, slices
// and arrays by numeric segment, structs by json tag or field name. Missing
// segments resolve to (nil, false); Get never panics on shape mismatches.
func Get(model any, path string) (any, bool) {
	segments := Segments(path)
	if model == nil || len(segments) == 0 {
		return nil, false
	}

	current := reflect.ValueOf(model)
	for _, segment := range segments {
		current = indirect(current)
		if !current.IsValid() {
			return nil, false
		}
		next, ok := child(current, segment)
		if !ok {
			return nil, false
		}
		current = next
	}

	current = unwrapInterface(current)
	if !current.IsValid() || !current.CanInterface() {
		return nil, false
	}
	return current.Interface(), true
}

// Set writes value at the dotted path, creating intermediate containers as
// needed: map[string]any for named segments, []any for numeric ones and
// freshly allocated values for nil struct pointers.
func Set(model any, path string, value any) error {
	segments := Segments(path)
	if len(segments) == 0 {
		return nil
	}
	root := reflect.ValueOf(model)
	if !root.IsValid() {
		return fmt.Errorf("%w: model is nil", ErrUnaddressable)
	}
	switch root.Kind() {
	case reflect.Map, reflect.Pointer:
		if root.IsNil() {
			return fmt.Errorf("%w: model is a nil %s", ErrUnaddressable, root.Kind())
		}
	case reflect.Slice:
	default:
		return fmt.Errorf("%w: %T", ErrUnaddressable, model)
	}

	updated, err := assign(root, segments, value)
	if err != nil {
		return fmt.Errorf("accessor: set %q: %w", path, err)
	}
	if root.Kind() == reflect.Slice && updated.Len() != root.Len() {
		return fmt.Errorf("accessor: set %q: %w: root slice cannot grow", path, ErrUnaddressable)
	}
	return nil
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func unwrapInterface(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func child(container reflect.Value, segment string) (reflect.Value, bool) {
	switch container.Kind() {
	case reflect.Map:
		key, ok := mapKey(container.Type(), segment)
		if !ok {
			return reflect.Value{}, false
		}
		value := container.MapIndex(key)
		return value, value.IsValid()
	case reflect.Slice, reflect.Array:
		idx, err := strconv.Atoi(segment)
		if err != nil || idx < 0 || idx >= container.Len() {
			return reflect.Value{}, false
		}
		return container.Index(idx), true
	case reflect.Struct:
		field, ok := structField(container, segment)
		return field, ok
	default:
		return reflect.Value{}, false
	}
}

func mapKey(mapType reflect.Type, segment string) (reflect.Value, bool) {
	keyType := mapType.Key()
	if keyType.Kind() != reflect.String {
		return reflect.Value{}, false
	}
	return reflect.ValueOf(segment).Convert(keyType), true
}

func structField(v reflect.Value, segment string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		if name := strings.Split(sf.Tag.Get("json"), ",")[0]; name != "" && name != "-" && name == segment {
			return v.Field(i), true
		}
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.IsExported() && strings.EqualFold(sf.Name, segment) {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// assign stores value under segments inside current and returns the value
// the parent must keep (maps and slices can be replaced when grown or
// created).
func assign(current reflect.Value, segments []string, value any) (reflect.Value, error) {
	segment := segments[0]
	last := len(segments) == 1

	if !current.IsValid() || (current.Kind() == reflect.Interface && current.IsNil()) {
		current = newContainer(segment)
	}

	switch current.Kind() {
	case reflect.Interface:
		inner, err := assign(current.Elem(), segments, value)
		if err != nil {
			return reflect.Value{}, err
		}
		return inner, nil

	case reflect.Pointer:
		if current.IsNil() {
			current = reflect.New(current.Type().Elem())
		}
		elem := current.Elem()
		updated, err := assign(elem, segments, value)
		if err != nil {
			return reflect.Value{}, err
		}
		elem.Set(updated)
		return current, nil

	case reflect.Map:
		key, ok := mapKey(current.Type(), segment)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: map key type %s", ErrUnsupportedContainer, current.Type().Key())
		}
		if current.IsNil() {
			current = reflect.MakeMap(current.Type())
		}
		elemType := current.Type().Elem()
		if last {
			converted, err := convert(value, elemType)
			if err != nil {
				return reflect.Value{}, err
			}
			current.SetMapIndex(key, converted)
			return current, nil
		}
		existing := current.MapIndex(key)
		slot := reflect.New(elemType).Elem()
		if existing.IsValid() {
			slot.Set(existing)
		}
		updated, err := assign(slot, segments[1:], value)
		if err != nil {
			return reflect.Value{}, err
		}
		current.SetMapIndex(key, updated)
		return current, nil

	case reflect.Slice:
		idx, err := strconv.Atoi(segment)
		if err != nil || idx < 0 {
			return reflect.Value{}, fmt.Errorf("%w: expected index, got %q", ErrUnsupportedContainer, segment)
		}
		if current.Len() <= idx {
			grown := reflect.MakeSlice(current.Type(), idx+1, idx+1)
			reflect.Copy(grown, current)
			current = grown
		}
		elem := current.Index(idx)
		if last {
			converted, err := convert(value, elem.Type())
			if err != nil {
				return reflect.Value{}, err
			}
			elem.Set(converted)
			return current, nil
		}
		updated, err := assign(elem, segments[1:], value)
		if err != nil {
			return reflect.Value{}, err
		}
		elem.Set(updated)
		return current, nil

	case reflect.Struct:
		if !current.CanSet() {
			copied := reflect.New(current.Type()).Elem()
			copied.Set(current)
			current = copied
		}
		field, ok := structField(current, segment)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: %s has no field %q", ErrUnsupportedContainer, current.Type(), segment)
		}
		if last {
			converted, err := convert(value, field.Type())
			if err != nil {
				return reflect.Value{}, err
			}
			field.Set(converted)
			return current, nil
		}
		updated, err := assign(field, segments[1:], value)
		if err != nil {
			return reflect.Value{}, err
		}
		field.Set(updated)
		return current, nil

	default:
		return reflect.Value{}, fmt.Errorf("%w: cannot descend into %s at %q", ErrUnsupportedContainer, current.Kind(), segment)
	}
}

func newContainer(segment string) reflect.Value {
	if _, err := strconv.Atoi(segment); err == nil {
		return reflect.ValueOf([]any{})
	}
	return reflect.ValueOf(map[string]any{})
}

func convert(value any, target reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(target), nil
	}
	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(target) {
		return v, nil
	}
	if isNumericKind(v.Kind()) && isNumericKind(target.Kind()) {
		if !fitsNumeric(v, target) {
			return reflect.Value{}, fmt.Errorf("%w: %v does not fit in %s", ErrTypeMismatch, value, target)
		}
		return v.Convert(target), nil
	}
	if v.Kind() == reflect.String && target.Kind() == reflect.String {
		return v.Convert(target), nil
	}
	if target.Kind() == reflect.Pointer && v.Type().AssignableTo(target.Elem()) {
		ptr := reflect.New(target.Elem())
		ptr.Elem().Set(v)
		return ptr, nil
	}
	return reflect.Value{}, fmt.Errorf("%w: cannot store %T in %s", ErrTypeMismatch, value, target)
}

// fitsNumeric reports whether v converts to target without truncation,
// overflow or sign loss. Float narrowing only checks range.
func fitsNumeric(v reflect.Value, target reflect.Type) bool {
	slot := reflect.New(target).Elem()
	switch {
	case v.CanInt():
		n := v.Int()
		switch {
		case slot.CanInt():
			return !slot.OverflowInt(n)
		case slot.CanUint():
			return n >= 0 && !slot.OverflowUint(uint64(n))
		}
		return true
	case v.CanUint():
		n := v.Uint()
		switch {
		case slot.CanInt():
			return n <= math.MaxInt64 && !slot.OverflowInt(int64(n))
		case slot.CanUint():
			return !slot.OverflowUint(n)
		}
		return true
	case v.CanFloat():
		f := v.Float()
		if slot.CanFloat() {
			return math.IsNaN(f) || math.IsInf(f, 0) || !slot.OverflowFloat(f)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return false
		}
		switch {
		case slot.CanInt():
			return f >= -(1<<63) && f < 1<<63 && !slot.OverflowInt(int64(f))
		case slot.CanUint():
			return f >= 0 && f < 1<<64 && !slot.OverflowUint(uint64(f))
		}
	}
	return false
}

func isNumericKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
