package field

import (
	"reflect"
	"time"

	"github.com/google/go-cmp/cmp"
)

// deepEqual compares values that == cannot: unexported fields are visited
// and Equal methods (time.Time) are honored.
var deepEqual = []cmp.Option{
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

// Trigger remembers the last observed value and reports transitions.
type Trigger struct {
	last   any
	primed bool
}

// Prime records value as the baseline without reporting a change.
func (t *Trigger) Prime(value any) {
	t.last = value
	t.primed = true
}

// Observe compares value with the previous observation and records it. The
// first observation of an unprimed trigger counts as a change.
func (t *Trigger) Observe(value any) (old any, changed bool) {
	old = t.last
	if t.primed && Same(old, value) {
		return old, false
	}
	t.last = value
	t.primed = true
	return old, true
}

// Same reports whether two observed values are the same for change
// detection. Comparable values use ==, times use Equal, slices compare by
// backing array and length, maps and funcs by pointer. Values == cannot
// compare are compared structurally.
func Same(a, b any) (same bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Map, reflect.Func, reflect.Chan:
		return va.Pointer() == vb.Pointer()
	}
	if !va.Type().Comparable() {
		return cmp.Equal(a, b, deepEqual...)
	}
	// Interface fields holding uncomparable values panic on ==.
	defer func() {
		if recover() != nil {
			same = cmp.Equal(a, b, deepEqual...)
		}
	}()
	return a == b
}
