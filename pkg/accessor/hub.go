package accessor

import (
	"sort"
	"strings"
	"sync"
)

// Hub fans out write notifications to everything bound to an overlapping
// path, including paths that did not exist before the write.
type Hub struct {
	mu       sync.Mutex
	watchers map[int]watcher
	nextID   int
}

type watcher struct {
	path string
	fn   func(changed string)
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{watchers: make(map[int]watcher)}
}

// Watch registers fn for path. fn receives the path that was written. The
// returned func removes the watcher; calling it twice is safe.
func (h *Hub) Watch(path string, fn func(changed string)) func() {
	if h == nil || fn == nil {
		return func() {}
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.watchers == nil {
		h.watchers = make(map[int]watcher)
	}
	id := h.nextID
	h.nextID++
	h.watchers[id] = watcher{path: normalizePath(path), fn: fn}
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.watchers, id)
	}
}

// Notify tells every watcher whose path overlaps path, in registration
// order. Watchers run outside the lock so they may write through the hub.
func (h *Hub) Notify(path string) {
	if h == nil {
		return
	}
	path = normalizePath(path)

	h.mu.Lock()
	ids := make([]int, 0, len(h.watchers))
	for id, w := range h.watchers {
		if Overlaps(w.path, path) {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	fns := make([]func(string), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, h.watchers[id].fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(path)
	}
}

// Overlaps reports whether a and b are the same path or one contains the
// other on a segment boundary ("a.b" overlaps "a" and "a.b.c", not "a.bc").
func Overlaps(a, b string) bool {
	a, b = normalizePath(a), normalizePath(b)
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	if len(a) > len(b) {
		a, b = b, a
	}
	return strings.HasPrefix(b, a+".")
}

func normalizePath(path string) string {
	return strings.Join(Segments(path), ".")
}
