package schema

// ErrorList is the ordered, observable set of messages attached to a field.
// The list keeps its identity for the lifetime of the schema: Clear empties it
// in place and observers registered through Subscribe stay attached.
type ErrorList struct {
	items     []string
	observers map[int]func([]string)
	nextID    int
}

// NewErrorList returns an empty list.
func NewErrorList() *ErrorList {
	return &ErrorList{items: make([]string, 0, 2)}
}

// Items returns a copy of the current messages.
func (l *ErrorList) Items() []string {
	if l == nil {
		return nil
	}
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

// Len reports the number of messages.
func (l *ErrorList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// Empty reports whether the list holds no messages.
func (l *ErrorList) Empty() bool {
	return l.Len() == 0
}

// Append adds messages in order and notifies observers once.
func (l *ErrorList) Append(messages ...string) {
	if l == nil || len(messages) == 0 {
		return
	}
	l.items = append(l.items, messages...)
	l.notify()
}

// Clear removes every message, reusing the backing storage. Clearing an
// already empty list does not notify.
func (l *ErrorList) Clear() {
	if l == nil || len(l.items) == 0 {
		return
	}
	clear(l.items)
	l.items = l.items[:0]
	l.notify()
}

// Subscribe registers fn to run after every change with a snapshot of the
// messages. The returned func removes the observer.
func (l *ErrorList) Subscribe(fn func([]string)) func() {
	if l == nil || fn == nil {
		return func() {}
	}
	if l.observers == nil {
		l.observers = make(map[int]func([]string))
	}
	id := l.nextID
	l.nextID++
	l.observers[id] = fn
	return func() {
		delete(l.observers, id)
	}
}

func (l *ErrorList) notify() {
	if len(l.observers) == 0 {
		return
	}
	for id := 0; id < l.nextID; id++ {
		if fn, ok := l.observers[id]; ok {
			fn(l.Items())
		}
	}
}
