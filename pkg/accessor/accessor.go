package accessor

import "github.com/goliatone/go-formbind/pkg/schema"

// Accessor reads and writes one value of a model.
type Accessor interface {
	Read(model any) any
	Write(model any, value any) error
}

// Path accesses a dotted path.
type Path string

// Read implements Accessor.
func (p Path) Read(model any) any {
	value, _ := Get(model, string(p))
	return value
}

// Write implements Accessor.
func (p Path) Write(model any, value any) error {
	return Set(model, string(p), value)
}

// Funcs wraps custom getter and setter functions. A nil Get reads nil and a
// nil Set ignores writes.
type Funcs struct {
	Get func(model any) any
	Set func(model any, value any)
}

// Read implements Accessor.
func (f Funcs) Read(model any) any {
	if f.Get == nil {
		return nil
	}
	return f.Get(model)
}

// Write implements Accessor.
func (f Funcs) Write(model any, value any) error {
	if f.Set != nil {
		f.Set(model, value)
	}
	return nil
}

type inert struct{}

func (inert) Read(any) any         { return nil }
func (inert) Write(any, any) error { return nil }

type split struct {
	reader Accessor
	writer Accessor
}

func (s split) Read(model any) any               { return s.reader.Read(model) }
func (s split) Write(model any, value any) error { return s.writer.Write(model, value) }

// For returns the accessor described by s. Reads and writes are resolved
// independently: a custom Get/Set wins over the Model path, and with neither
// configured the accessor is inert.
func For(s *schema.FieldSchema) Accessor {
	if s == nil {
		return inert{}
	}
	return split{reader: reader(s), writer: writer(s)}
}

func reader(s *schema.FieldSchema) Accessor {
	switch {
	case s.Get != nil:
		return Funcs{Get: s.Get}
	case s.Model != "":
		return Path(s.Model)
	default:
		return inert{}
	}
}

func writer(s *schema.FieldSchema) Accessor {
	switch {
	case s.Set != nil:
		return Funcs{Set: s.Set}
	case s.Model != "":
		return Path(s.Model)
	default:
		return inert{}
	}
}
