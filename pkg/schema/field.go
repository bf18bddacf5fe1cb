package schema

// RuleFunc validates a single value. It returns the messages to surface (nil
// when the value is valid) and an error only for configuration defects such
// as a malformed pattern. Custom validators follow this signature to compose
// with the built-in rules.
type RuleFunc func(value any, field *FieldSchema, model any) (Result, error)

// Result is the ordered list of messages produced by a rule.
type Result []string

// Message wraps a single message. An empty string yields a nil Result so it
// contributes nothing to the error list.
func Message(msg string) Result {
	if msg == "" {
		return nil
	}
	return Result{msg}
}

// FieldSchema is the declarative configuration binding one field to a model.
// It is shared with the rendering layer and mutated in place by the field
// runtime (Errors, ShowHelp); the runtime is the only writer of Errors.
type FieldSchema struct {
	// Model is the dotted path into the model, e.g. "author.email".
	Model string `json:"model,omitempty" yaml:"model,omitempty"`
	// Get overrides path based reads.
	Get func(model any) any `json:"-" yaml:"-"`
	// Set overrides path based writes.
	Set func(model any, value any) `json:"-" yaml:"-"`

	Validator Validator `json:"-" yaml:"-"`

	Required bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Min      any    `json:"min,omitempty" yaml:"min,omitempty"`
	Max      any    `json:"max,omitempty" yaml:"max,omitempty"`
	Pattern  string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Readonly bool   `json:"readonly,omitempty" yaml:"readonly,omitempty"`

	OnChanged   func(model, newValue, oldValue any, field *FieldSchema) `json:"-" yaml:"-"`
	OnValidated func(model any, errors []string, field *FieldSchema)    `json:"-" yaml:"-"`

	// Errors is allocated when the field is bound and never replaced
	// afterwards, so observers can keep a reference.
	Errors   *ErrorList `json:"-" yaml:"-"`
	ShowHelp bool       `json:"showHelp" yaml:"showHelp"`

	// Type, Label and Help are consumer hints; the engine does not read them.
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Help  string `json:"help,omitempty" yaml:"help,omitempty"`
}

// EnsureErrors allocates the error list when missing and returns it.
func (s *FieldSchema) EnsureErrors() *ErrorList {
	if s.Errors == nil {
		s.Errors = NewErrorList()
	}
	return s.Errors
}

// Key identifies the field in form level maps: the model path when present,
// otherwise the label.
func (s *FieldSchema) Key() string {
	if s == nil {
		return ""
	}
	if s.Model != "" {
		return s.Model
	}
	return s.Label
}
