package form

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbind/pkg/schema"
)

// Definition is the declarative form document.
type Definition struct {
	Title   string            `json:"title,omitempty" yaml:"title,omitempty"`
	Locale  string            `json:"locale,omitempty" yaml:"locale,omitempty"`
	Options Options           `json:"options" yaml:"options"`
	Fields  []FieldDefinition `json:"fields" yaml:"fields"`
}

// FieldDefinition describes one field of a Definition.
type FieldDefinition struct {
	Model     string    `json:"model,omitempty" yaml:"model,omitempty"`
	Type      string    `json:"type,omitempty" yaml:"type,omitempty"`
	Label     string    `json:"label,omitempty" yaml:"label,omitempty"`
	Help      string    `json:"help,omitempty" yaml:"help,omitempty"`
	Validator RuleNames `json:"validator,omitempty" yaml:"validator,omitempty"`
	Required  bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Min       any       `json:"min,omitempty" yaml:"min,omitempty"`
	Max       any       `json:"max,omitempty" yaml:"max,omitempty"`
	Pattern   string    `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Readonly  bool      `json:"readonly,omitempty" yaml:"readonly,omitempty"`
}

// RuleNames lists rule names. Documents may give a single name or a list.
type RuleNames []string

// UnmarshalJSON accepts a string or an array of strings.
func (r *RuleNames) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*r = singleName(single)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("form: validator must be a string or a list of strings: %w", err)
	}
	*r = list
	return nil
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (r *RuleNames) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*r = singleName(node.Value)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return fmt.Errorf("form: validator: %w", err)
		}
		*r = list
		return nil
	default:
		return fmt.Errorf("form: validator must be a string or a list of strings (line %d)", node.Line)
	}
}

func singleName(value string) RuleNames {
	if value = strings.TrimSpace(value); value == "" {
		return nil
	}
	return RuleNames{value}
}

// ParseDefinition decodes a JSON or YAML document. source names the input in
// error messages.
func ParseDefinition(data []byte, source string) (Definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Definition{}, fmt.Errorf("form: file %s is empty", source)
	}

	var def Definition
	if err := json.Unmarshal(data, &def); err == nil {
		return def, def.check(source)
	}
	def = Definition{}
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("form: parse %s: invalid JSON or YAML: %w", source, err)
	}
	return def, def.check(source)
}

// LoadFS reads and parses the named definition from fsys.
func LoadFS(fsys fs.FS, name string) (Definition, error) {
	if fsys == nil {
		return Definition{}, errors.New("form: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Definition{}, fmt.Errorf("form: read %s: %w", name, err)
	}
	return ParseDefinition(data, name)
}

func (d Definition) check(source string) error {
	if len(d.Fields) == 0 {
		return fmt.Errorf("form: %s defines no fields", source)
	}
	seen := make(map[string]struct{}, len(d.Fields))
	for idx, fd := range d.Fields {
		path := strings.TrimSpace(fd.Model)
		if path == "" {
			continue
		}
		if _, dup := seen[path]; dup {
			return fmt.Errorf("form: %s field %d duplicates model %q", source, idx, path)
		}
		seen[path] = struct{}{}
	}
	return nil
}

// Resolve reports the first rule name the resolver does not know.
func (d Definition) Resolve(resolver schema.Resolver) error {
	for _, s := range d.Schemas() {
		if _, err := schema.Flatten(s.Validator, resolver); err != nil {
			return fmt.Errorf("form: field %q: %w", s.Key(), err)
		}
	}
	return nil
}

// Schemas builds one FieldSchema per field. A required field without rules
// gets the required rule.
func (d Definition) Schemas() []*schema.FieldSchema {
	out := make([]*schema.FieldSchema, 0, len(d.Fields))
	for _, fd := range d.Fields {
		names := []string(fd.Validator)
		if len(names) == 0 && fd.Required {
			names = []string{"required"}
		}
		s := &schema.FieldSchema{
			Model:    strings.TrimSpace(fd.Model),
			Type:     fd.Type,
			Label:    fd.Label,
			Help:     fd.Help,
			Required: fd.Required,
			Min:      fd.Min,
			Max:      fd.Max,
			Pattern:  fd.Pattern,
			Readonly: fd.Readonly,
		}
		if len(names) > 0 {
			s.Validator = schema.Rules(names...)
		}
		out = append(out, s)
	}
	return out
}
