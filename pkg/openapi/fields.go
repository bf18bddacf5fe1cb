package openapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbind/internal/coerce"
	"github.com/goliatone/go-formbind/pkg/rules"
	"github.com/goliatone/go-formbind/pkg/schema"
)

// ErrOperationNotFound is returned when no operation matches the requested id.
var ErrOperationNotFound = errors.New("openapi: operation not found")

// Operations lists the operation ids of a document, sorted. Operations
// without an id are listed as "<method>:<path>" in lower case method.
func Operations(ctx context.Context, data []byte, opts ...Option) ([]string, error) {
	cfg := newConfig(opts)
	doc, err := load(ctx, data, cfg)
	if err != nil {
		return nil, err
	}
	var ids []string
	eachOperation(doc, func(id string, _ *openapi3.Operation) bool {
		ids = append(ids, id)
		return true
	})
	sort.Strings(ids)
	return ids, nil
}

// FieldsFromOperation builds one FieldSchema per leaf property of the
// operation request body. Nested objects flatten to dotted model paths and
// properties are emitted in name order.
func FieldsFromOperation(ctx context.Context, data []byte, operationID string, opts ...Option) ([]*schema.FieldSchema, error) {
	cfg := newConfig(opts)
	doc, err := load(ctx, data, cfg)
	if err != nil {
		return nil, err
	}

	operationID = strings.TrimSpace(operationID)
	var op *openapi3.Operation
	eachOperation(doc, func(id string, candidate *openapi3.Operation) bool {
		if id == operationID {
			op = candidate
			return false
		}
		return true
	})
	if op == nil {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	body := requestSchema(op.RequestBody, cfg.mediaTypes)
	if body == nil || body.Value == nil {
		return nil, fmt.Errorf("openapi: operation %q has no request body schema", operationID)
	}

	w := walker{visiting: make(map[*openapi3.Schema]bool)}
	w.object("", body.Value)
	cfg.logger.Debug("openapi: fields generated", slog.String("operation", operationID), slog.Int("fields", len(w.fields)))
	return w.fields, nil
}

func load(ctx context.Context, data []byte, cfg config) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if cfg.validate {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}
	return doc, nil
}

func eachOperation(doc *openapi3.T, fn func(id string, op *openapi3.Operation) bool) {
	if doc == nil || doc.Paths == nil {
		return
	}
	paths := doc.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)
	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		ops := item.Operations()
		methods := make([]string, 0, len(ops))
		for method := range ops {
			methods = append(methods, method)
		}
		sort.Strings(methods)
		for _, method := range methods {
			op := ops[method]
			if op == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			if !fn(id, op) {
				return
			}
		}
	}
}

func requestSchema(body *openapi3.RequestBodyRef, mediaTypes []string) *openapi3.SchemaRef {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range mediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return mt.Schema
		}
	}
	names := make([]string, 0, len(content))
	for name := range content {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if mt := content[name]; mt != nil && mt.Schema != nil {
			return mt.Schema
		}
	}
	return nil
}

type walker struct {
	fields   []*schema.FieldSchema
	visiting map[*openapi3.Schema]bool
}

func (w *walker) object(prefix string, src *openapi3.Schema) {
	if src == nil || w.visiting[src] {
		return
	}
	w.visiting[src] = true
	defer delete(w.visiting, src)

	required := make(map[string]bool, len(src.Required))
	for _, name := range src.Required {
		required[name] = true
	}
	properties := make(map[string]*openapi3.SchemaRef, len(src.Properties))
	for name, prop := range src.Properties {
		properties[name] = prop
	}
	for _, part := range src.AllOf {
		if part == nil || part.Value == nil {
			continue
		}
		for name, prop := range part.Value.Properties {
			if _, exists := properties[name]; !exists {
				properties[name] = prop
			}
		}
		for _, name := range part.Value.Required {
			required[name] = true
		}
	}

	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		prop := ref.Value
		if typeOf(prop) == "object" || (typeOf(prop) == "" && len(prop.Properties) > 0) {
			w.object(path, prop)
			continue
		}
		w.fields = append(w.fields, leaf(path, name, prop, required[name]))
	}
}

func leaf(path, name string, src *openapi3.Schema, required bool) *schema.FieldSchema {
	s := &schema.FieldSchema{
		Model:    path,
		Label:    src.Title,
		Help:     src.Description,
		Required: required,
		Readonly: src.ReadOnly,
		Pattern:  src.Pattern,
	}
	if s.Label == "" {
		s.Label = name
	}

	var names []string
	format := strings.ToLower(src.Format)
	switch typeOf(src) {
	case "integer":
		s.Type = "integer"
		names = append(names, rules.Integer)
		if numericBounds(s, src) {
			names = append(names, rules.Number)
		}
	case "number":
		s.Type = "number"
		numericBounds(s, src)
		names = append(names, rules.Number)
	case "array":
		s.Type = "array"
		if src.MinItems > 0 {
			s.Min = src.MinItems
		}
		if src.MaxItems != nil {
			s.Max = *src.MaxItems
		}
		names = append(names, rules.Array)
	case "string":
		s.Type = "string"
		switch format {
		case "date", "date-time":
			s.Type = "date"
			names = append(names, rules.Date)
		default:
			if src.MinLength > 0 {
				s.Min = src.MinLength
			}
			if src.MaxLength != nil {
				s.Max = *src.MaxLength
			}
			names = append(names, rules.String)
		}
		switch format {
		case "email":
			s.Type = "email"
			names = append(names, rules.Email)
		case "uri", "url":
			s.Type = "url"
			names = append(names, rules.URL)
		case "password":
			s.Type = "secret"
		}
		if src.Pattern != "" {
			names = append(names, rules.Regexp)
		}
		if tag := oneOfTag(src.Enum); tag != "" {
			names = append(names, tag)
		}
	case "boolean":
		s.Type = "boolean"
	}
	if len(names) == 0 && required {
		names = append(names, rules.Required)
	}
	if len(names) > 0 {
		s.Validator = schema.Rules(names...)
	}
	return s
}

func numericBounds(s *schema.FieldSchema, src *openapi3.Schema) bool {
	if src.Min != nil {
		s.Min = *src.Min
	}
	if src.Max != nil {
		s.Max = *src.Max
	}
	return src.Min != nil || src.Max != nil
}

// oneOfTag turns a string enum into a validator tag rule. Values containing
// spaces cannot be expressed with oneof and disable the rule.
func oneOfTag(values []any) string {
	if len(values) == 0 {
		return ""
	}
	parts := make([]string, 0, len(values))
	for _, value := range values {
		text := coerce.Text(value)
		if text == "" || strings.ContainsAny(text, " ,|") {
			return ""
		}
		parts = append(parts, text)
	}
	return rules.TagPrefix + "oneof=" + strings.Join(parts, " ")
}

func typeOf(src *openapi3.Schema) string {
	if src == nil || src.Type == nil {
		return ""
	}
	for _, typ := range src.Type.Slice() {
		if typ != "null" {
			return typ
		}
	}
	return ""
}
