package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbind/internal/coerce"
	"github.com/goliatone/go-formbind/pkg/accessor"
	"github.com/goliatone/go-formbind/pkg/field"
	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/messages"
)

// Renderer drives a terminal session over a bound form: every editable field
// is prompted, written through the field runtime and validated until its
// error list is empty.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	maxAttempts       int
	logger            *slog.Logger
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	return r, nil
}

// ContentType reports the serialization format used by Run.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Run prompts every field of f that is neither readonly nor disabled, then
// serializes the form model.
func (r *Renderer) Run(ctx context.Context, f *form.Form) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, errors.New("tui: form is nil")
	}

	catalog := f.Registry().Catalog()
	for _, fld := range f.Fields() {
		if fld.Schema().Readonly || fld.Disabled() {
			continue
		}
		if err := r.promptField(ctx, fld, catalog); err != nil {
			return nil, err
		}
	}

	values, err := toValues(f.Model())
	if err != nil {
		return nil, err
	}
	if r.submitTransformer != nil {
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(values)
}

func (r *Renderer) promptField(ctx context.Context, fld *field.Field, catalog *messages.Catalog) error {
	s := fld.Schema()
	label := displayLabel(fld)

	for attempt := 1; ; attempt++ {
		value, ok, err := r.ask(ctx, fld, label)
		if err != nil {
			return err
		}
		if ok {
			if err := fld.SetValue(value); err != nil {
				if !errors.Is(err, accessor.ErrTypeMismatch) {
					return fmt.Errorf("tui: %w", err)
				}
				r.logger.Debug("tui: answer does not fit model", slog.String("field", label), slog.Any("error", err))
				ok = false
			}
		}
		if !ok {
			if err := r.info(ctx, label, catalog.Message(messages.InvalidNumber)); err != nil {
				return err
			}
		} else {
			errs, err := fld.Validate()
			if err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			if len(errs) == 0 {
				return nil
			}
			for _, msg := range s.Errors.Items() {
				if err := r.info(ctx, label, msg); err != nil {
					return err
				}
			}
		}
		r.logger.Debug("tui: field rejected", slog.String("field", label), slog.Int("attempt", attempt))
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, label)
		}
	}
}

// ask prompts once according to the schema type. ok is false when the answer
// could not be parsed into the expected kind.
func (r *Renderer) ask(ctx context.Context, fld *field.Field, label string) (value any, ok bool, err error) {
	s := fld.Schema()
	current := fld.Value()

	switch strings.ToLower(s.Type) {
	case "boolean", "bool":
		def, _ := current.(bool)
		answer, err := r.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: def, Help: s.Help})
		return answer, true, err

	case "integer", "number":
		raw, err := r.driver.Input(ctx, InputConfig{Message: label, Default: defaultText(current), Help: s.Help})
		if err != nil {
			return nil, false, err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil, true, nil
		}
		if strings.EqualFold(s.Type, "integer") {
			if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
				return int(n), true, nil
			}
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, false, nil
		}
		return n, true, nil

	case "array", "list":
		raw, err := r.driver.Input(ctx, InputConfig{Message: label, Default: joinList(current), Help: s.Help})
		if err != nil {
			return nil, false, err
		}
		return splitList(raw), true, nil

	case "secret", "password":
		answer, err := r.driver.Password(ctx, InputConfig{Message: label, Help: s.Help})
		return answer, true, err

	case "textarea":
		answer, err := r.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: defaultText(current), Help: s.Help})
		return answer, true, err

	default:
		answer, err := r.driver.Input(ctx, InputConfig{Message: label, Default: defaultText(current), Help: s.Help})
		return answer, true, err
	}
}

func (r *Renderer) info(ctx context.Context, label, msg string) error {
	return r.driver.Info(ctx, fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, label, msg))
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return json.Marshal(values)
	}
}

func displayLabel(fld *field.Field) string {
	s := fld.Schema()
	if label := strings.TrimSpace(s.Label); label != "" {
		return label
	}
	if s.Model != "" {
		return s.Model
	}
	return "value"
}

func defaultText(value any) string {
	if coerce.IsEmpty(value) {
		return ""
	}
	return coerce.Text(value)
}

func joinList(value any) string {
	list, ok := value.([]any)
	if !ok {
		return ""
	}
	parts := make([]string, 0, len(list))
	for _, item := range list {
		parts = append(parts, coerce.Text(item))
	}
	return strings.Join(parts, ", ")
}

func splitList(raw string) []any {
	out := []any{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// toValues normalizes the model into a generic map through its JSON form.
func toValues(model any) (map[string]any, error) {
	if values, ok := model.(map[string]any); ok {
		return values, nil
	}
	data, err := json.Marshal(model)
	if err != nil {
		return nil, fmt.Errorf("tui: encode model: %w", err)
	}
	values := make(map[string]any)
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("tui: model is not an object: %w", err)
	}
	return values, nil
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	flatten("", values, flattened)
	return flattened.Encode()
}

func flatten(prefix string, value any, out url.Values) {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			flatten(next, val, out)
		}
	case []any:
		for _, val := range v {
			out.Add(prefix+"[]", coerce.Text(val))
		}
	case nil:
		out.Set(prefix, "")
	default:
		out.Set(prefix, coerce.Text(v))
	}
}

func prettyPrint(values map[string]any) string {
	var b strings.Builder
	writePretty(&b, "", values)
	return b.String()
}

func writePretty(b *strings.Builder, prefix string, value any) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			writePretty(b, next, v[key])
		}
	case []any:
		for idx, val := range v {
			writePretty(b, fmt.Sprintf("%s[%d]", prefix, idx), val)
		}
	default:
		if prefix != "" {
			fmt.Fprintf(b, "%s=%s\n", prefix, coerce.Text(v))
		}
	}
}
