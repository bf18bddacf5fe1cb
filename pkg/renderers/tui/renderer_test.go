package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/rules"
	"github.com/goliatone/go-formbind/pkg/schema"
)

type stubDriver struct {
	inputs       []string
	confirm      []bool
	textAreas    []string
	passwords    []string
	infoMessages []string
	inputPos     int
	confirmPos   int
	textPos      int
	passPos      int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func TestRun_RepromptsUntilValid(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "ada@example", "ada@example.com", "abc", "12", "21", "go, rust"},
		confirm:   []bool{true},
		passwords: []string{"s3cret"},
	}
	r, err := New(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	model := map[string]any{"id": "u-1"}
	f := form.New(model, []*schema.FieldSchema{
		{Model: "id", Readonly: true, Validator: schema.Named(rules.Required)},
		{Model: "email", Label: "E-mail", Required: true, Validator: schema.Named(rules.Email)},
		{Model: "age", Type: "integer", Min: 18, Validator: schema.Rules(rules.Integer, rules.Number)},
		{Model: "langs", Type: "array", Max: 3, Validator: schema.Named(rules.Array)},
		{Model: "terms", Type: "boolean"},
		{Model: "password", Type: "secret", Required: true, Validator: schema.Named(rules.Required)},
	})

	out, err := r.Run(context.Background(), f)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	wantInfo := []string{
		"! E-mail: This field is required!",
		"! E-mail: Invalid e-mail address!",
		"! age: Invalid number",
		"! age: The number is too small! Minimum: 18",
	}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("unexpected messages (-want +got):\n%s", diff)
	}
	want := `{"age":21,"email":"ada@example.com","id":"u-1","langs":["go","rust"],"password":"s3cret","terms":true}`
	if string(out) != want {
		t.Fatalf("unexpected output:\n got %s\nwant %s", out, want)
	}
	if r.ContentType() != "application/json" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}
}

func TestRun_OutputFormats(t *testing.T) {
	schemas := func() []*schema.FieldSchema {
		return []*schema.FieldSchema{
			{Model: "user.name"},
			{Model: "user.bio", Type: "textarea"},
		}
	}
	tests := []struct {
		format OutputFormat
		want   string
	}{
		{OutputFormatPrettyText, "user.bio=hi\nuser.name=Ada\n"},
		{OutputFormatFormURLEncoded, "user.bio=hi&user.name=Ada"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			driver := &stubDriver{inputs: []string{"Ada"}, textAreas: []string{"hi"}}
			r, err := New(WithPromptDriver(driver), WithOutputFormat(tt.format))
			if err != nil {
				t.Fatalf("new renderer: %v", err)
			}
			out, err := r.Run(context.Background(), form.New(map[string]any{}, schemas()))
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if string(out) != tt.want {
				t.Fatalf("unexpected output %q, want %q", out, tt.want)
			}
		})
	}
}

func TestRun_StructModelAndTransformer(t *testing.T) {
	type signup struct {
		Name string `json:"name"`
	}
	model := &signup{}
	driver := &stubDriver{inputs: []string{"Grace"}}
	r, err := New(
		WithPromptDriver(driver),
		WithSubmitTransformer(func(values map[string]any) (map[string]any, error) {
			values["source"] = "cli"
			return values, nil
		}),
	)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.Run(context.Background(), form.New(model, []*schema.FieldSchema{{Model: "name"}}))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if model.Name != "Grace" {
		t.Fatalf("expected struct model to be written, got %q", model.Name)
	}
	if string(out) != `{"name":"Grace","source":"cli"}` {
		t.Fatalf("unexpected output %s", out)
	}
}

func TestRun_RepromptsWhenAnswerDoesNotFitModel(t *testing.T) {
	type order struct {
		Quantity int8 `json:"quantity"`
	}
	model := &order{}
	driver := &stubDriver{inputs: []string{"300", "1.5", "42"}}
	r, err := New(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	f := form.New(model, []*schema.FieldSchema{
		{Model: "quantity", Label: "Quantity", Type: "number", Max: 100, Validator: schema.Named(rules.Number)},
	})
	if _, err := r.Run(context.Background(), f); err != nil {
		t.Fatalf("run: %v", err)
	}
	if model.Quantity != 42 {
		t.Fatalf("expected 42 to be stored, got %d", model.Quantity)
	}
	want := []string{"! Quantity: Invalid number", "! Quantity: Invalid number"}
	if diff := cmp.Diff(want, driver.infoMessages); diff != "" {
		t.Fatalf("unexpected messages (-want +got):\n%s", diff)
	}
}

func TestRun_MaxAttempts(t *testing.T) {
	driver := &stubDriver{inputs: []string{"x", "y"}}
	r, err := New(WithPromptDriver(driver), WithMaxAttempts(2))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	f := form.New(map[string]any{}, []*schema.FieldSchema{
		{Model: "n", Validator: schema.Named(rules.Email)},
	})
	if _, err := r.Run(context.Background(), f); !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestRun_ConfigurationError(t *testing.T) {
	driver := &stubDriver{inputs: []string{"x"}}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	f := form.New(map[string]any{}, []*schema.FieldSchema{
		{Model: "n", Validator: schema.Named("missing")},
	})
	if _, err := r.Run(context.Background(), f); !errors.Is(err, rules.ErrUnknownRule) {
		t.Fatalf("expected ErrUnknownRule, got %v", err)
	}
}

func TestNew_RejectsUnknownFormat(t *testing.T) {
	if _, err := New(WithPromptDriver(&stubDriver{}), WithOutputFormat("xml")); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}
