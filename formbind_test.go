package formbind_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbind"
	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/messages"
	"github.com/goliatone/go-formbind/pkg/schema"
	"github.com/goliatone/go-formbind/pkg/testsupport"
)

func TestNewRegistry_LocalizedMessages(t *testing.T) {
	registry, err := formbind.NewRegistry("fr")
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	model := map[string]any{}
	f := formbind.Bind(model, []*formbind.FieldSchema{
		{Model: "name", Validator: schema.Named("required")},
	}, form.WithRegistry(registry))
	defer f.Close()

	errs, err := f.Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	want := map[string][]string{"name": {"Champs obligatoire"}}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRegistry_UnknownLocaleFallsBack(t *testing.T) {
	registry, err := formbind.NewRegistry("xx")
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if got := registry.Catalog().Message("fieldIsRequired"); got != "This field is required!" {
		t.Fatalf("expected english fallback, got %q", got)
	}
}

func TestFromDefinition(t *testing.T) {
	def := testsupport.LoadDefinition(t, "testdata/user.yaml")

	model := map[string]any{"user": map[string]any{"age": 21}}
	f, err := formbind.FromDefinition(model, def)
	if err != nil {
		t.Fatalf("FromDefinition: %v", err)
	}
	defer f.Close()

	if !f.Options().ValidateAfterChanged {
		t.Fatalf("expected definition options to be applied")
	}
	errs, err := f.Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	want := map[string][]string{"user.name": {"Pflichtfeld!"}}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestFromDefinition_UnknownRule(t *testing.T) {
	def := form.Definition{Fields: []form.FieldDefinition{
		{Model: "name", Validator: form.RuleNames{"nope"}},
	}}
	if _, err := formbind.FromDefinition(map[string]any{}, def); err == nil {
		t.Fatalf("expected unknown rule error")
	}
}

func TestNewRegistry_CatalogsAreIsolated(t *testing.T) {
	first, err := formbind.NewRegistry("en")
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	first.Catalog().Set(messages.FieldIsRequired, "CUSTOM")

	second, err := formbind.NewRegistry("en")
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if got := second.Catalog().Message(messages.FieldIsRequired); got != "This field is required!" {
		t.Fatalf("catalog change leaked into a new registry: %q", got)
	}

	bundle, err := formbind.Messages()
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if got := bundle.Catalog("en").Message(messages.FieldIsRequired); got != "This field is required!" {
		t.Fatalf("catalog change leaked into the shared bundle: %q", got)
	}
}

func TestFromDefinition_OptionsOverrideDefinition(t *testing.T) {
	bundle := messages.NewBundle()
	if err := bundle.Add("es", messages.NewCatalog(map[string]string{
		messages.FieldIsRequired: "Campo obligatorio",
	})); err != nil {
		t.Fatalf("Add: %v", err)
	}
	def := testsupport.LoadDefinition(t, "testdata/user.yaml")

	f, err := formbind.FromDefinition(map[string]any{}, def,
		formbind.WithBundle(bundle),
		formbind.WithLocale("es"),
		formbind.WithFormOptions(form.WithOptions(formbind.Options{})),
	)
	if err != nil {
		t.Fatalf("FromDefinition: %v", err)
	}
	defer f.Close()

	if f.Options().ValidateAfterChanged {
		t.Fatalf("expected caller form options to win over the definition")
	}
	errs, err := f.Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	want := map[string][]string{"user.name": {"Campo obligatorio"}}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestBindSchemas_UnknownRule(t *testing.T) {
	_, err := formbind.BindSchemas(map[string]any{}, []*formbind.FieldSchema{
		{Model: "name", Validator: schema.Named("nope")},
	})
	if !errors.Is(err, schema.ErrUnknownRule) {
		t.Fatalf("expected ErrUnknownRule, got %v", err)
	}
}
