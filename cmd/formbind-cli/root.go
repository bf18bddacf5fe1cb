package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbind"
	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/messages"
	"github.com/goliatone/go-formbind/pkg/openapi"
	"github.com/goliatone/go-formbind/pkg/renderers/tui"
	"github.com/goliatone/go-formbind/pkg/rules"
)

type options struct {
	formFile             string
	openapiFile          string
	operation            string
	locale               string
	catalogs             string
	format               string
	modelFile            string
	validateAfterChanged bool
	verbose              bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "formbind",
		Short: "Prompt for and validate form values from a form definition or an OpenAPI operation",
		Long: `formbind binds a form definition (JSON/YAML) or the request body of an
OpenAPI operation to an empty model, prompts for every field in the terminal,
validates each answer and writes the collected model to stdout.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPrompt(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.formFile, "form", "", "form definition file (JSON or YAML)")
	flags.StringVar(&opts.openapiFile, "openapi", "", "OpenAPI document used instead of --form")
	flags.StringVar(&opts.operation, "operation", "", "operation id whose request body defines the fields")
	flags.StringVar(&opts.locale, "locale", "", "message locale (defaults to the definition locale, then en)")
	flags.StringVar(&opts.catalogs, "catalogs", "", "directory of <locale>.json|yaml|toml message catalogs")
	flags.BoolVar(&opts.validateAfterChanged, "validate-after-changed", false, "validate fields as soon as their value changes")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging on stderr")
	root.Flags().StringVar(&opts.format, "format", string(tui.OutputFormatJSON), "output format: json, form or pretty")

	check := &cobra.Command{
		Use:   "check",
		Short: "Validate a JSON model file without prompting",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.OutOrStdout(), opts)
		},
	}
	check.Flags().StringVar(&opts.modelFile, "model", "", "JSON model to validate (required)")
	_ = check.MarkFlagRequired("model")

	root.AddCommand(check, newRulesCommand(), newLocalesCommand(opts))
	return root
}

func newRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the built-in rule names",
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range rules.NewRegistry().Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s<validator tags>\n", rules.TagPrefix)
		},
	}
}

func newLocalesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List the available message locales",
		RunE: func(cmd *cobra.Command, _ []string) error {
			bundle, err := loadBundle(opts, newLogger(opts.verbose))
			if err != nil {
				return err
			}
			for _, locale := range bundle.Locales() {
				fmt.Fprintln(cmd.OutOrStdout(), locale)
			}
			return nil
		},
	}
}

func runPrompt(ctx context.Context, out io.Writer, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := newLogger(opts.verbose)
	f, err := buildForm(ctx, opts, map[string]any{}, logger)
	if err != nil {
		return err
	}
	defer f.Close()

	renderer, err := tui.New(
		tui.WithOutputFormat(tui.OutputFormat(opts.format)),
		tui.WithTheme(tui.Theme{ErrorPrefix: "✗ "}),
		tui.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	payload, err := renderer.Run(ctx, f)
	if err != nil {
		if errors.Is(err, tui.ErrAborted) {
			return errors.New("aborted")
		}
		return err
	}
	_, err = fmt.Fprintln(out, string(payload))
	return err
}

func runCheck(out io.Writer, opts *options) error {
	logger := newLogger(opts.verbose)
	data, err := os.ReadFile(opts.modelFile)
	if err != nil {
		return fmt.Errorf("read model: %w", err)
	}
	model := make(map[string]any)
	if err := json.Unmarshal(data, &model); err != nil {
		return fmt.Errorf("decode model %s: %w", opts.modelFile, err)
	}

	f, err := buildForm(context.Background(), opts, model, logger)
	if err != nil {
		return err
	}
	defer f.Close()

	errs, err := f.Validate()
	if err != nil {
		return err
	}
	if len(errs) == 0 {
		_, err := fmt.Fprintln(out, "valid")
		return err
	}
	for _, fld := range f.Fields() {
		key := fld.Schema().Key()
		for _, msg := range fld.Errors() {
			fmt.Fprintf(out, "%s: %s\n", key, msg)
		}
	}
	return fmt.Errorf("%d invalid field(s)", len(errs))
}

func buildForm(ctx context.Context, opts *options, model any, logger *slog.Logger) (*form.Form, error) {
	bundle, err := loadBundle(opts, logger)
	if err != nil {
		return nil, err
	}
	bindOpts := []formbind.Option{
		formbind.WithBundle(bundle),
		formbind.WithLocale(opts.locale),
		formbind.WithLogger(logger),
	}
	if opts.validateAfterChanged {
		bindOpts = append(bindOpts, formbind.WithFormOptions(form.WithOptions(form.Options{ValidateAfterChanged: true})))
	}

	switch {
	case opts.formFile != "" && opts.openapiFile != "":
		return nil, errors.New("use either --form or --openapi")
	case opts.formFile != "":
		dir, name := filepath.Split(opts.formFile)
		if dir == "" {
			dir = "."
		}
		def, err := form.LoadFS(os.DirFS(dir), name)
		if err != nil {
			return nil, err
		}
		return formbind.FromDefinition(model, def, bindOpts...)
	case opts.openapiFile != "":
		if opts.operation == "" {
			return nil, errors.New("--operation is required with --openapi")
		}
		data, err := os.ReadFile(opts.openapiFile)
		if err != nil {
			return nil, fmt.Errorf("read openapi document: %w", err)
		}
		fields, err := openapi.FieldsFromOperation(ctx, data, opts.operation, openapi.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return formbind.BindSchemas(model, fields, bindOpts...)
	default:
		return nil, errors.New("one of --form or --openapi is required")
	}
}

func loadBundle(opts *options, logger *slog.Logger) (*messages.Bundle, error) {
	if opts.catalogs != "" {
		return messages.LoadFS(os.DirFS(opts.catalogs), messages.WithLogger(logger))
	}
	return formbind.Messages()
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
