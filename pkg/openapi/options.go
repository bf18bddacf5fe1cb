package openapi

import (
	"io"
	"log/slog"
)

// Option configures schema generation.
type Option func(*config)

type config struct {
	validate   bool
	mediaTypes []string
	logger     *slog.Logger
}

func newConfig(opts []Option) config {
	cfg := config{
		mediaTypes: []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithValidation validates the document before walking it.
func WithValidation(enabled bool) Option {
	return func(cfg *config) {
		cfg.validate = enabled
	}
}

// WithMediaTypes sets the request body media types tried in order. The first
// declared content is used when none match.
func WithMediaTypes(mediaTypes ...string) Option {
	return func(cfg *config) {
		if len(mediaTypes) > 0 {
			cfg.mediaTypes = append([]string(nil), mediaTypes...)
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}
