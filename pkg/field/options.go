package field

import (
	"log/slog"

	"github.com/goliatone/go-formbind/pkg/accessor"
	"github.com/goliatone/go-formbind/pkg/rules"
)

// Option configures a Field.
type Option func(*Field)

// WithRegistry sets the registry resolving named rules.
func WithRegistry(reg *rules.Registry) Option {
	return func(f *Field) {
		if reg != nil {
			f.registry = reg
		}
	}
}

// WithHub shares a write notification hub with other fields on the same
// model so writes through one field re-sync the others.
func WithHub(hub *accessor.Hub) Option {
	return func(f *Field) {
		f.hub = hub
	}
}

// WithFormatter installs value transforms. formatter may implement
// accessor.FieldFormatter, accessor.ModelFormatter or both.
func WithFormatter(formatter any) Option {
	return func(f *Field) {
		f.formatter = formatter
	}
}

// WithDisabled starts the field disabled.
func WithDisabled(disabled bool) Option {
	return func(f *Field) {
		f.disabled = disabled
	}
}

// WithValidateAfterChanged runs Validate after every observed change.
func WithValidateAfterChanged(enabled bool) Option {
	return func(f *Field) {
		f.validateAfterChanged = enabled
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Field) {
		if logger != nil {
			f.logger = logger
		}
	}
}
