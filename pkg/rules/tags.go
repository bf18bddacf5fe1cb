package rules

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/goliatone/go-formbind/internal/coerce"
	"github.com/goliatone/go-formbind/pkg/messages"
	"github.com/goliatone/go-formbind/pkg/schema"
)

func (r *Registry) validate() *validator.Validate {
	r.tagsOnce.Do(func() {
		r.tags = validator.New(validator.WithRequiredStructEnabled())
	})
	return r.tags
}

// tagRule runs a go-playground validator tag expression against the value.
// Any failed constraint yields invalidFormat; an unknown tag is reported as a
// configuration error.
func (r *Registry) tagRule(tag string) schema.RuleFunc {
	return func(value any, field *schema.FieldSchema, _ any) (res schema.Result, err error) {
		if out, empty := r.checkEmpty(value, field); empty {
			return out, nil
		}
		defer func() {
			if rec := recover(); rec != nil {
				res = nil
				err = fmt.Errorf("%w %q: %v", ErrInvalidTag, tag, rec)
			}
		}()

		verr := r.validate().Var(value, tag)
		if verr == nil {
			return nil, nil
		}
		var invalid *validator.InvalidValidationError
		if errors.As(verr, &invalid) {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidTag, tag, verr)
		}
		var failed validator.ValidationErrors
		if errors.As(verr, &failed) {
			for _, fe := range failed {
				r.logger.Debug("rules: tag constraint failed",
					slog.String("tag", fe.Tag()),
					slog.String("param", fe.Param()),
					slog.String("value", coerce.Text(value)),
				)
			}
		}
		return schema.Message(r.message(messages.InvalidFormat)), nil
	}
}
