// Package validate checks loaded configuration before any run starts.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ppiankov/tactica/internal/model"
)

// Validator wraps go-playground/validator with configuration errors
type Validator struct {
	v *validator.Validate
}

// New creates a validator that reports fields by their YAML names
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return &Validator{v: v}
}

// Config validates a configuration, returning a ConfigurationError that
// lists every invalid field
func (v *Validator) Config(cfg *model.Config) error {
	if cfg == nil {
		return &model.ConfigurationError{Reason: "config is nil"}
	}

	if err := v.v.Struct(cfg); err != nil {
		return formatError(err)
	}

	for from, to := range cfg.Explode.Rename {
		if strings.TrimSpace(to) == "" {
			return &model.ConfigurationError{Reason: fmt.Sprintf("explode.rename: column %q renamed to an empty name", from)}
		}
	}
	for category, path := range cfg.Classify.CategoryFiles {
		if strings.TrimSpace(category) == "" || strings.TrimSpace(path) == "" {
			return &model.ConfigurationError{Reason: "classify.category_files: entries need a category and a path"}
		}
	}

	return nil
}

func formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &model.ConfigurationError{Reason: err.Error()}
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		msgs = append(msgs, fieldPath(e)+" "+friendlyMessage(e))
	}
	sort.Strings(msgs)

	return &model.ConfigurationError{Reason: strings.Join(msgs, "; ")}
}

// fieldPath turns "Config.classify.flag_format" into "classify.flag_format"
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", e.Param(), fmt.Sprint(e.Value()))
	case "gte":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "len":
		return fmt.Sprintf("must have length %s", e.Param())
	default:
		return fmt.Sprintf("failed %s validation", e.Tag())
	}
}
