package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var outputTagRegexp = regexp.MustCompile(`\{([^{}]*)\}`)

// getValidationMessage returns a human-readable message for a validation error
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_without":
		return "field is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "excluded_with":
		return fmt.Sprintf("cannot be combined with '%s'", strings.ToLower(e.Param()))
	case "output_format":
		return "may only reference the tags {file}, {line}, {sep} and {text}"
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("output_format", validateOutputFormat); err != nil {
		panic(err)
	}

	// Register function to get field name from "toml" tag
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validator: output template may reference only the known tags.
func validateOutputFormat(fl validator.FieldLevel) bool {
	for _, m := range outputTagRegexp.FindAllStringSubmatch(fl.Field().String(), -1) {
		switch m[1] {
		case "file", "line", "sep", "text":
		default:
			return false
		}
	}
	return true
}

// ValidateConfig checks the loaded configuration and returns one error
// describing every violation.
func (c *Config) ValidateConfig() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", len(verrs)))
	for i, e := range verrs {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, e.Namespace(), getValidationMessage(e)))
	}
	return errors.New(sb.String())
}
