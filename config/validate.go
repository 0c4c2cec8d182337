package config

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cwbudde/algo-diffspec/dsp/window"
	"github.com/cwbudde/algo-diffspec/fault"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("pow2", func(fl validator.FieldLevel) bool {
		return IsPowerOf2(int(fl.Field().Int()))
	})

	_ = v.RegisterValidation("window", func(fl validator.FieldLevel) bool {
		_, err := window.Parse(fl.Field().String())
		return err == nil
	})

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// validateStruct runs the tag rules and reports the first violation in
// field order.
func validateStruct(c RunConfig) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fault.Config("validate config: %w", err)
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "oneof":
		return fault.Config("invalid %s %q: expected one of %s", fe.Field(), fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "required":
		return fault.Config("%s cannot be empty", fe.Field())
	case "gte":
		return fault.Config("%s cannot be lower than %s: %v", fe.Field(), fe.Param(), fe.Value())
	case "window":
		return fault.Config("invalid %s %q: expected one of %s", fe.Field(), fe.Value(), strings.Join(window.Names(), ", "))
	case "pow2":
		return fault.Config("%s must be a power of 2: %v", fe.Field(), fe.Value())
	default:
		return fault.Config("%s failed %q check: %v", fe.Field(), fe.Tag(), fe.Value())
	}
}
