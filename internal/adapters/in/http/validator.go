package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"logistics/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

// RequestValidator plugs go-playground/validator into echo. Field errors are converted
// to errs types so that they map to 400 like domain validation failures.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

func (v *RequestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	errList := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			errList = append(errList, errs.NewValueIsRequiredError(fe.Field()))
			continue
		}
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			fe.Field(), fmt.Errorf("failed on %s%s", fe.Tag(), paramSuffix(fe.Param())),
		))
	}
	return errors.Join(errList...)
}

func paramSuffix(param string) string {
	if param == "" {
		return ""
	}
	return "=" + param
}
