// Package validator adapts go-playground/validator to echo.
package validator

import (
	"reflect"
	"strings"

	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// FieldError is one failed validation rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// ValidationError carries every failed rule of a request body.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" failed on "+f.Rule)
	}

	return strings.Join(parts, "; ")
}

// Unwrap lets the error middleware treat validation failures as invalid input.
func (e *ValidationError) Unwrap() error {
	return domainerrors.ErrValidationFailed.WithDetails(e.Error())
}

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// New creates the request validator with the domain enum rules registered.
func New() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names rather than Go field names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	_ = v.RegisterValidation("service_type", func(fl validator.FieldLevel) bool {
		return entity.ServiceType(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("payment_mode", func(fl validator.FieldLevel) bool {
		return entity.PaymentMode(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("shipment_status", func(fl validator.FieldLevel) bool {
		return entity.ShipmentStatus(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return entity.Role(fl.Field().String()).IsValid()
	})

	return &CustomValidator{validate: v}
}

// Validate validates i and returns a *ValidationError listing every failed field.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.WithStack(err)
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		out.Fields = append(out.Fields, FieldError{Field: field, Rule: fe.Tag(), Param: fe.Param()})
	}

	return out
}
