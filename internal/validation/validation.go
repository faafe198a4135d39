package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// в ошибках поле называется так же, как в JSON
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// FieldError - первое поле, не прошедшее проверку.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("поле '%s': %s", e.Field, e.Reason)
}

// Struct проверяет сущность по тегам validate.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return &FieldError{Field: errs[0].Field(), Reason: reason(errs[0])}
	}
	return err
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "обязательное поле"
	case "email":
		return "некорректный email"
	case "oneof":
		return "допустимые значения: " + fe.Param()
	case "min":
		return "не меньше " + fe.Param()
	case "max":
		return "не больше " + fe.Param()
	default:
		return fmt.Sprintf("не прошло проверку %s", fe.Tag())
	}
}
