// Package validate проверяет входные DTO по тегам validate
// и переводит ошибки в *domain.ValidationError с JSON именами полей.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/frontandrew/taxi/internal/domain"
	"github.com/go-playground/validator/v10"
)

var instance = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// Struct проверяет структуру. Ошибки тегов возвращаются как *domain.ValidationError.
func Struct(s interface{}) error {
	err := instance.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	verr := &domain.ValidationError{Fields: make(map[string]string, len(fieldErrors))}
	for _, fe := range fieldErrors {
		// первая ошибка поля важнее последующих
		if _, exists := verr.Fields[fe.Field()]; !exists {
			verr.Fields[fe.Field()] = message(fe)
		}
	}
	return verr
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("ensure this value has at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("ensure this value has at least %s characters", fe.Param())
	case "eqfield":
		return "the two password fields didn't match"
	case "uuid":
		return "enter a valid UUID"
	case "dive":
		return "invalid item"
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}
