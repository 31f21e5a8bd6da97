package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

// FieldError нарушение тега валидации одним полем
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors нарушения в порядке полей структуры
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	messages := make([]string, len(ve))
	for i, err := range ve {
		messages[i] = err.Message
	}
	return strings.Join(messages, "; ")
}

// шаблоны сообщений по тегу: {field} имя поля из json, {param} параметр тега
var messageTemplates = map[string]string{
	"required": "Field '{field}' required",
	"email":    "Field '{field}' must contain a valid email address",
	"min":      "Field '{field}' must contain at least {param} characters",
	"max":      "Field '{field}' must contain a maximum of {param} characters",
	"len":      "Field '{field}' must contain exactly {param} characters",
	"numeric":  "Field '{field}' must contain only numbers",
	"datetime": "Field '{field}' must be a date in format {param}",
}

const defaultTemplate = "Field '{field}' contains an incorrect value"

func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// в сообщениях используем имена полей из json-тегов
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return &Validator{validate: validate}
}

// Validate проверяет теги структуры. Значения полей в ошибку не попадают
func (v *Validator) Validate(request any) error {
	err := v.validate.Struct(request)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	result := make(ValidationErrors, len(fieldErrs))
	for i, fieldErr := range fieldErrs {
		result[i] = FieldError{
			Field:   fieldErr.Field(),
			Message: message(fieldErr),
		}
	}
	return result
}

func message(err validator.FieldError) string {
	template, ok := messageTemplates[err.Tag()]
	if !ok {
		template = defaultTemplate
	}
	return strings.NewReplacer("{field}", err.Field(), "{param}", err.Param()).Replace(template)
}
