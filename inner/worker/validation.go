package worker

import (
	"errors"

	"workers/inner/common"
	"workers/inner/pesel"
	"workers/inner/validator"
)

type StructValidator interface {
	Validate(request any) error
}

// ValidationService проверяет данные работника по цепочке правил.
// Каждое правило прерывает цепочку на первой ошибке, ошибки разных правил не суммируются
type ValidationService struct {
	validator StructValidator
}

func NewValidationService(structValidator StructValidator) *ValidationService {
	return &ValidationService{validator: structValidator}
}

// Validate: пол, форма запроса, PESEL (дата и пол), пароль.
// Правило пола идёт первым, поэтому его ошибка не перекрывается ошибками полей
func (s *ValidationService) Validate(payload Payload) error {
	if err := validator.ValidateGender(payload.Gender); err != nil {
		return err
	}

	if err := s.validator.Validate(payload); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return common.RequestValidationError{
				Message: validationErrs.Error(),
				Data:    validationErrs,
			}
		}
		return common.RequestValidationError{Message: err.Error()}
	}

	birthdate, err := payload.ParseBirthdate()
	if err != nil {
		return common.RequestValidationError{Message: "Invalid birthdate."}
	}
	if err := pesel.CrossValidate(payload.Pesel, birthdate, payload.Gender); err != nil {
		return err
	}

	return validator.ValidatePassword(payload.Password, payload.Repassword)
}
