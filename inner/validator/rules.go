package validator

import (
	"workers/inner/common"
	"workers/inner/gender"
)

const (
	MsgInvalidGender         = "Only Man/Woman are allowed."
	MsgPasswordsDoNotMatch   = "Passwords do not match."
	MsgInvalidPasswordFormat = "Invalid password format. Password must be at least 8 characters long and contain at least one uppercase letter, one lowercase letter, and one digit."

	passwordMinLength = 8
)

// ValidateGender принимает только точные значения справочника, без нормализации регистра
func ValidateGender(name string) error {
	switch name {
	case gender.Man, gender.Woman:
		return nil
	default:
		return common.RequestValidationError{Message: MsgInvalidGender}
	}
}

// ValidatePassword сначала сверяет пароль с подтверждением, затем проверяет сложность
func ValidatePassword(password, confirmation string) error {
	if password != confirmation {
		return common.RequestValidationError{Message: MsgPasswordsDoNotMatch}
	}

	if len(password) < passwordMinLength {
		return common.RequestValidationError{Message: MsgInvalidPasswordFormat}
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return common.RequestValidationError{Message: MsgInvalidPasswordFormat}
	}
	return nil
}
