// Package pesel генерирует и сверяет номера PESEL с датой рождения и полом.
//
// Формат номера: YYMMDD (последние две цифры года, месяц, день), три случайные
// цифры, цифра пола (чётная для мужчины, нечётная для женщины) и завершающая
// цифра. Завершающая цифра всегда равна 1: контрольная сумма не вычисляется,
// поэтому сгенерированные номера не являются настоящими PESEL.
package pesel

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"workers/inner/common"
	"workers/inner/gender"
)

const (
	Length = 11

	// индекс цифры, кодирующей пол
	genderDigitIndex = 9
	trailingDigit    = "1"
)

const (
	MsgDateMismatch   = "The date of birth from the PESEL number does not match the provided date."
	MsgGenderMismatch = "Gender does not match the PESEL."
	MsgInvalidNumber  = "Invalid pesel number."
	MsgInvalidGender  = `Invalid gender. Accepted values are "Man" or "Woman".`
)

// DatePrefix кодирует дату рождения в первые шесть цифр номера
func DatePrefix(birthdate time.Time) string {
	return fmt.Sprintf("%02d%02d%02d", birthdate.Year()%100, int(birthdate.Month()), birthdate.Day())
}

// Generate строит номер для даты рождения и пола
func Generate(birthdate time.Time, genderName string) (string, error) {
	genderDigit, err := genderDigit(genderName)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%03d%d%s", DatePrefix(birthdate), rand.IntN(1000), genderDigit, trailingDigit), nil
}

func genderDigit(genderName string) (int, error) {
	switch genderName {
	case gender.Man:
		return rand.IntN(5) * 2, nil
	case gender.Woman:
		return rand.IntN(5)*2 + 1, nil
	default:
		return 0, common.RequestValidationError{Message: MsgInvalidGender}
	}
}

// ExtractGender определяет пол по чётности десятой цифры: нечётная означает Woman
func ExtractGender(number string) (string, error) {
	if len(number) < genderDigitIndex+1 {
		return "", common.RequestValidationError{Message: MsgInvalidNumber}
	}
	digit := number[genderDigitIndex]
	if digit < '0' || digit > '9' {
		return "", common.RequestValidationError{Message: MsgInvalidNumber}
	}
	if (digit-'0')%2 == 1 {
		return gender.Woman, nil
	}
	return gender.Man, nil
}

// CrossValidate сверяет номер с датой рождения, затем с полом.
// Возвращается первое найденное расхождение
func CrossValidate(number string, birthdate time.Time, genderName string) error {
	if len(number) != Length || strings.IndexFunc(number, isNotDigit) >= 0 {
		return common.RequestValidationError{Message: MsgInvalidNumber}
	}

	if number[:6] != DatePrefix(birthdate) {
		return common.RequestValidationError{Message: MsgDateMismatch}
	}

	numberGender, err := ExtractGender(number)
	if err != nil {
		return err
	}
	if numberGender != genderName {
		return common.RequestValidationError{Message: MsgGenderMismatch}
	}
	return nil
}

func isNotDigit(r rune) bool {
	return r < '0' || r > '9'
}
