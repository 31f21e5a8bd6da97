package worker

import (
	"database/sql"
	"fmt"

	"workers/inner/common"
	"workers/inner/gender"

	"golang.org/x/crypto/bcrypt"
)

// RecordBuilder переносит данные запроса на запись работника.
// Один и тот же путь используется для новой и существующей записи.
// Проверка данных остаётся на вызывающей стороне
type RecordBuilder struct {
	hashCost int
}

func NewRecordBuilder(hashCost int) *RecordBuilder {
	return &RecordBuilder{hashCost: hashCost}
}

func (b *RecordBuilder) Build(target *Entity, payload Payload, genderRecord gender.Entity) (*Entity, error) {
	birthdate, err := payload.ParseBirthdate()
	if err != nil {
		return nil, common.RequestValidationError{Message: "Invalid birthdate."}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), b.hashCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	target.Name = payload.Name
	target.Surname = payload.Surname
	target.Email = payload.Email
	target.Password = string(hash)
	target.Birthdate = birthdate
	target.Pesel = payload.Pesel
	target.GenderId = sql.NullInt64{Int64: genderRecord.Id, Valid: true}
	target.GenderName = sql.NullString{String: genderRecord.Name, Valid: true}
	return target, nil
}
