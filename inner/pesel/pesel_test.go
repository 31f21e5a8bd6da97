package pesel

import (
	"testing"
	"time"

	"workers/inner/common"
	"workers/inner/gender"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestDatePrefix(t *testing.T) {
	assert.Equal(t, "900514", DatePrefix(date(1990, time.May, 14)))
	assert.Equal(t, "050101", DatePrefix(date(2005, time.January, 1)))
	assert.Equal(t, "001231", DatePrefix(date(2000, time.December, 31)))
}

func TestGenerate_RoundTrip(t *testing.T) {
	birthdates := []time.Time{
		date(1901, time.February, 28),
		date(1990, time.May, 14),
		date(2000, time.February, 29),
		date(2024, time.December, 31),
	}

	for _, birthdate := range birthdates {
		for _, genderName := range gender.Names() {
			// генерация случайна, поэтому проверяем на нескольких прогонах
			for range 50 {
				number, err := Generate(birthdate, genderName)
				require.NoError(t, err)

				assert.Len(t, number, Length)
				assert.Equal(t, DatePrefix(birthdate), number[:6])
				assert.Equal(t, byte('1'), number[10])
				assert.NoError(t, CrossValidate(number, birthdate, genderName))
			}
		}
	}
}

func TestGenerate_GenderParity(t *testing.T) {
	for range 100 {
		man, err := Generate(date(1985, time.March, 3), gender.Man)
		require.NoError(t, err)
		assert.Equal(t, 0, int(man[9]-'0')%2, man)

		woman, err := Generate(date(1985, time.March, 3), gender.Woman)
		require.NoError(t, err)
		assert.Equal(t, 1, int(woman[9]-'0')%2, woman)
	}
}

func TestGenerate_InvalidGender(t *testing.T) {
	for _, genderName := range []string{"man", "Other", ""} {
		number, err := Generate(date(1990, time.May, 14), genderName)

		assert.Empty(t, number)
		require.Error(t, err)
		assert.ErrorAs(t, err, &common.RequestValidationError{})
		assert.Equal(t, MsgInvalidGender, err.Error())
	}
}

func TestExtractGender(t *testing.T) {
	for digit := '0'; digit <= '9'; digit++ {
		number := "900514123" + string(digit) + "1"

		extracted, err := ExtractGender(number)
		require.NoError(t, err)

		if (digit-'0')%2 == 1 {
			assert.Equal(t, gender.Woman, extracted, number)
		} else {
			assert.Equal(t, gender.Man, extracted, number)
		}
	}
}

func TestExtractGender_Invalid(t *testing.T) {
	_, err := ExtractGender("12345")
	assert.EqualError(t, err, MsgInvalidNumber)

	_, err = ExtractGender("900514123X1")
	assert.EqualError(t, err, MsgInvalidNumber)
}

func TestCrossValidate(t *testing.T) {
	birthdate := date(1990, time.May, 14)

	tests := []struct {
		name    string
		number  string
		gender  string
		wantErr string
	}{
		{name: "man matches", number: "90051412341", gender: gender.Man},
		{name: "woman matches", number: "90051412351", gender: gender.Woman},
		{name: "date mismatch", number: "90051512341", gender: gender.Man, wantErr: MsgDateMismatch},
		{name: "gender mismatch", number: "90051412341", gender: gender.Woman, wantErr: MsgGenderMismatch},
		{name: "date checked before gender", number: "91051412341", gender: gender.Woman, wantErr: MsgDateMismatch},
		{name: "too short", number: "9005141234", gender: gender.Man, wantErr: MsgInvalidNumber},
		{name: "letter in serial", number: "900514A2341", gender: gender.Man, wantErr: MsgInvalidNumber},
		{name: "letter in trailing digit", number: "9005141234X", gender: gender.Man, wantErr: MsgInvalidNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CrossValidate(tt.number, birthdate, tt.gender)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorAs(t, err, &common.RequestValidationError{})
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}
