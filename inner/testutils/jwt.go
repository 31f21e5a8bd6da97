package testutils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TestJwtSecret общий секрет для тестовых токенов
const TestJwtSecret = "test-secret-0123456789"

// GenerateToken выпускает валидный HS256 токен с указанными ролями
func GenerateToken(secret string, email string, roles []string) string {
	claims := jwt.MapClaims{
		"sub":   "1",
		"email": email,
		"roles": roles,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(1 * time.Hour).Unix(),
	}
	return sign(secret, claims)
}

func GenerateExpiredToken(secret string) string {
	claims := jwt.MapClaims{
		"sub":   "1",
		"email": "expired@example.com",
		"roles": []string{"ROLE_USER"},
		"iat":   time.Now().Add(-2 * time.Hour).Unix(), // создан 2 часа назад
		"exp":   time.Now().Add(-1 * time.Hour).Unix(), // истёк 1 час назад
	}
	return sign(secret, claims)
}

func sign(secret string, claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, _ := token.SignedString([]byte(secret))
	return signedToken
}
