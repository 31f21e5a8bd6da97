package common

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Общая конфигурация всего приложения
type Config struct {
	DbDriverName   string `validate:"required"`
	Dsn            string `validate:"required"`
	DbAutomigrate  bool
	AppName        string `validate:"required"`
	AppVersion     string `validate:"required"`
	LogLevel       string
	LogDevelopMode bool
	HttpAddr       string `validate:"required"`
	JwtSecret      string `validate:"required,min=16"`
}

// Получение конфигурации из .env файла или переменных окружения.
// Паникует, если обязательные параметры не заданы
func GetConfig(envFile string) Config {
	// отсутствие файла не ошибка: конфиг может прийти из переменных окружения
	_ = godotenv.Load(envFile)
	var cfg = Config{
		DbDriverName:   os.Getenv("DB_DRIVER_NAME"),
		Dsn:            os.Getenv("DB_DSN"),
		DbAutomigrate:  getBool("DB_AUTOMIGRATE", true),
		AppName:        os.Getenv("APP_NAME"),
		AppVersion:     os.Getenv("APP_VERSION"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		LogDevelopMode: getBool("LOG_DEVELOP_MODE", false),
		HttpAddr:       getString("HTTP_ADDR", ":8080"),
		JwtSecret:      os.Getenv("JWT_SECRET"),
	}
	if err := validator.New().Struct(cfg); err != nil {
		panic(fmt.Sprintf("config validation error: %v", err))
	}
	return cfg
}

func getString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
