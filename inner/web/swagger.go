package web

import (
	_ "workers/docs"

	"github.com/gofiber/swagger"
)

// возвращает конфигурацию Swagger UI
func GetSwaggerConfig() swagger.Config {
	return swagger.Config{
		// URL для получения OpenAPI спецификации
		URL:          "/swagger/doc.json",
		DeepLinking:  true,
		DocExpansion: "list",
		// Настройки раскрытия моделей по умолчанию
		DefaultModelsExpandDepth: 1,
		DefaultModelExpandDepth:  1,
		DefaultModelRendering:    "model",
		Title:                    "Workers API Documentation",
	}
}

// InitSwagger подключает Swagger UI по адресу "/swagger/*"
func (s *Server) InitSwagger() {
	s.App.Get("/swagger/*", swagger.New(GetSwaggerConfig()))
}
