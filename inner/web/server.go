package web

import (
	"bytes"
	"time"

	"workers/inner/common"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// структура веб-сервера
type Server struct {
	App *fiber.App
	// группа публичного API
	GroupApi fiber.Router
	// группа публичного API первой версии
	GroupApiV1 fiber.Router
	// группа непубличного API
	GroupInternal fiber.Router
	// группа защищённого API (требует JWT)
	GroupApiV1Protected fiber.Router
}

// функция-конструктор
func NewServer(cfg common.Config, logger *common.Logger) *Server {

	// создаём новый веб-сервер
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName + " " + cfg.AppVersion,
	})

	// Middleware для восстановления от паники
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	// Middleware для добавления уникального ID к каждому запросу
	app.Use(requestid.New())

	app.Use(CustomMiddleware(logger))

	groupInternal := app.Group("/internal")

	// Middleware для внутренних маршрутов
	groupInternal.Use(func(c *fiber.Ctx) error {
		c.Set("X-Internal-API", "true")
		return c.Next()
	})

	// создаём группу "/api"
	groupApi := app.Group("/api")

	// создаём подгруппу "api/v1"
	groupApiV1 := groupApi.Group("/v1")

	// Middleware для API v1
	groupApiV1.Use(func(c *fiber.Ctx) error {
		// Добавляем заголовок версии API
		c.Set("X-API-Version", "v1")
		return c.Next()
	})

	// Создаём защищённую группу "/api/v1/me" с JWT middleware
	groupApiV1Protected := groupApiV1.Group("/me")
	groupApiV1Protected.Use(AuthMiddleware(cfg.JwtSecret, logger))

	return &Server{
		App:                 app,
		GroupApi:            groupApi,
		GroupApiV1:          groupApiV1,
		GroupInternal:       groupInternal,
		GroupApiV1Protected: groupApiV1Protected,
	}
}

// CustomMiddleware логирует начало и завершение каждого запроса
func CustomMiddleware(logger *common.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		}
		// для запросов с телом пишем только безопасные поля
		if c.Method() == fiber.MethodPost || c.Method() == fiber.MethodPut {
			if body := c.Body(); len(bytes.TrimSpace(body)) > 0 {
				fields = append(fields, common.ParseRequestBody(body)...)
			}
		}
		logger.InfoCtx(c, "Request started", fields...)

		// Выполняется следующий handler
		err := c.Next()

		logger.InfoCtx(c, "Request completed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
		)

		return err
	}
}
