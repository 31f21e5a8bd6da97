package info

import (
	"context"
	"time"

	"workers/inner/common"
	"workers/inner/web"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	StatusOK           = "OK"
	StatusError        = "ERROR"
	StatusNotConnected = "NOT_CONNECTED"

	pingTimeout = 2 * time.Second
)

// Pinger проверка соединения с базой (*sqlx.DB)
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Controller struct {
	server *web.Server
	cfg    common.Config
	db     Pinger
	logger *common.Logger
}

func NewController(server *web.Server, cfg common.Config, db Pinger, logger *common.Logger) *Controller {
	return &Controller{
		server: server,
		cfg:    cfg,
		db:     db,
		logger: logger,
	}
}

type InfoResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
} // @name InfoResponse

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
} // @name HealthResponse

func (c *Controller) RegisterRoutes() {
	// полный путь будет "/internal/info"
	c.server.GroupInternal.Get("/info", c.GetInfo)
	// полный путь будет "/internal/health"
	c.server.GroupInternal.Get("/health", c.GetHealth)
}

// GetInfo получение информации о приложении
func (c *Controller) GetInfo(ctx *fiber.Ctx) error {
	return common.OkResponse(ctx, InfoResponse{
		Name:    c.cfg.AppName,
		Version: c.cfg.AppVersion,
	})
}

// GetHealth проверка работоспособности приложения
func (c *Controller) GetHealth(ctx *fiber.Ctx) error {
	if c.db == nil {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{
			Status:   StatusError,
			Database: StatusNotConnected,
		})
	}

	pingCtx, cancel := context.WithTimeout(ctx.UserContext(), pingTimeout)
	defer cancel()
	if err := c.db.PingContext(pingCtx); err != nil {
		c.logger.ErrorCtx(ctx, "Database health check failed", zap.Error(err))
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{
			Status:   StatusError,
			Database: StatusError,
		})
	}

	return common.OkResponse(ctx, HealthResponse{
		Status:   StatusOK,
		Database: StatusOK,
	})
}
