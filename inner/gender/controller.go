package gender

import (
	"context"

	"workers/inner/common"
	"workers/inner/web"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Controller struct {
	server *web.Server
	repo   Repo
	logger *common.Logger
}

type Repo interface {
	FindAll(ctx context.Context) ([]Entity, error)
}

func NewController(server *web.Server, repo Repo, logger *common.Logger) *Controller {
	return &Controller{
		server: server,
		repo:   repo,
		logger: logger,
	}
}

// полный маршрут получится "/api/v1/genders"
func (c *Controller) RegisterRoutes() {
	c.server.GroupApiV1.Get("/genders", c.FindAll)
}

// FindAll
// @Summary      Gender reference data
// @Tags         gender
// @Produce      json
// @Success      200 {array} Response
// @Failure      500 {object} common.ErrorBody
// @Router       /genders [get]
func (c *Controller) FindAll(ctx *fiber.Ctx) error {
	entities, err := c.repo.FindAll(ctx.UserContext())
	if err != nil {
		c.logger.ErrorCtx(ctx, "Failed to load genders", zap.Error(err))
		return common.ErrResponse(ctx, fiber.StatusInternalServerError, "Failed to load genders")
	}

	responses := make([]Response, len(entities))
	for i, entity := range entities {
		responses[i] = entity.toResponse()
	}
	return common.OkResponse(ctx, responses)
}
