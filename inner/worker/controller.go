package worker

import (
	"context"

	"workers/inner/common"
	"workers/inner/web"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	MsgCreated      = "New worker added successfully"
	MsgDeleted      = "Worker deleted successfully"
	MsgDeleteFailed = "Failed to delete worker"
	createErrPrefix = "Invalid data or database error: "
	updateErrPrefix = "Invalid data: "
)

type Controller struct {
	server        *web.Server
	workerService Svc
	logger        *common.Logger
}

// интерфейс сервиса worker.Service
type Svc interface {
	FindById(ctx context.Context, id int64) (Entity, error)
	FindAll(ctx context.Context, spec QuerySpec) ([]ListResponse, error)
	AddWorker(ctx context.Context, payload Payload, opts WriteOptions) (int64, error)
	UpdateWorker(ctx context.Context, existing Entity, payload Payload, opts WriteOptions) (UpdateResponse, error)
	DeleteById(ctx context.Context, id int64) error
}

func NewController(server *web.Server, workerService Svc, logger *common.Logger) *Controller {
	return &Controller{
		server:        server,
		workerService: workerService,
		logger:        logger,
	}
}

// функция для регистрации маршрутов
func (c *Controller) RegisterRoutes() {
	// полный маршрут получится "/api/v1/workers"
	api := c.server.GroupApiV1.Group("/workers")
	resolve := ResolveMiddleware(c.workerService, c.logger)

	api.Get("/", FilterMiddleware(c.logger), c.FindAll)
	api.Post("/new", c.CreateWorker)
	api.Get("/:id", resolve, c.GetWorker)
	api.Put("/:id", resolve, c.UpdateWorker)
	api.Delete("/:id", resolve, c.DeleteWorker)
}

// FindAll
// @Summary      List workers
// @Description  filters and sorting are JSON objects, e.g. filters={"name":"Anna"}&sorting={"id":"desc"}
// @Tags         worker
// @Produce      json
// @Param        filters query string false "equality filters"
// @Param        sorting query string false "field to asc/desc"
// @Param        page    query int    false "page number" default(1)
// @Param        limit   query int    false "page size" default(10)
// @Success      200 {array} ListResponse
// @Failure      400 {object} common.ErrorBody
// @Router       /workers/ [get]
func (c *Controller) FindAll(ctx *fiber.Ctx) error {
	workers, err := c.workerService.FindAll(ctx.UserContext(), querySpecFrom(ctx))
	if err != nil {
		c.logger.ErrorCtx(ctx, "Failed to list workers", zap.Error(err))
		return common.ErrResponse(ctx, fiber.StatusInternalServerError, "Failed to list workers")
	}
	return common.OkResponse(ctx, workers)
}

// CreateWorker
// @Summary      Create worker
// @Tags         worker
// @Accept       json
// @Produce      json
// @Param        request body Payload true "worker data"
// @Success      201 {object} common.MessageBody
// @Failure      400 {object} common.ErrorBody
// @Router       /workers/new [post]
func (c *Controller) CreateWorker(ctx *fiber.Ctx) error {
	// анмаршалим JSON body запроса в структуру Payload
	var payload Payload
	if err := ctx.BodyParser(&payload); err != nil {
		return common.ErrResponse(ctx, fiber.StatusBadRequest, createErrPrefix+err.Error())
	}

	// ошибки валидации, конфликта и базы данных отдаются одинаково: 400 с текстом ошибки
	id, err := c.workerService.AddWorker(ctx.UserContext(), payload, WriteOptions{})
	if err != nil {
		c.logger.WarnCtx(ctx, "Worker creation rejected", zap.Error(err))
		return common.ErrResponse(ctx, fiber.StatusBadRequest, createErrPrefix+err.Error())
	}

	c.logger.InfoCtx(ctx, "Worker created", zap.Int64("id", id))
	return common.MessageResponse(ctx, fiber.StatusCreated, MsgCreated)
}

// GetWorker
// @Summary      Show worker
// @Tags         worker
// @Produce      json
// @Param        id path int true "worker id"
// @Success      200 {object} ListResponse
// @Failure      404
// @Router       /workers/{id} [get]
func (c *Controller) GetWorker(ctx *fiber.Ctx) error {
	entity, ok := workerFrom(ctx)
	if !ok {
		return ctx.SendStatus(fiber.StatusNotFound)
	}
	return common.OkResponse(ctx, entity.toListResponse())
}

// UpdateWorker
// @Summary      Update worker
// @Tags         worker
// @Accept       json
// @Produce      json
// @Param        id      path int     true "worker id"
// @Param        request body Payload true "worker data"
// @Success      200 {object} UpdateResponse
// @Failure      400 {object} common.ErrorBody
// @Failure      404
// @Router       /workers/{id} [put]
func (c *Controller) UpdateWorker(ctx *fiber.Ctx) error {
	entity, ok := workerFrom(ctx)
	if !ok {
		return ctx.SendStatus(fiber.StatusNotFound)
	}

	var payload Payload
	if err := ctx.BodyParser(&payload); err != nil {
		return common.ErrResponse(ctx, fiber.StatusBadRequest, updateErrPrefix+err.Error())
	}

	updated, err := c.workerService.UpdateWorker(ctx.UserContext(), entity, payload, WriteOptions{})
	if err != nil {
		c.logger.WarnCtx(ctx, "Worker update rejected", zap.Int64("id", entity.Id), zap.Error(err))
		return common.ErrResponse(ctx, fiber.StatusBadRequest, updateErrPrefix+err.Error())
	}
	return common.OkResponse(ctx, updated)
}

// DeleteWorker
// @Summary      Delete worker
// @Tags         worker
// @Param        id path int true "worker id"
// @Success      204
// @Failure      404
// @Failure      500 {object} common.ErrorBody
// @Router       /workers/{id} [delete]
func (c *Controller) DeleteWorker(ctx *fiber.Ctx) error {
	entity, ok := workerFrom(ctx)
	if !ok {
		return ctx.SendStatus(fiber.StatusNotFound)
	}

	if err := c.workerService.DeleteById(ctx.UserContext(), entity.Id); err != nil {
		// подробности ошибки наружу не отдаём
		c.logger.ErrorCtx(ctx, "Worker deletion failed", zap.Int64("id", entity.Id), zap.Error(err))
		return common.ErrResponse(ctx, fiber.StatusInternalServerError, MsgDeleteFailed)
	}
	return common.MessageResponse(ctx, fiber.StatusNoContent, MsgDeleted)
}
