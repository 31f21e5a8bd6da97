package worker

import (
	"context"
	"errors"
	"strconv"

	"workers/inner/common"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	QuerySpecKey = "query_spec"
	WorkerKey    = "worker"
)

// FilterMiddleware разбирает filters, sorting, page и limit и кладёт QuerySpec в контекст запроса
func FilterMiddleware(logger *common.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		spec, err := ParseQuery(
			c.Query("filters"),
			c.Query("sorting"),
			c.QueryInt("page", DefaultPage),
			c.QueryInt("limit", DefaultLimit),
		)
		if err != nil {
			logger.WarnCtx(c, "Rejected list query parameters", zap.Error(err))
			return common.ErrResponse(c, fiber.StatusBadRequest, err.Error())
		}

		logger.DebugCtx(c, "List query parsed",
			zap.Int("conditions", len(spec.Conditions)),
			zap.Int("orders", len(spec.Orders)),
			zap.Uint64("limit", spec.Limit),
			zap.Uint64("offset", spec.Offset))

		c.Locals(QuerySpecKey, spec)
		return c.Next()
	}
}

type Finder interface {
	FindById(ctx context.Context, id int64) (Entity, error)
}

// ResolveMiddleware загружает работника по :id до вызова обработчика.
// Некорректный или отсутствующий id даёт пустой ответ 404
func ResolveMiddleware(finder Finder, logger *common.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.SendStatus(fiber.StatusNotFound)
		}

		entity, err := finder.FindById(c.UserContext(), id)
		if err != nil {
			if errors.As(err, &common.NotFoundError{}) {
				logger.DebugCtx(c, "Worker not found", zap.Int64("id", id))
				return c.SendStatus(fiber.StatusNotFound)
			}
			logger.ErrorCtx(c, "Failed to resolve worker", zap.Int64("id", id), zap.Error(err))
			return common.ErrResponse(c, fiber.StatusInternalServerError, "Failed to load worker")
		}

		c.Locals(WorkerKey, entity)
		return c.Next()
	}
}

func querySpecFrom(c *fiber.Ctx) QuerySpec {
	if spec, ok := c.Locals(QuerySpecKey).(QuerySpec); ok {
		return spec
	}
	return QuerySpec{Limit: DefaultLimit}
}

func workerFrom(c *fiber.Ctx) (Entity, bool) {
	entity, ok := c.Locals(WorkerKey).(Entity)
	return entity, ok
}
