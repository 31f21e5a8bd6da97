package auth

import (
	"context"
	"errors"
	"strconv"

	"workers/inner/common"
	"workers/inner/web"
	"workers/inner/worker"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Controller struct {
	server  *web.Server
	authSvc Svc
	logger  *common.Logger
}

type Svc interface {
	Login(ctx context.Context, request LoginRequest) (string, error)
}

func NewController(server *web.Server, authSvc Svc, logger *common.Logger) *Controller {
	return &Controller{
		server:  server,
		authSvc: authSvc,
		logger:  logger,
	}
}

func (c *Controller) RegisterRoutes() {
	// полный маршрут получится "/api/v1/auth/login"
	c.server.GroupApiV1.Post("/auth/login", c.Login)

	// "/api/v1/me", токен проверяется middleware группы
	c.server.GroupApiV1Protected.Get("/",
		web.RequireAnyRole([]string{worker.RoleUser, worker.RoleAdmin}, c.logger),
		c.Me)
}

// Login
// @Summary      Log in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "credentials"
// @Success      200 {object} LoginResponse
// @Failure      400 {object} common.ErrorBody
// @Failure      401 {object} common.ErrorBody
// @Router       /auth/login [post]
func (c *Controller) Login(ctx *fiber.Ctx) error {
	var request LoginRequest
	if err := ctx.BodyParser(&request); err != nil {
		return common.ErrResponse(ctx, fiber.StatusBadRequest, err.Error())
	}

	token, err := c.authSvc.Login(ctx.UserContext(), request)
	switch {
	case err == nil:
		return common.OkResponse(ctx, LoginResponse{Token: token})
	case errors.As(err, &common.RequestValidationError{}):
		return common.ErrResponse(ctx, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return common.ErrResponse(ctx, fiber.StatusUnauthorized, err.Error())
	default:
		c.logger.ErrorCtx(ctx, "Login failed", zap.Error(err))
		return common.ErrResponse(ctx, fiber.StatusInternalServerError, "Login failed")
	}
}

// Me
// @Summary      Current worker from the token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} MeResponse
// @Failure      401 {object} common.ErrorBody
// @Router       /me [get]
func (c *Controller) Me(ctx *fiber.Ctx) error {
	claims, ok := web.GetClaims(ctx)
	if !ok {
		return common.ErrResponse(ctx, fiber.StatusUnauthorized, "Missing or malformed JWT")
	}
	id, _ := strconv.ParseInt(claims.Subject, 10, 64)
	return common.OkResponse(ctx, MeResponse{
		Id:    id,
		Email: claims.Email,
		Roles: claims.Roles,
	})
}
