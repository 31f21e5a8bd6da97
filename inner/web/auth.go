package web

import (
	"slices"

	"workers/inner/common"

	jwtMiddleware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const JwtKey = "jwt"

// WorkerClaims содержимое токена, выданного работнику при входе
type WorkerClaims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// middleware для JWT аутентификации (HS256, общий секрет из конфига)
func AuthMiddleware(secret string, logger *common.Logger) fiber.Handler {
	config := jwtMiddleware.Config{
		ContextKey: JwtKey,
		SigningKey: jwtMiddleware.SigningKey{
			JWTAlg: jwtMiddleware.HS256,
			Key:    []byte(secret),
		},
		ErrorHandler: createJwtErrorHandler(logger),
		Claims:       &WorkerClaims{},
	}
	return jwtMiddleware.New(config)
}

// middleware для проверки любой из указанных ролей
func RequireAnyRole(requiredRoles []string, logger *common.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := GetClaims(c)
		if !ok {
			return common.ErrResponse(c, fiber.StatusUnauthorized, "Missing or malformed JWT")
		}

		hasRole := slices.ContainsFunc(requiredRoles, func(role string) bool {
			return slices.Contains(claims.Roles, role)
		})
		if !hasRole {
			logger.WarnCtx(c, "Access denied: insufficient role",
				zap.Strings("required_roles", requiredRoles),
				zap.Strings("user_roles", claims.Roles),
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
				zap.String("ip", c.IP()))

			return common.ErrResponse(c, fiber.StatusForbidden, "Insufficient permissions")
		}

		logger.DebugCtx(c, "Role check passed",
			zap.Strings("required_roles", requiredRoles),
			zap.Strings("user_roles", claims.Roles),
			zap.String("path", c.Path()))

		return c.Next()
	}
}

// GetClaims извлекает claims из проверенного токена
func GetClaims(c *fiber.Ctx) (*WorkerClaims, bool) {
	token, ok := c.Locals(JwtKey).(*jwt.Token)
	if !ok {
		return nil, false
	}
	claims, ok := token.Claims.(*WorkerClaims)
	return claims, ok
}

func createJwtErrorHandler(logger *common.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		logger.ErrorCtx(ctx, "authentication failed",
			zap.Error(err),
			zap.String("path", ctx.Path()),
			zap.String("method", ctx.Method()),
			zap.String("ip", ctx.IP()))

		// Если токен не может быть прочитан, то возвращаем 401
		return common.ErrResponse(
			ctx,
			fiber.StatusUnauthorized,
			err.Error(),
		)
	}
}
