package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"workers/inner/common"
	"workers/inner/web"
	"workers/inner/worker"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const TokenTTL = time.Hour

// одинаковый ответ для неизвестного email и неверного пароля
var ErrInvalidCredentials = errors.New("invalid email or password")

type WorkerFinder interface {
	FindByEmail(ctx context.Context, email string) (worker.Entity, error)
}

type Validator interface {
	Validate(request any) error
}

type Service struct {
	finder    WorkerFinder
	validator Validator
	secret    []byte
	logger    *common.Logger
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
} // @name LoginRequest

type LoginResponse struct {
	Token string `json:"token"`
} // @name LoginResponse

type MeResponse struct {
	Id    int64    `json:"id"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
} // @name MeResponse

func NewService(finder WorkerFinder, validator Validator, secret string, logger *common.Logger) *Service {
	return &Service{
		finder:    finder,
		validator: validator,
		secret:    []byte(secret),
		logger:    logger,
	}
}

// Login проверяет пароль работника и выдаёт подписанный токен
func (svc *Service) Login(ctx context.Context, request LoginRequest) (string, error) {
	if err := svc.validator.Validate(request); err != nil {
		svc.logger.Warn("Login request validation failed", zap.Error(err))
		return "", common.RequestValidationError{Message: err.Error()}
	}

	entity, err := svc.finder.FindByEmail(ctx, request.Email)
	if err != nil {
		if errors.As(err, &common.NotFoundError{}) {
			svc.logger.Warn("Login for unknown email", zap.String("email", request.Email))
			return "", ErrInvalidCredentials
		}
		svc.logger.Error("Failed to load worker for login",
			zap.String("email", request.Email),
			zap.Error(err))
		return "", fmt.Errorf("error finding worker for login: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(entity.Password), []byte(request.Password)); err != nil {
		svc.logger.Warn("Login with wrong password", zap.Int64("id", entity.Id))
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := web.WorkerClaims{
		Email: entity.Email,
		Roles: entity.Roles(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(entity.Id, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}

	svc.logger.Info("Worker logged in", zap.Int64("id", entity.Id))
	return token, nil
}
