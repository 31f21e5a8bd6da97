package common

import (
	"github.com/gofiber/fiber/v2"
)

type ErrorBody struct {
	Error string `json:"error"`
} // @name ErrorBody

type MessageBody struct {
	Message string `json:"message"`
} // @name MessageBody

// ErrResponse формирует ответ с ошибкой вида {"error": "..."}
func ErrResponse(
	c *fiber.Ctx,
	code int,
	message string,
) error {
	return c.Status(code).JSON(ErrorBody{Error: message})
}

// MessageResponse формирует ответ вида {"message": "..."}
func MessageResponse(
	c *fiber.Ctx,
	code int,
	message string,
) error {
	return c.Status(code).JSON(MessageBody{Message: message})
}

// OkResponse отдаёт данные как есть со статусом 200
func OkResponse[T any](
	c *fiber.Ctx,
	data T,
) error {
	return c.Status(fiber.StatusOK).JSON(data)
}
