package utils

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/pereval-service/internal/pkg/errors"
	"github.com/pereval-service/internal/usecase/dto"
)

// StatusOf возвращает HTTP-статус ошибки; неизвестные ошибки - 500
func StatusOf(err error) int {
	if appErr, ok := errors.As(err); ok && appErr.StatusCode != 0 {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// MessageOf возвращает тело поля message: ошибки полей при валидации
// структуры, иначе текст ошибки
func MessageOf(err error) interface{} {
	appErr, ok := errors.As(err)
	if !ok {
		return errors.ErrInternalServer.Message
	}
	if fields := appErr.FieldErrors(); len(fields) > 0 {
		return fields
	}
	return appErr.Message
}

// SendSubmitted - успешный ответ POST
func SendSubmitted(c *fiber.Ctx, id int64) error {
	return c.Status(http.StatusOK).JSON(dto.SubmitResponse{
		Status:  http.StatusOK,
		Message: "",
		ID:      &id,
	})
}

// SendSubmitError - ответ POST с ошибкой, id всегда null
func SendSubmitError(c *fiber.Ctx, err error) error {
	status := StatusOf(err)
	return c.Status(status).JSON(dto.SubmitResponse{
		Status:  status,
		Message: MessageOf(err),
	})
}

// SendState - успешный ответ PATCH
func SendState(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(dto.StateResponse{State: 1, Message: ""})
}

// SendStateError - ответ PATCH с ошибкой
func SendStateError(c *fiber.Ctx, err error) error {
	return c.Status(StatusOf(err)).JSON(dto.StateResponse{
		State:   0,
		Message: MessageOf(err),
	})
}

// SendSuccess отдает данные как есть
func SendSuccess(c *fiber.Ctx, data interface{}) error {
	return c.Status(http.StatusOK).JSON(data)
}

// SendError - ответ GET с ошибкой: {status, message}
func SendError(c *fiber.Ctx, err error) error {
	status := StatusOf(err)
	return c.Status(status).JSON(dto.StatusMessageResponse{
		Status:  status,
		Message: MessageOf(err),
	})
}
