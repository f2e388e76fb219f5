package errors

import (
	"fmt"
	"net/http"
)

const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeDatabaseUnavailable = "DATABASE_UNAVAILABLE"
	CodeInternal            = "INTERNAL_SERVER_ERROR"
	CodeHTTP                = "HTTP_ERROR"
)

var (
	ErrEmailRequired = Validation("Email обязателен")

	ErrPerevalNotFound = NotFound("Перевал не найден")

	ErrImageNotFound = NotFound("Изображение не найдено")

	ErrEditOnlyNew = Validation("Редактирование возможно только для статуса 'new'")

	ErrPerevalExists = Validation("Перевал с такими данными уже существует")

	ErrImageCountMismatch = Validation("Количество заголовков изображений не совпадает с количеством файлов")

	ErrInvalidJSON = Validation("Некорректный JSON в поле data")

	ErrDatabaseUnavailable = New(
		CodeDatabaseUnavailable,
		"Ошибка подключения к базе данных",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		CodeInternal,
		"Внутренняя ошибка сервера",
		http.StatusInternalServerError,
	)
)

// Validation - ошибка входных данных (400)
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

// Validationf - ошибка входных данных с форматированием
func Validationf(format string, args ...interface{}) *AppError {
	return Validation(fmt.Sprintf(format, args...))
}

// NotFound - запрошенная запись не существует (404)
func NotFound(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

// Internal - непредвиденная ошибка (500) с диагностическим текстом
func Internal(err error) *AppError {
	return New(CodeInternal, err.Error(), http.StatusInternalServerError).Wrap(err)
}

// HTTP - ошибка транспортного уровня (неизвестный маршрут, слишком большое тело)
func HTTP(statusCode int, message string) *AppError {
	return New(CodeHTTP, message, statusCode)
}

// InvalidFields - ошибка валидации структуры с ошибками по полям
func InvalidFields(fields map[string][]string) *AppError {
	return Validation("Ошибка валидации данных").WithDetails(map[string]interface{}{
		"fields": fields,
	})
}
