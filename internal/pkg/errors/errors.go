package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется, когда запрос не прошел проверку админ-ключа.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда действие недоступно в текущем состоянии пула.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния (например, повторное
	// раскрытие ответа или завершение уже завершенного сезона).
	ErrConflict = errors.New("resource state conflict")
)
