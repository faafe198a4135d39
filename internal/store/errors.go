package store

import (
	"errors"
	"fmt"

	repo "officeHub/internal/repository"
	"officeHub/internal/validation"
)

type Resource string

const (
	ResourceUser    Resource = "Пользователь"
	ResourceProject Resource = "Проект"
	ResourceTask    Resource = "Задача"
	ResourceMessage Resource = "Сообщение"
)

const (
	CodeNotFound      = "NOT_FOUND"
	CodeValidation    = "VALIDATION_ERROR"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodePersistence   = "PERSISTENCE_ERROR"
)

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

// IsCode сообщает, является ли err бизнес-ошибкой с данным кодом.
func IsCode(err error, code string) bool {
	var busErr *BusinessError
	return errors.As(err, &busErr) && busErr.Code == code
}

func NewNotFound(resource Resource, id string) *BusinessError {
	return &BusinessError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %s не найден(а)", resource, id),
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
		Err: repo.ErrNotFound,
	}
}

func NewValidationError(field, reason string) *BusinessError {
	return &BusinessError{
		Code:    CodeValidation,
		Message: fmt.Sprintf("Неверное значение поля '%s': %s", field, reason),
		Details: map[string]any{
			"field":  field,
			"reason": reason,
		},
	}
}

func NewAlreadyExists(resource Resource, field, value string) *BusinessError {
	return &BusinessError{
		Code:    CodeAlreadyExists,
		Message: fmt.Sprintf("%s с %s '%s' уже существует", resource, field, value),
		Details: map[string]any{
			"resource": resource,
			"field":    field,
			"value":    value,
		},
		Err: repo.ErrAlreadyExists,
	}
}

func NewPersistenceError(resource Resource, err error) *BusinessError {
	return &BusinessError{
		Code:    CodePersistence,
		Message: fmt.Sprintf("%s: не удалось сохранить изменения", resource),
		Details: map[string]any{
			"resource": resource,
		},
		Err: err,
	}
}

// validate переводит ошибку проверки модели в VALIDATION_ERROR.
func validate(v any) error {
	err := validation.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErr *validation.FieldError
	if errors.As(err, &fieldErr) {
		return NewValidationError(fieldErr.Field, fieldErr.Reason)
	}
	return NewValidationError("", err.Error())
}

// mutationError переводит ошибку коллекции в бизнес-ошибку.
func mutationError(resource Resource, id string, err error) error {
	var busErr *BusinessError
	switch {
	case errors.As(err, &busErr):
		return busErr
	case errors.Is(err, repo.ErrNotFound):
		return NewNotFound(resource, id)
	case errors.Is(err, repo.ErrAlreadyExists):
		return NewAlreadyExists(resource, "id", id)
	default:
		return NewPersistenceError(resource, err)
	}
}
