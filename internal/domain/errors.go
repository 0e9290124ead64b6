package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrUnknown        = errors.New("unknown error")

	// ErrTransient временная ошибка хранилища (конфликт сериализации, deadlock, исчерпание соединений).
	// Такую операцию можно повторить.
	ErrTransient = errors.New("transient backend error")
	ErrSaleBusy  = errors.New("sale is being modified by another request")
)

// ValidationError входные данные нарушают предусловие операции. Повторять запрос бессмысленно.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PreconditionError сущность находится в состоянии, в котором операция невозможна
// (например, у клиента нет продукта).
type PreconditionError struct {
	Reason string
}

func NewPreconditionError(reason string) error {
	return &PreconditionError{Reason: reason}
}

func (e *PreconditionError) Error() string {
	return e.Reason
}
