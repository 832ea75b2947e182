package domain

import (
	"errors"
	"sort"
	"strings"
)

// Виды ошибок - по ним delivery слой выбирает HTTP статус (errors.Is)
var (
	ErrValidation         = errors.New("validation error")
	ErrUniqueViolation    = errors.New("uniqueness violation")
	ErrNotFound           = errors.New("not found")
	ErrIntegrityViolation = errors.New("integrity violation")
)

// kindError - конкретная ошибка, относящаяся к одному из видов выше
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

func newError(kind error, msg string) error {
	return &kindError{msg: msg, kind: kind}
}

// Manufacturer errors
var (
	ErrManufacturerNotFound      = newError(ErrNotFound, "manufacturer not found")
	ErrManufacturerAlreadyExists = newError(ErrUniqueViolation, "manufacturer with this name already exists")
	ErrManufacturerInUse         = newError(ErrIntegrityViolation, "manufacturer is referenced by cars")
)

// Driver errors
var (
	ErrDriverNotFound     = newError(ErrNotFound, "driver not found")
	ErrUsernameTaken      = newError(ErrUniqueViolation, "driver with this username already exists")
	ErrLicenseNumberTaken = newError(ErrUniqueViolation, "driver with this license number already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("driver account is inactive")
)

// Car errors
var (
	ErrCarNotFound       = newError(ErrNotFound, "car not found")
	ErrCarDriverNotFound = newError(ErrNotFound, "driver is not assigned to this car")
)

// Pagination errors
var (
	ErrPageNotFound = newError(ErrNotFound, "invalid page")
)

// Authorization errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

// UniqueViolation оборачивает нарушение уникальности, для которого нет
// более точной ошибки (например, неизвестный constraint)
func UniqueViolation(detail string) error {
	return newError(ErrUniqueViolation, "uniqueness violation: "+detail)
}

// IntegrityViolation оборачивает нарушение ссылочной целостности
func IntegrityViolation(detail string) error {
	return newError(ErrIntegrityViolation, "integrity violation: "+detail)
}

// ValidationError содержит ошибки по полям формы
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError создает ошибку валидации для одного поля
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
