// Package apierror provides standardized error response structures for the API
// and the typed domain errors returned by the service layer. All errors
// reaching clients go through this package so internal details (stack traces,
// DB errors) never leak.
package apierror

import "fmt"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// FieldErrors wraps multiple field-level validation errors from the binder.
type FieldErrors struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewFieldErrors(fields map[string]string) *FieldErrors {
	return &FieldErrors{Detail: "Erro de validação", Fields: fields}
}

// ── Domain errors ────────────────────────────────────────────────────────────
// Services return these; handlers map them to HTTP status codes with
// errors.As. Every mutating operation is all-or-nothing, so any of these
// implies no partial write happened.

// ValidationError reports bad input shape or range, naming the offending field.
type ValidationError struct {
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Detail
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Detail)
}

func Validation(field, detail string) *ValidationError {
	return &ValidationError{Field: field, Detail: detail}
}

// ConflictError reports a uniqueness or referential constraint violation.
type ConflictError struct {
	Detail string
}

func (e *ConflictError) Error() string { return e.Detail }

func Conflict(detail string) *ConflictError { return &ConflictError{Detail: detail} }

// NotFoundError covers both "does not exist" and "exists in another tenant" —
// the two are indistinguishable on purpose, so cross-tenant probing learns
// nothing.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " não encontrado" }

func NotFound(entity string) *NotFoundError { return &NotFoundError{Entity: entity} }

// InsufficientStockError carries the quantity still available so the POS can
// tell the operator how much can actually be sold.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("estoque insuficiente (%d disponível)", e.Available)
}

// AuthenticationError never distinguishes "unknown user" from "wrong password".
type AuthenticationError struct{}

func (e *AuthenticationError) Error() string { return "credenciais inválidas" }
