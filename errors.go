package main

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind is the category reported to clients.
type ErrorKind string

const (
	KindNotFound     ErrorKind = "not_found"
	KindForbidden    ErrorKind = "forbidden"
	KindDuplicate    ErrorKind = "duplicate_request"
	KindValidation   ErrorKind = "validation_error"
	KindConflict     ErrorKind = "conflict"
	KindUnauthorized ErrorKind = "unauthorized"
	KindStorage      ErrorKind = "storage_failure"
)

// Sentinel errors returned by Store implementations.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	ErrConflict  = errors.New("record changed concurrently")
)

// AppError is the only error type that crosses the HTTP boundary.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindDuplicate, KindConflict:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func notFound(msg string) error { return &AppError{Kind: KindNotFound, Message: msg} }

func forbidden(msg string) error { return &AppError{Kind: KindForbidden, Message: msg} }

func duplicate(msg string) error { return &AppError{Kind: KindDuplicate, Message: msg} }

func unauthorized(msg string) error { return &AppError{Kind: KindUnauthorized, Message: msg} }

func invalid(format string, args ...interface{}) error {
	return &AppError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func storageFailure(msg string, err error) error {
	return &AppError{Kind: KindStorage, Message: msg, Err: err}
}

// fromStore translates a Store error into the taxonomy. what names the
// entity for NotFound / Duplicate messages.
func fromStore(err error, what string) error {
	var appErr *AppError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, ErrNotFound):
		return notFound(what + " not found")
	case errors.Is(err, ErrDuplicate):
		return duplicate(what + " already exists")
	case errors.Is(err, ErrConflict):
		return &AppError{Kind: KindConflict, Message: what + " was modified by another request", Err: err}
	default:
		return storageFailure("could not access "+what, err)
	}
}

// KindOf reports the category of err; unknown errors are storage failures.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorage
}
