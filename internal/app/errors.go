package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/corplex213/CEO-management-Web/internal/store"
)

type DomainError struct {
	Status  int
	Code    string
	Message string
	Details any
	cause   error
}

func (e *DomainError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func domainError(status int, code, message string, details any) *DomainError {
	return &DomainError{
		Status:  status,
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Input and uniqueness failures are both 400, as existing clients expect; the
// code tells them apart.
func validationError(message string) *DomainError {
	return domainError(http.StatusBadRequest, "VALIDATION_ERROR", message, nil)
}

func notFoundError(message string) *DomainError {
	return domainError(http.StatusNotFound, "NOT_FOUND", message, nil)
}

func conflictError(message string) *DomainError {
	return domainError(http.StatusBadRequest, "CONFLICT", message, nil)
}

// storageError hides the cause from clients but keeps it for logs and errors.Is.
func storageError(message string, cause error) *DomainError {
	err := domainError(http.StatusInternalServerError, "STORAGE_ERROR", message, nil)
	err.cause = cause
	return err
}

// fromStore translates a store error. notFound is the client message used when
// the store reports store.ErrNotFound.
func fromStore(err error, notFound, failure string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return notFoundError(notFound)
	case errors.Is(err, store.ErrAdminExists):
		return conflictError("Admin registration limit reached. Only 1 admin is allowed.")
	case errors.Is(err, store.ErrDuplicateEmail):
		return conflictError("User already exists")
	case errors.Is(err, store.ErrConflict):
		return conflictError("Conflicting record")
	default:
		return storageError(failure, err)
	}
}
