package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/taskapi/internal/domain"
	"github.com/phrazzld/taskapi/internal/store"
)

// ServiceError wraps an unexpected failure with the service and operation
// it came from. Expected conditions (validation, not found, authentication)
// are returned unwrapped so the API layer can match them with errors.Is/As;
// everything else reaches it as a *ServiceError around the original cause.
type ServiceError struct {
	Service   string
	Operation string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Operation, e.Err)
	}
	return fmt.Sprintf("%s service %s operation failed", e.Service, e.Operation)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, operation string, err error) *ServiceError {
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Err:       err,
	}
}

// wrapUnexpected leaves expected conditions untouched and wraps anything
// else in a *ServiceError.
func wrapUnexpected(service, operation string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrAuthentication),
		store.IsNotFoundError(err):
		return err
	default:
		return NewServiceError(service, operation, err)
	}
}
