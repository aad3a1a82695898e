package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/taskapi/internal/api/shared"
	"github.com/phrazzld/taskapi/internal/domain"
	"github.com/phrazzld/taskapi/internal/redact"
	"github.com/phrazzld/taskapi/internal/service/auth"
	"github.com/phrazzld/taskapi/internal/store"
)

// MapErrorToStatusCode maps service and store errors to HTTP status codes.
// Anything it does not recognize is an internal error.
func MapErrorToStatusCode(err error) int {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr), errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity

	case errors.Is(err, domain.ErrAuthentication),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return http.StatusUnauthorized

	case store.IsNotFoundError(err):
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}

// validationFields returns the field messages carried by err, or nil.
func validationFields(err error) map[string][]string {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Fields
	}
	return nil
}

// isDatabaseError reports whether err came from a store.
func isDatabaseError(err error) bool {
	var storeErr *store.StoreError
	return errors.As(err, &storeErr)
}

// errorCause returns the redacted text of the innermost useful cause of err.
// For a store failure that is the driver error rather than the whole chain.
func errorCause(err error) string {
	var storeErr *store.StoreError
	if errors.As(err, &storeErr) && storeErr.Err != nil {
		return redact.Error(storeErr.Err)
	}
	return redact.Error(err)
}

// unexpectedMessage builds the msg of a 500 status envelope.
func unexpectedMessage(err error) string {
	if isDatabaseError(err) {
		return "Database error: " + errorCause(err)
	}
	return "Unexpected error: " + errorCause(err)
}

// respondStatusError writes err in the status envelope used by the auth and
// admin user write endpoints.
func respondStatusError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)

	switch status {
	case http.StatusUnprocessableEntity:
		shared.LogAPIError(r, status, "Validation error", err)
		shared.RespondWithJSON(w, r, status, StatusResponse{
			Status: 0,
			Msg:    "Validation error",
			Errors: validationFields(err),
		})
	case http.StatusUnauthorized:
		shared.LogAPIError(r, status, "Incorrect email, name or password", err, shared.WithElevatedLogLevel())
		shared.RespondWithJSON(w, r, status, StatusResponse{
			Status: 0,
			Msg:    "Incorrect email, name or password",
		})
	case http.StatusNotFound:
		shared.RespondWithJSON(w, r, status, StatusResponse{Status: 0, Msg: "User not found"})
	default:
		msg := unexpectedMessage(err)
		shared.LogAPIError(r, status, msg, err)
		shared.RespondWithJSON(w, r, status, StatusResponse{Status: 0, Msg: msg})
	}
}

// respondDataError writes err in the data envelope. failure names the
// operation in the 500 body, e.g. "Failed to retrieve tasks".
func respondDataError(w http.ResponseWriter, r *http.Request, err error, notFound, failure string) {
	status := MapErrorToStatusCode(err)

	switch status {
	case http.StatusUnprocessableEntity:
		shared.LogAPIError(r, status, "Invalid data", err)
		shared.RespondWithJSON(w, r, status, DataResponse{
			Error:    "Invalid data",
			Messages: validationFields(err),
		})
	case http.StatusNotFound:
		shared.RespondWithJSON(w, r, status, DataResponse{Error: notFound})
	default:
		shared.LogAPIError(r, http.StatusInternalServerError, failure, err)
		shared.RespondWithJSON(w, r, http.StatusInternalServerError, DataResponse{
			Error:   failure,
			Message: errorCause(err),
		})
	}
}
