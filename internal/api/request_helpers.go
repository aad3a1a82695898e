package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskapi/internal/api/shared"
	"github.com/phrazzld/taskapi/internal/domain"
	"github.com/phrazzld/taskapi/internal/platform/logger"
)

// getPathID extracts a positive numeric ID from the URL path parameters.
// It returns false for a missing, non-numeric or non-positive value, which
// handlers report as not found.
func getPathID(r *http.Request, paramName string) (int64, bool) {
	raw := chi.URLParam(r, paramName)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		logger.FromContext(r.Context()).Debug("invalid path id",
			slog.String("param_name", paramName),
			slog.String("value", raw))
		return 0, false
	}
	return id, true
}

// decodeRequest decodes a JSON body into v. A missing or unparseable body
// leaves v at its zero value so validation reports every required field. A
// field holding a value of the wrong JSON type yields a
// *domain.ValidationError for that field.
func decodeRequest(r *http.Request, v any) error {
	err := shared.DecodeJSON(r, v)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		logDecodeFailure(r, err)
		return domain.NewFieldError(typeErr.Field, typeMismatchMessage(typeErr))
	}

	if !errors.Is(err, shared.ErrEmptyBody) {
		logDecodeFailure(r, err)
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv.Elem().SetZero()
	}
	return nil
}

// typeMismatchMessage describes the JSON type a field expected.
func typeMismatchMessage(err *json.UnmarshalTypeError) string {
	label := strings.ReplaceAll(err.Field, "_", " ")
	switch err.Type.Kind() {
	case reflect.String:
		return fmt.Sprintf("The %s must be a string.", label)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("The %s must be an integer.", label)
	default:
		return fmt.Sprintf("The %s is invalid.", label)
	}
}

// logDecodeFailure records why a request body was rejected.
func logDecodeFailure(r *http.Request, err error) {
	logger.FromContext(r.Context()).Debug("invalid request body",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()))
}
