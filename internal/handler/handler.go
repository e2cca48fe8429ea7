package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/bienestar-app/bienestar/internal/render"
	"github.com/bienestar-app/bienestar/internal/repository"
	"github.com/bienestar-app/bienestar/internal/service"
	"github.com/bienestar-app/bienestar/internal/validation"
)

const maxBodyBytes = 64 << 10

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if errors.Is(err, io.EOF) {
		render.Error(w, http.StatusBadRequest, "request body is required")
		return false
	}
	if err != nil {
		render.Error(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// parseDay reads a YYYY-MM-DD value as local midnight. Empty input yields nil.
func parseDay(field, value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	day, err := time.ParseInLocation(time.DateOnly, value, loc)
	if err != nil {
		return nil, &validation.Error{Field: field, Message: fmt.Sprintf("must be a date formatted as %s", time.DateOnly)}
	}
	return &day, nil
}

// writeServiceError maps service errors to responses. Anything unexpected
// is logged with attrs and answered with a generic 500.
func writeServiceError(w http.ResponseWriter, err error, action string, attrs ...any) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		render.FieldError(w, verr.Field, verr.Message)
	case errors.Is(err, service.ErrForbidden):
		render.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrStudentNotFound), errors.Is(err, service.ErrResourceNotFound):
		render.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrReportsDisabled):
		render.Error(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, repository.ErrProgressConflict):
		render.Error(w, http.StatusConflict, "progress is being updated, please retry")
	default:
		slog.Error("failed to "+action, append([]any{"error", err}, attrs...)...)
		render.Error(w, http.StatusInternalServerError, "failed to "+action)
	}
}
