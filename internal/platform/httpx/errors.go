package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for the domain layer.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicate    = errors.New("duplicate entry")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

// RespondError maps domain errors to API failure envelopes.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		Fail(w, http.StatusNotFound, "not_found")
	case errors.Is(err, ErrDuplicate):
		Fail(w, http.StatusConflict, "duplicate")
	case errors.Is(err, ErrValidation):
		Fail(w, http.StatusBadRequest, "validation_failed")
	case errors.Is(err, ErrUnauthorized):
		Fail(w, http.StatusUnauthorized, "unauthorized")
	default:
		Fail(w, http.StatusInternalServerError, "internal_error")
	}
}
