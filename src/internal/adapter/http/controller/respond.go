package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/api-sage/bank-backoffice/src/internal/commons"
	"github.com/api-sage/bank-backoffice/src/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusForError maps the ledger's sentinel errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrPolicyViolation),
		errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrConcurrentUpdate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func errorEnvelope[T any](err error) commons.Response[T] {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrPolicyViolation),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrConcurrentUpdate):
		return commons.ErrorResponse[T](err.Error())
	default:
		return commons.ErrorResponse[T]("request failed", "Unable to process the request right now")
	}
}
