package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/api-sage/member-ledger/internal/commons"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusForError maps the ledger error taxonomy onto HTTP statuses. Anything
// unrecognized is a server fault.
func statusForError(err error) int {
	switch {
	case errors.Is(err, commons.ErrRecordNotFound),
		errors.Is(err, commons.ErrNoActiveAssignment):
		return http.StatusNotFound
	case errors.Is(err, commons.ErrAlreadyResolved),
		errors.Is(err, commons.ErrAssignmentActive),
		errors.Is(err, commons.ErrAssignmentCompleted),
		errors.Is(err, commons.ErrSetExhausted):
		return http.StatusConflict
	case errors.Is(err, commons.ErrWithdrawNotAllowed),
		errors.Is(err, commons.ErrInvalidPin):
		return http.StatusForbidden
	case errors.Is(err, commons.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity
	case errors.Is(err, commons.ErrInvalidAmount),
		errors.Is(err, commons.ErrMissingAccountDetails):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

func statusForResponse(message string, err error) int {
	if message == "validation failed" {
		return http.StatusBadRequest
	}

	return statusForError(err)
}
