package app

import (
	"errors"
	"net/http"
)

var sentinels = []error{
	ErrInvalidCredentials,
	ErrDuplicateUser,
	ErrNotFound,
	ErrInvalidTransition,
	ErrNotOwner,
	ErrNotSenior,
	ErrNotJunior,
	ErrJuniorMismatch,
	ErrAlreadySenior,
}

// Message returns the text to show a user for err. Errors that are not
// part of the App's vocabulary read as "internal error".
func Message(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// Known reports whether err is a validation error or one of the App's
// sentinel errors.
func Known(err error) bool {
	return Message(err) != "internal error"
}

// HTTPStatus maps err to the status both the pages and the API answer with.
func HTTPStatus(err error) int {
	switch {
	case IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotOwner),
		errors.Is(err, ErrNotSenior),
		errors.Is(err, ErrNotJunior),
		errors.Is(err, ErrJuniorMismatch):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateUser),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrAlreadySenior):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
