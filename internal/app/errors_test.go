package app

import (
	"errors"
	"fmt"
	"testing"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("item X: %w", ErrNotFound), "not found"},
		{fmt.Errorf("picking up: %w", ErrInvalidTransition), ErrInvalidTransition.Error()},
		{ErrDuplicateUser, ErrDuplicateUser.Error()},
		{&ValidationError{Problems: []string{"name is required", "year must be at least 1900"}}, "name is required; year must be at least 1900"},
		{errors.New("disk on fire"), "internal error"},
	}

	for _, tt := range tests {
		if got := Message(tt.err); got != tt.want {
			t.Errorf("Message(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}

	if Known(errors.New("disk on fire")) {
		t.Error("expected unknown error")
	}
	if !Known(ErrNotOwner) {
		t.Error("expected known error")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&ValidationError{Problems: []string{"x"}}, 400},
		{ErrInvalidCredentials, 401},
		{fmt.Errorf("wrapped: %w", ErrNotOwner), 403},
		{ErrNotSenior, 403},
		{ErrNotJunior, 403},
		{ErrJuniorMismatch, 403},
		{fmt.Errorf("item: %w", ErrNotFound), 404},
		{ErrDuplicateUser, 409},
		{ErrInvalidTransition, 409},
		{ErrAlreadySenior, 409},
		{errors.New("boom"), 500},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
