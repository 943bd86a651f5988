package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSummonerNotFound = errors.New("summoner not found")
	ErrChampionNotFound = errors.New("champion not found")
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")

	// Discord callback outcomes, each mapped to its own status by the auth handler.
	ErrAccessDenied  = errors.New("discord access was denied")
	ErrStateMismatch = errors.New("request state validation failed")
	ErrAuthProvider  = errors.New("an error occurred during authentication")

	// ErrInvalidInput is the marker for validation failures; details come from *ValidationError.
	ErrInvalidInput = errors.New("invalid input")
)

// FieldError.Rule is the validator tag that failed, e.g. "required" or "max".
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule,omitempty"`
	Message string `json:"message"`
}

// ValidationError aggregates field errors and unwraps to ErrInvalidInput.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func newValidationError(fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
