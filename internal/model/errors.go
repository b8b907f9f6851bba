package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrAccountNotFound = errors.New("player account not found")
	ErrUserNameExists  = errors.New("user name already exists")

	// Battle errors
	ErrBattleNotFound = errors.New("battle not found")
	ErrBattleExists   = errors.New("battle already exists")

	// Token errors
	ErrAccessTokenNotFound = errors.New("access token not found")
)

// DomainError is a structured failure returned by the game instead of a fault.
// Callers tell it apart from faults with errors.As.
type DomainError struct {
	Message string `json:"errorMessage"`
}

// Error implements error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a DomainError with a formatted message
func NewDomainError(format string, args ...any) *DomainError {
	return &DomainError{Message: fmt.Sprintf(format, args...)}
}

// AsDomainError returns the DomainError wrapped in err, if any
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
