package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrEmptyCart        = errors.New("cart is empty")

	ErrCategoryExists = errors.New("category name or slug already in use")
	ErrProductExists  = errors.New("product slug already in use")

	// ErrInvalidCredentials is the only error login ever returns for a bad
	// username, unknown email or wrong password, so responses never reveal
	// which part was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already registered")

	// ErrProductInUse is returned when deleting a product that existing
	// order items still reference.
	ErrProductInUse = errors.New("product is referenced by existing orders")
)

// ValidationError reports boundary validation failures along with the
// offending field names.
type ValidationError struct {
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
}

func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// IsNotFound reports whether err is one of the lookup sentinels, regardless
// of wrapping.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrUserNotFound)
}
