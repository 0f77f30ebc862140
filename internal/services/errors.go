package services

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/repositories"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrNotFound is returned when the requested product, category, customer, order or user does not exist.
	ErrNotFound = repositories.ErrNotFound
	// ErrConflict is returned when a unique field such as a name or email is already in use.
	ErrConflict = repositories.ErrDuplicate

	ErrInvalidPhone      = errors.New("invalid phone number")
	ErrMissingField      = errors.New("missing required field")
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrAlreadyLiked       = errors.New("product already liked")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// InsufficientStockError carries the stock that was left when an order asked for more.
// It matches ErrInsufficientStock with errors.Is.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: only %d left", e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// ValidationError lists the fields of an input that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// validationError converts validator output into a ValidationError.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return &ValidationError{Fields: fields}
}
