package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("duplicate record")
)

// StockError reports that a conditional stock decrement matched no row because
// the product holds fewer units than requested.
type StockError struct {
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock: %d available", e.Available)
}

// translate maps gorm errors onto the repository sentinels.
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
