// Package backup keeps a JSON archive of products removed from the catalog.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"storefront/internal/models"

	"github.com/goccy/go-json"
)

// Record is the archived form of a deleted product.
type Record struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Discount    int     `json:"discount"`
	Quantity    int     `json:"quantity"`
	Category    *uint   `json:"category"`
}

// NewRecord builds an archive record from a product. Category holds the category ID, null when unset.
func NewRecord(p *models.Product) Record {
	var category *uint
	if p.CategoryID != nil {
		id := *p.CategoryID
		category = &id
	}
	return Record{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Image:       p.Image,
		Discount:    p.Discount,
		Quantity:    p.Quantity,
		Category:    category,
	}
}

// FileStore appends records to a JSON array on disk.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a FileStore writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Append adds the product to the archive. A missing or unreadable archive starts a new array.
func (s *FileStore) Append(ctx context.Context, p *models.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}
	records = append(records, NewRecord(p))

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup %s: %w", s.path, err)
	}
	return nil
}

// Records returns the archived records.
func (s *FileStore) Records() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) load() ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup %s: %w", s.path, err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		// corrupt archive: start over
		return nil, nil
	}
	return records, nil
}
