package backup_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"storefront/internal/backup"
	"storefront/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_AppendCreatesAndExtends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup", "product_backup.json")
	store := backup.NewFileStore(path)
	ctx := context.Background()
	electronics := uint(7)

	laptop := &models.Product{
		Name:        "Laptop",
		Description: "14 inch",
		Price:       decimal.RequireFromString("1200.50"),
		Image:       "images/laptop.png",
		Discount:    10,
		Quantity:    3,
		CategoryID:  &electronics,
	}
	require.NoError(t, store.Append(ctx, laptop))
	require.NoError(t, store.Append(ctx, &models.Product{Name: "Mouse", Price: decimal.NewFromInt(25)}))

	records, err := store.Records()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, backup.Record{
		Name:        "Laptop",
		Description: "14 inch",
		Price:       1200.5,
		Image:       "images/laptop.png",
		Discount:    10,
		Quantity:    3,
		Category:    &electronics,
	}, records[0])
	assert.Equal(t, "Mouse", records[1].Name)
	assert.Nil(t, records[1].Category)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"category": 7`)
	assert.Contains(t, string(raw), `"category": null`)
}

func TestFileStore_CorruptFileStartsOver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "product_backup.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	store := backup.NewFileStore(path)
	require.NoError(t, store.Append(context.Background(), &models.Product{Name: "Keyboard", Price: decimal.NewFromInt(75)}))

	records, err := store.Records()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Keyboard", records[0].Name)
	assert.Equal(t, 75.0, records[0].Price)
}

func TestFileStore_MissingFileHasNoRecords(t *testing.T) {
	store := backup.NewFileStore(filepath.Join(t.TempDir(), "none.json"))
	records, err := store.Records()
	require.NoError(t, err)
	assert.Empty(t, records)
}
