package repositories_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"storefront/internal/database"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String()), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, quantity int) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, Price: decimal.RequireFromString("10.00"), Quantity: quantity}
	require.NoError(t, repositories.NewGORMProductRepository(db).Create(context.Background(), product))
	return product
}

func TestOrderRepository_PlaceOrderDecrementsStock(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	product := seedProduct(t, db, "Laptop", 10)
	repo := repositories.NewGORMOrderRepository(db)

	order := &models.Order{CustomerName: "Ali", CustomerPhone: "+998901234567", ProductID: &product.ID, Quantity: 3}
	remaining, err := repo.PlaceOrder(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, 7, remaining)
	assert.NotZero(t, order.ID)
	assert.False(t, order.CreatedAt.IsZero())

	reloaded, err := repositories.NewGORMProductRepository(db).GetBySlug(ctx, product.Slug)
	require.NoError(t, err)
	assert.Equal(t, 7, reloaded.Quantity)

	orders, err := repo.GetByProduct(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 3, orders[0].Quantity)
}

func TestOrderRepository_PlaceOrderInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	product := seedProduct(t, db, "Keyboard", 2)
	repo := repositories.NewGORMOrderRepository(db)

	order := &models.Order{CustomerName: "Vali", CustomerPhone: "+998901234567", ProductID: &product.ID, Quantity: 5}
	_, err := repo.PlaceOrder(ctx, order)

	var stockErr *repositories.StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Available)

	reloaded, err := repositories.NewGORMProductRepository(db).GetBySlug(ctx, product.Slug)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Quantity)

	orders, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderRepository_PlaceOrderUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	missing := uint(999)
	_, err := repositories.NewGORMOrderRepository(db).PlaceOrder(context.Background(),
		&models.Order{CustomerName: "Ali", CustomerPhone: "+998901234567", ProductID: &missing, Quantity: 1})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestOrderRepository_ConcurrentOrdersNeverOversell(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	product := seedProduct(t, db, "Mouse", 4)
	repo := repositories.NewGORMOrderRepository(db)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			order := &models.Order{CustomerName: "Buyer", CustomerPhone: "+998901234567", ProductID: &product.ID, Quantity: 4}
			_, err := repo.PlaceOrder(ctx, order)
			mu.Lock()
			defer mu.Unlock()
			var stockErr *repositories.StockError
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorAs(t, err, &stockErr):
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, rejected)

	reloaded, err := repositories.NewGORMProductRepository(db).GetBySlug(ctx, product.Slug)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Quantity)
}

func TestProductRepository_DeleteKeepsOrders(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	product := seedProduct(t, db, "Monitor", 5)
	orderRepo := repositories.NewGORMOrderRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)

	user := &models.User{Email: "u@example.com", Password: "hash"}
	require.NoError(t, repositories.NewGORMUserRepository(db).Create(ctx, user))
	require.NoError(t, repositories.NewGORMLikeRepository(db).Create(ctx, &models.Like{UserID: user.ID, ProductID: product.ID}))

	order := &models.Order{CustomerName: "Ali", CustomerPhone: "+998901234567", ProductID: &product.ID, Quantity: 1}
	_, err := orderRepo.PlaceOrder(ctx, order)
	require.NoError(t, err)

	require.NoError(t, productRepo.Delete(ctx, product.ID))

	kept, err := orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.ProductID)
	assert.Nil(t, kept.Product)
	assert.Equal(t, 1, kept.Quantity)

	_, err = productRepo.GetBySlug(ctx, product.Slug)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	var likes int64
	require.NoError(t, db.Model(&models.Like{}).Count(&likes).Error)
	assert.Zero(t, likes)

	err = productRepo.Delete(ctx, product.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCategoryRepository_DeleteWithProducts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	phones := &models.Category{Title: "Phones"}
	laptops := &models.Category{Title: "Laptops"}
	require.NoError(t, categoryRepo.Create(ctx, phones))
	require.NoError(t, categoryRepo.Create(ctx, laptops))

	phone := &models.Product{Name: "Phone", Price: decimal.NewFromInt(100), Quantity: 2, CategoryID: &phones.ID}
	laptop := &models.Product{Name: "Laptop", Price: decimal.NewFromInt(900), Quantity: 2, CategoryID: &laptops.ID}
	require.NoError(t, productRepo.Create(ctx, phone))
	require.NoError(t, productRepo.Create(ctx, laptop))

	user := &models.User{Email: "u@example.com", Password: "hash"}
	require.NoError(t, repositories.NewGORMUserRepository(db).Create(ctx, user))
	require.NoError(t, repositories.NewGORMLikeRepository(db).Create(ctx, &models.Like{UserID: user.ID, ProductID: phone.ID}))
	order := &models.Order{CustomerName: "Ali", CustomerPhone: "+998901234567", ProductID: &phone.ID, Quantity: 1}
	_, err := orderRepo.PlaceOrder(ctx, order)
	require.NoError(t, err)

	require.NoError(t, categoryRepo.DeleteWithProducts(ctx, phones.ID))

	_, err = categoryRepo.GetBySlug(ctx, phones.Slug)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = productRepo.GetBySlug(ctx, phone.Slug)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = productRepo.GetBySlug(ctx, laptop.Slug)
	assert.NoError(t, err)

	kept, err := orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.ProductID)

	var likes int64
	require.NoError(t, db.Model(&models.Like{}).Count(&likes).Error)
	assert.Zero(t, likes)

	err = categoryRepo.DeleteWithProducts(ctx, phones.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestProductRepository_SearchAndCategorySort(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)

	category := &models.Category{Title: "Electronics"}
	require.NoError(t, categoryRepo.Create(ctx, category))
	assert.Equal(t, "electronics", category.Slug)

	base := time.Now().Add(-time.Hour)
	products := []models.Product{
		{Name: "Cheap Cable", Description: "USB cable", Price: decimal.RequireFromString("2.50"), Quantity: 1, Likes: 5, CategoryID: &category.ID, CreatedAt: base},
		{Name: "Fancy Phone", Description: "Flagship", Price: decimal.RequireFromString("999.00"), Quantity: 1, Likes: 1, CategoryID: &category.ID, CreatedAt: base.Add(time.Minute)},
		{Name: "Headphones", Description: "Wireless USB dongle", Price: decimal.RequireFromString("59.90"), Quantity: 1, Likes: 9, CategoryID: &category.ID, CreatedAt: base.Add(2 * time.Minute)},
	}
	for i := range products {
		require.NoError(t, productRepo.Create(ctx, &products[i]))
	}

	found, err := productRepo.Search(ctx, "usb")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	all, err := productRepo.Search(ctx, "  ")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	names := func(ps []models.Product) []string {
		out := make([]string, 0, len(ps))
		for _, p := range ps {
			out = append(out, p.Name)
		}
		return out
	}

	byPrice, err := productRepo.GetByCategory(ctx, category.ID, repositories.SortPriceAsc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cheap Cable", "Headphones", "Fancy Phone"}, names(byPrice))

	byPriceDesc, err := productRepo.GetByCategory(ctx, category.ID, repositories.SortPriceDesc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fancy Phone", "Headphones", "Cheap Cable"}, names(byPriceDesc))

	byLikes, err := productRepo.GetByCategory(ctx, category.ID, repositories.SortMostLiked)
	require.NoError(t, err)
	assert.Equal(t, []string{"Headphones", "Cheap Cable", "Fancy Phone"}, names(byLikes))

	newest, err := productRepo.GetByCategory(ctx, category.ID, repositories.SortNewest)
	require.NoError(t, err)
	assert.Equal(t, []string{"Headphones", "Fancy Phone", "Cheap Cable"}, names(newest))
}

func TestProductRepository_UpdateZeroValues(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	productRepo := repositories.NewGORMProductRepository(db)
	product := seedProduct(t, db, "Tablet", 3)

	product.Quantity = 0
	product.Discount = 20
	require.NoError(t, productRepo.Update(ctx, product))
	assert.Equal(t, "8.00", product.DiscountedPrice.StringFixed(2))

	reloaded, err := productRepo.GetBySlug(ctx, product.Slug)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Quantity)
	assert.Equal(t, 20, reloaded.Discount)
	assert.Equal(t, "8.00", reloaded.DiscountedPrice.StringFixed(2))

	ghost := &models.Product{ID: 12345, Name: "Ghost", Price: decimal.NewFromInt(1)}
	assert.ErrorIs(t, productRepo.Update(ctx, ghost), repositories.ErrNotFound)
}

func TestLikeRepository_CreateIncrementsOnce(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	product := seedProduct(t, db, "Camera", 1)
	user := &models.User{Email: "liker@example.com", Password: "hash"}
	require.NoError(t, repositories.NewGORMUserRepository(db).Create(ctx, user))
	likeRepo := repositories.NewGORMLikeRepository(db)

	require.NoError(t, likeRepo.Create(ctx, &models.Like{UserID: user.ID, ProductID: product.ID}))
	exists, err := likeRepo.Exists(ctx, user.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	assert.Error(t, likeRepo.Create(ctx, &models.Like{UserID: user.ID, ProductID: product.ID}))

	reloaded, err := repositories.NewGORMProductRepository(db).GetBySlug(ctx, product.Slug)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Likes)
}

func TestUserRepository_SuperuserEmails(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := repositories.NewGORMUserRepository(db)

	require.NoError(t, repo.Create(ctx, &models.User{Email: "b-admin@example.com", Password: "x", IsSuperuser: true, IsActive: true}))
	require.NoError(t, repo.Create(ctx, &models.User{Email: "a-admin@example.com", Password: "x", IsSuperuser: true, IsActive: true}))
	require.NoError(t, repo.Create(ctx, &models.User{Email: "user@example.com", Password: "x", IsActive: true}))

	emails, err := repo.SuperuserEmails(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a-admin@example.com", "b-admin@example.com"}, emails)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCustomerRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := repositories.NewGORMCustomerRepository(db)

	customer := &models.Customer{Name: "Aziz", Email: "aziz@example.com", Phone: "+998901112233", BillingAddress: "Tashkent", JoinedDate: time.Now(), VATNumber: "123456789"}
	require.NoError(t, repo.Create(ctx, customer))

	exists, err := repo.VATNumberExists(ctx, "123456789")
	require.NoError(t, err)
	assert.True(t, exists)

	customer.Name = "Aziz B."
	require.NoError(t, repo.Update(ctx, customer))
	got, err := repo.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Aziz B.", got.Name)
	assert.Equal(t, "123456789", got.VATNumber)

	require.NoError(t, repo.Delete(ctx, customer.ID))
	_, err = repo.GetByID(ctx, customer.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
