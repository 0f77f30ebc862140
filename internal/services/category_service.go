package services

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/notify"
	"storefront/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo     repositories.CategoryRepository
	products repositories.ProductRepository
	catalog  *ProductService
	notifier notify.Notifier
	validate *validator.Validate
	log      *zap.Logger
}

// NewCategoryService creates a new CategoryService. Products of a deleted category are archived through catalog.
func NewCategoryService(repo repositories.CategoryRepository, products repositories.ProductRepository, catalog *ProductService, notifier notify.Notifier, log *zap.Logger) *CategoryService {
	return &CategoryService{
		repo:     repo,
		products: products,
		catalog:  catalog,
		notifier: notifier,
		validate: validator.New(),
		log:      log,
	}
}

// ParseSort maps a storefront filter value onto a product ordering. Unknown values leave the listing unordered.
func ParseSort(filter string) repositories.ProductSort {
	switch sort := repositories.ProductSort(filter); sort {
	case repositories.SortNewest, repositories.SortMostLiked, repositories.SortPriceDesc, repositories.SortPriceAsc:
		return sort
	default:
		return repositories.SortNone
	}
}

func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.GetAll(ctx)
}

func (s *CategoryService) GetCategory(ctx context.Context, slug string) (*models.Category, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// CategoryProducts returns the category and its products ordered by filter.
func (s *CategoryService) CategoryProducts(ctx context.Context, slug, filter string) (*models.Category, []models.Product, error) {
	category, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	products, err := s.products.GetByCategory(ctx, category.ID, ParseSort(filter))
	if err != nil {
		return nil, nil, err
	}
	return category, products, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, category *models.Category) error {
	if err := s.validate.Struct(category); err != nil {
		return validationError(err)
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return err
	}
	publish(ctx, s.notifier, s.log, notify.CategoryCreated(category))
	return nil
}

// UpdateCategory replaces the title and image of the category identified by slug.
func (s *CategoryService) UpdateCategory(ctx context.Context, slug string, category *models.Category) (*models.Category, error) {
	existing, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	category.ID = existing.ID
	category.CreatedAt = existing.CreatedAt
	if category.Slug == "" {
		category.Slug = existing.Slug
	}
	if err := s.validate.Struct(category); err != nil {
		return nil, validationError(err)
	}
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	publish(ctx, s.notifier, s.log, notify.CategoryUpdated(category))
	return category, nil
}

// DeleteCategory removes the category together with its products. Every product is archived
// before anything is deleted, and the deletion itself is a single transaction.
func (s *CategoryService) DeleteCategory(ctx context.Context, slug string) error {
	category, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	products, err := s.products.GetByCategory(ctx, category.ID, repositories.SortNone)
	if err != nil {
		return err
	}
	for i := range products {
		products[i].Category = category
		if err := s.catalog.backup(ctx, &products[i]); err != nil {
			return err
		}
	}
	if err := s.repo.DeleteWithProducts(ctx, category.ID); err != nil {
		return err
	}
	for i := range products {
		s.catalog.deleted(ctx, &products[i])
	}
	s.log.Info("category deleted", zap.String("slug", slug), zap.Int("products", len(products)))
	publish(ctx, s.notifier, s.log, notify.CategoryDeleted(category))
	return nil
}
