package services

import (
	"context"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/notify"
	"storefront/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Archiver keeps a copy of products before they are removed.
type Archiver interface {
	Append(ctx context.Context, p *models.Product) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	archive  Archiver
	notifier notify.Notifier
	validate *validator.Validate
	log      *zap.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, archive Archiver, notifier notify.Notifier, log *zap.Logger) *ProductService {
	return &ProductService{
		repo:     repo,
		archive:  archive,
		notifier: notifier,
		validate: validator.New(),
		log:      log,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// SearchProducts matches query against product names and descriptions. An empty query lists everything.
func (s *ProductService) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	return s.repo.Search(ctx, query)
}

// GetProduct retrieves a single product by its slug.
func (s *ProductService) GetProduct(ctx context.Context, slug string) (*models.Product, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := s.check(product); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return err
	}
	publish(ctx, s.notifier, s.log, notify.ProductCreated(product))
	return nil
}

// UpdateProduct replaces the editable fields of the product identified by slug.
// An empty slug or image in the input keeps the stored one.
func (s *ProductService) UpdateProduct(ctx context.Context, slug string, product *models.Product) (*models.Product, error) {
	existing, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	product.ID = existing.ID
	if product.Slug == "" {
		product.Slug = existing.Slug
	}
	if product.Image == "" {
		product.Image = existing.Image
	}
	if err := s.check(product); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetBySlug(ctx, product.Slug)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.notifier, s.log, notify.ProductUpdated(updated))
	return updated, nil
}

// DeleteProduct archives the product and removes it. Its orders are kept without a product.
func (s *ProductService) DeleteProduct(ctx context.Context, slug string) error {
	product, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return s.remove(ctx, product)
}

func (s *ProductService) remove(ctx context.Context, product *models.Product) error {
	if err := s.backup(ctx, product); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, product.ID); err != nil {
		return err
	}
	s.deleted(ctx, product)
	return nil
}

func (s *ProductService) backup(ctx context.Context, product *models.Product) error {
	if s.archive == nil {
		return nil
	}
	if err := s.archive.Append(ctx, product); err != nil {
		return fmt.Errorf("failed to back up product %s: %w", product.Slug, err)
	}
	return nil
}

func (s *ProductService) deleted(ctx context.Context, product *models.Product) {
	s.log.Info("product deleted", zap.Uint("product_id", product.ID), zap.String("slug", product.Slug))
	publish(ctx, s.notifier, s.log, notify.ProductDeleted(product))
}

func (s *ProductService) check(product *models.Product) error {
	if err := s.validate.Struct(product); err != nil {
		return validationError(err)
	}
	if product.Price.IsNegative() {
		return &ValidationError{Fields: map[string]string{"Price": "Field 'Price' must not be negative"}}
	}
	return nil
}
