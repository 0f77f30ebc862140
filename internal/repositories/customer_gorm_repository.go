package repositories

import (
	"context"
	"fmt"

	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMCustomerRepository is a GORM implementation of CustomerRepository.
type GORMCustomerRepository struct {
	db *gorm.DB
}

// NewGORMCustomerRepository creates a new instance of GORMCustomerRepository.
func NewGORMCustomerRepository(db *gorm.DB) *GORMCustomerRepository {
	return &GORMCustomerRepository{db: db}
}

func (r *GORMCustomerRepository) GetAll(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.db.WithContext(ctx).Order("id").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to get all customers: %w", err)
	}
	return customers, nil
}

func (r *GORMCustomerRepository) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		if translate(err) == ErrNotFound {
			return nil, fmt.Errorf("customer with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get customer by ID %d: %w", id, err)
	}
	return &customer, nil
}

func (r *GORMCustomerRepository) VATNumberExists(ctx context.Context, vat string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Customer{}).Where("vat_number = ?", vat).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check VAT number: %w", err)
	}
	return count > 0, nil
}

func (r *GORMCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", translate(err))
	}
	return nil
}

// Update writes the editable columns. The VAT number and join date never change.
func (r *GORMCustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	res := r.db.WithContext(ctx).
		Model(customer).
		Select("name", "email", "phone", "billing_address", "image").
		Updates(customer)
	if res.Error != nil {
		return fmt.Errorf("failed to update customer: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("customer with ID %d not found for update: %w", customer.ID, ErrNotFound)
	}
	return nil
}

func (r *GORMCustomerRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Customer{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete customer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("customer with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
