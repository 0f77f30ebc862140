package services

import (
	"context"
	"errors"
	"math/rand/v2"
	"strconv"
	"time"

	"storefront/internal/models"
	"storefront/internal/notify"
	"storefront/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	vatMin      = 100000000
	vatMax      = 999999999
	vatAttempts = 10
)

var errVATExhausted = errors.New("could not allocate a unique VAT number")

// CustomerService handles business logic related to customers.
type CustomerService struct {
	repo     repositories.CustomerRepository
	notifier notify.Notifier
	validate *validator.Validate
	log      *zap.Logger
	vat      func() string
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(repo repositories.CustomerRepository, notifier notify.Notifier, log *zap.Logger) *CustomerService {
	return &CustomerService{
		repo:     repo,
		notifier: notifier,
		validate: validator.New(),
		log:      log,
		vat:      randomVAT,
	}
}

func randomVAT() string {
	return strconv.Itoa(vatMin + rand.IntN(vatMax-vatMin+1))
}

func (s *CustomerService) GetAllCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.repo.GetAll(ctx)
}

func (s *CustomerService) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateCustomer stores a customer, assigning a unique 9-digit VAT number when none is set.
func (s *CustomerService) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	if err := s.validate.Struct(customer); err != nil {
		return validationError(err)
	}
	if customer.JoinedDate.IsZero() {
		customer.JoinedDate = time.Now()
	}
	if customer.VATNumber == "" {
		vat, err := s.uniqueVAT(ctx)
		if err != nil {
			return err
		}
		customer.VATNumber = vat
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return err
	}
	publish(ctx, s.notifier, s.log, notify.CustomerCreated(customer))
	return nil
}

func (s *CustomerService) uniqueVAT(ctx context.Context) (string, error) {
	for range vatAttempts {
		vat := s.vat()
		exists, err := s.repo.VATNumberExists(ctx, vat)
		if err != nil {
			return "", err
		}
		if !exists {
			return vat, nil
		}
	}
	return "", errVATExhausted
}

// UpdateCustomer replaces the editable fields of a customer. The VAT number and joined date never change.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uint, customer *models.Customer) (*models.Customer, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(customer); err != nil {
		return nil, validationError(err)
	}
	customer.ID = existing.ID
	customer.VATNumber = existing.VATNumber
	customer.JoinedDate = existing.JoinedDate
	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	publish(ctx, s.notifier, s.log, notify.CustomerUpdated(customer))
	return customer, nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id uint) error {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	publish(ctx, s.notifier, s.log, notify.CustomerDeleted(customer))
	return nil
}
