package service

import (
	"context"
	"fmt"

	"github.com/sakashimaa/accessory-shop/pkg/mylogger"
	"github.com/sakashimaa/accessory-shop/services/customer/internal/domain"
	"github.com/sakashimaa/accessory-shop/services/customer/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const passwordCost = 12

type CustomerService interface {
	Create(ctx context.Context, input domain.CreateCustomerInput) (*domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	List(ctx context.Context, limit, offset int64) ([]domain.Customer, error)
	Update(ctx context.Context, id int64, input *domain.UpdateCustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, id int64) error
	AddAddress(ctx context.Context, address *domain.Address) (*domain.Address, error)
	ListAddresses(ctx context.Context, customerID int64) ([]domain.Address, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
	addressRepo  repository.AddressRepository
	logger       *zap.Logger
}

func NewCustomerService(
	customerRepo repository.CustomerRepository,
	addressRepo repository.AddressRepository,
	logger *zap.Logger,
) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		addressRepo:  addressRepo,
		logger:       logger,
	}
}

func (s *customerService) hashPassword(ctx context.Context, password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		mylogger.Error(
			ctx,
			s.logger,
			"Error hashing password",
			zap.Error(err),
		)

		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hashed), nil
}

func (s *customerService) Create(ctx context.Context, input domain.CreateCustomerInput) (*domain.Customer, error) {
	hashed, err := s.hashPassword(ctx, input.Password)
	if err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.Create(ctx, &domain.Customer{
		EmailAddress:      input.EmailAddress,
		PasswordHash:      hashed,
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		ShippingAddressID: input.ShippingAddressID,
		BillingAddressID:  input.BillingAddressID,
	})
	if err != nil {
		return nil, err
	}

	mylogger.Info(
		ctx,
		s.logger,
		"Customer registered",
		zap.Int64("customer_id", customer.ID),
	)

	return customer, nil
}

func (s *customerService) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

func (s *customerService) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return s.customerRepo.GetByEmail(ctx, email)
}

func (s *customerService) List(ctx context.Context, limit, offset int64) ([]domain.Customer, error) {
	return s.customerRepo.List(ctx, limit, offset)
}

// Update applies the non-nil fields of input and returns the stored customer.
// An empty input is a no-op that still reports a missing customer.
func (s *customerService) Update(ctx context.Context, id int64, input *domain.UpdateCustomerInput) (*domain.Customer, error) {
	if input.Password != nil {
		hashed, err := s.hashPassword(ctx, *input.Password)
		if err != nil {
			return nil, err
		}
		input.Password = &hashed
	}

	if !input.IsEmpty() {
		if err := s.customerRepo.Update(ctx, id, input); err != nil {
			return nil, err
		}
	}

	return s.customerRepo.GetByID(ctx, id)
}

func (s *customerService) Delete(ctx context.Context, id int64) error {
	if err := s.customerRepo.DeleteByID(ctx, id); err != nil {
		return err
	}

	mylogger.Info(
		ctx,
		s.logger,
		"Customer deleted",
		zap.Int64("customer_id", id),
	)

	return nil
}

func (s *customerService) AddAddress(ctx context.Context, address *domain.Address) (*domain.Address, error) {
	if _, err := s.customerRepo.GetByID(ctx, address.CustomerID); err != nil {
		return nil, err
	}

	return s.addressRepo.Create(ctx, address)
}

func (s *customerService) ListAddresses(ctx context.Context, customerID int64) ([]domain.Address, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		return nil, err
	}

	return s.addressRepo.ListByCustomer(ctx, customerID)
}
