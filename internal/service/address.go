package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spicebloom/storefront/internal/domain"
	"github.com/spicebloom/storefront/internal/repository"
	apperrors "github.com/spicebloom/storefront/pkg/errors"
	"github.com/spicebloom/storefront/pkg/validator"
)

// AddressService implements the business logic for the address book.
type AddressService struct {
	repo   repository.AddressRepository
	logger *slog.Logger
}

// NewAddressService creates a new address service.
func NewAddressService(repo repository.AddressRepository, logger *slog.Logger) *AddressService {
	return &AddressService{
		repo:   repo,
		logger: logger,
	}
}

// CreateAddressInput holds the parameters for saving a new address.
type CreateAddressInput struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Phone     string `json:"phone" validate:"required,inphone"`
	Email     string `json:"email" validate:"required,email"`
	Street    string `json:"street" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	ZipCode   string `json:"zip_code" validate:"required"`
	Country   string `json:"country" validate:"required"`
}

// List returns all saved addresses for a user.
func (s *AddressService) List(ctx context.Context, userID string) ([]*domain.Address, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	addresses, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}

	return addresses, nil
}

// Get returns one address, verifying it belongs to the user.
func (s *AddressService) Get(ctx context.Context, userID, addressID string) (*domain.Address, error) {
	address, err := s.repo.GetByID(ctx, addressID)
	if err != nil {
		return nil, fmt.Errorf("get address: %w", err)
	}

	if address.UserID != userID {
		return nil, apperrors.NotFound("address", addressID)
	}

	return address, nil
}

// Create validates and saves a new address. The new address is not
// auto-selected anywhere; callers pick it explicitly.
func (s *AddressService) Create(ctx context.Context, userID string, input *CreateAddressInput) (*domain.Address, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if input == nil {
		return nil, apperrors.InvalidInput("address input is required")
	}

	if err := validator.Validate(input); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	address := &domain.Address{
		ID:        uuid.New().String(),
		UserID:    userID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Email:     input.Email,
		Street:    input.Street,
		City:      input.City,
		State:     input.State,
		ZipCode:   input.ZipCode,
		Country:   input.Country,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, address); err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}

	s.logger.InfoContext(ctx, "address created",
		slog.String("address_id", address.ID),
		slog.String("user_id", userID),
		slog.String("city", address.City),
	)

	return address, nil
}

// Delete removes a user's address.
func (s *AddressService) Delete(ctx context.Context, userID, addressID string) error {
	if addressID == "" {
		return apperrors.InvalidInput("address id is required")
	}

	if err := s.repo.Delete(ctx, userID, addressID); err != nil {
		return fmt.Errorf("delete address: %w", err)
	}

	s.logger.InfoContext(ctx, "address deleted",
		slog.String("address_id", addressID),
		slog.String("user_id", userID),
	)

	return nil
}
