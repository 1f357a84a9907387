package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spicebloom/storefront/internal/domain"
	apperrors "github.com/spicebloom/storefront/pkg/errors"
)

func validAddressInput() *CreateAddressInput {
	return &CreateAddressInput{
		FirstName: "Asha",
		LastName:  "Nair",
		Phone:     "9876543210",
		Email:     "asha@example.com",
		Street:    "14 Spice Market Road",
		City:      "Kochi",
		State:     "Kerala",
		ZipCode:   "682001",
		Country:   "India",
	}
}

func TestAddressService_Create_Success(t *testing.T) {
	repo := new(mockAddressRepository)
	svc := NewAddressService(repo, newTestLogger())

	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Address) bool {
		return a.UserID == "u-1" && a.City == "Kochi" && a.ID != ""
	})).Return(nil)

	address, err := svc.Create(context.Background(), "u-1", validAddressInput())
	require.NoError(t, err)
	assert.NotEmpty(t, address.ID)
	assert.Equal(t, "u-1", address.UserID)
	repo.AssertExpectations(t)
}

func TestAddressService_Create_RejectsBadPhone(t *testing.T) {
	repo := new(mockAddressRepository)
	svc := NewAddressService(repo, newTestLogger())

	input := validAddressInput()
	input.Phone = "12345"

	_, err := svc.Create(context.Background(), "u-1", input)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	repo.AssertNotCalled(t, "Create")
}

func TestAddressService_Create_RejectsBadEmail(t *testing.T) {
	repo := new(mockAddressRepository)
	svc := NewAddressService(repo, newTestLogger())

	input := validAddressInput()
	input.Email = "not-an-email"

	_, err := svc.Create(context.Background(), "u-1", input)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	repo.AssertNotCalled(t, "Create")
}

func TestAddressService_Create_RejectsMissingFields(t *testing.T) {
	repo := new(mockAddressRepository)
	svc := NewAddressService(repo, newTestLogger())

	input := validAddressInput()
	input.Street = ""

	_, err := svc.Create(context.Background(), "u-1", input)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestAddressService_Get_WrongOwnerIsNotFound(t *testing.T) {
	repo := new(mockAddressRepository)
	svc := NewAddressService(repo, newTestLogger())

	repo.On("GetByID", mock.Anything, "addr-1").Return(&domain.Address{ID: "addr-1", UserID: "u-other"}, nil)

	_, err := svc.Get(context.Background(), "u-1", "addr-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestAddressService_List(t *testing.T) {
	repo := new(mockAddressRepository)
	svc := NewAddressService(repo, newTestLogger())

	repo.On("ListByUser", mock.Anything, "u-1").Return([]*domain.Address{
		{ID: "addr-1", UserID: "u-1"},
		{ID: "addr-2", UserID: "u-1"},
	}, nil)

	addresses, err := svc.List(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Len(t, addresses, 2)
}
