package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spicebloom/storefront/internal/domain"
	"github.com/spicebloom/storefront/pkg/database"
	apperrors "github.com/spicebloom/storefront/pkg/errors"
)

func newAddressTestFixture(t *testing.T) (*AddressRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	repo := NewAddressRepository(mock)
	return repo, mock
}

func sampleAddress() *domain.Address {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Address{
		ID:        "addr-1",
		UserID:    "u-1234",
		FirstName: "Asha",
		LastName:  "Nair",
		Phone:     "9876543210",
		Email:     "asha@example.com",
		Street:    "14 Spice Market Road",
		City:      "Kochi",
		State:     "Kerala",
		ZipCode:   "682001",
		Country:   "India",
		CreatedAt: now,
	}
}

func addressColumns() []string {
	return []string{
		"id", "user_id", "first_name", "last_name", "phone", "email",
		"street", "city", "state", "zip_code", "country", "created_at",
	}
}

func addressRow(a *domain.Address) *pgxmock.Rows {
	return pgxmock.NewRows(addressColumns()).AddRow(
		a.ID, a.UserID, a.FirstName, a.LastName, a.Phone, a.Email,
		a.Street, a.City, a.State, a.ZipCode, a.Country, a.CreatedAt,
	)
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestAddressRepository_Create_Success(t *testing.T) {
	repo, mock := newAddressTestFixture(t)
	defer mock.Close()

	a := sampleAddress()

	mock.ExpectExec("INSERT INTO addresses").
		WithArgs(
			a.ID, a.UserID, a.FirstName, a.LastName, a.Phone, a.Email,
			a.Street, a.City, a.State, a.ZipCode, a.Country, a.CreatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), a)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// GetByID
// ---------------------------------------------------------------------------

func TestAddressRepository_GetByID_Success(t *testing.T) {
	repo, mock := newAddressTestFixture(t)
	defer mock.Close()

	a := sampleAddress()

	mock.ExpectQuery("SELECT .+ FROM addresses").
		WithArgs(a.ID).
		WillReturnRows(addressRow(a))

	got, err := repo.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, a.UserID, got.UserID)
	assert.Equal(t, a.Phone, got.Phone)
	assert.Equal(t, a.City, got.City)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddressRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newAddressTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM addresses").
		WithArgs("missing-addr").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByID(context.Background(), "missing-addr")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// ListByUser
// ---------------------------------------------------------------------------

func TestAddressRepository_ListByUser_Success(t *testing.T) {
	repo, mock := newAddressTestFixture(t)
	defer mock.Close()

	a1 := sampleAddress()
	a2 := sampleAddress()
	a2.ID = "addr-2"
	a2.Street = "8 Hill Produce Lane"
	a2.City = "Munnar"
	a2.ZipCode = "685612"
	a2.CreatedAt = a1.CreatedAt.Add(time.Minute)

	rows := pgxmock.NewRows(addressColumns()).
		AddRow(
			a1.ID, a1.UserID, a1.FirstName, a1.LastName, a1.Phone, a1.Email,
			a1.Street, a1.City, a1.State, a1.ZipCode, a1.Country, a1.CreatedAt,
		).
		AddRow(
			a2.ID, a2.UserID, a2.FirstName, a2.LastName, a2.Phone, a2.Email,
			a2.Street, a2.City, a2.State, a2.ZipCode, a2.Country, a2.CreatedAt,
		)

	mock.ExpectQuery("SELECT .+ FROM addresses").
		WithArgs("u-1234").
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), "u-1234")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "addr-1", got[0].ID)
	assert.Equal(t, "addr-2", got[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddressRepository_ListByUser_Empty(t *testing.T) {
	repo, mock := newAddressTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM addresses").
		WithArgs("u-no-addrs").
		WillReturnRows(pgxmock.NewRows(addressColumns()))

	got, err := repo.ListByUser(context.Background(), "u-no-addrs")
	require.NoError(t, err)
	assert.NotNil(t, got, "should return empty slice, not nil")
	assert.Len(t, got, 0)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestAddressRepository_Delete_Success(t *testing.T) {
	repo, mock := newAddressTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM addresses").
		WithArgs("u-1234", "addr-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(context.Background(), "u-1234", "addr-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddressRepository_Delete_WrongOwner(t *testing.T) {
	repo, mock := newAddressTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM addresses").
		WithArgs("u-other", "addr-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "u-other", "addr-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
