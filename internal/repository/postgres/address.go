package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spicebloom/storefront/internal/domain"
	apperrors "github.com/spicebloom/storefront/pkg/errors"
)

// AddressRepository implements repository.AddressRepository using PostgreSQL.
type AddressRepository struct {
	pool DB
}

// NewAddressRepository creates a new PostgreSQL-backed address repository.
func NewAddressRepository(pool DB) *AddressRepository {
	return &AddressRepository{pool: pool}
}

// Create inserts a new address into the database.
func (r *AddressRepository) Create(ctx context.Context, a *domain.Address) error {
	query := `
		INSERT INTO addresses (id, user_id, first_name, last_name, phone, email, street, city, state, zip_code, country, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.UserID,
		a.FirstName,
		a.LastName,
		a.Phone,
		a.Email,
		a.Street,
		a.City,
		a.State,
		a.ZipCode,
		a.Country,
		a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert address: %w", err)
	}

	return nil
}

// GetByID retrieves an address by its ID.
func (r *AddressRepository) GetByID(ctx context.Context, id string) (*domain.Address, error) {
	query := `
		SELECT id, user_id, first_name, last_name, phone, email, street, city, state, zip_code, country, created_at
		FROM addresses
		WHERE id = $1`

	var a domain.Address
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.UserID,
		&a.FirstName,
		&a.LastName,
		&a.Phone,
		&a.Email,
		&a.Street,
		&a.City,
		&a.State,
		&a.ZipCode,
		&a.Country,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("address", id)
		}
		return nil, fmt.Errorf("scan address: %w", err)
	}

	return &a, nil
}

// ListByUser returns all addresses for a user in insertion order.
func (r *AddressRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Address, error) {
	query := `
		SELECT id, user_id, first_name, last_name, phone, email, street, city, state, zip_code, country, created_at
		FROM addresses
		WHERE user_id = $1
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	var addresses []*domain.Address
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.FirstName,
			&a.LastName,
			&a.Phone,
			&a.Email,
			&a.Street,
			&a.City,
			&a.State,
			&a.ZipCode,
			&a.Country,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan address row: %w", err)
		}
		addresses = append(addresses, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate address rows: %w", err)
	}

	if addresses == nil {
		addresses = []*domain.Address{}
	}

	return addresses, nil
}

// Delete removes an address owned by the given user.
func (r *AddressRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM addresses WHERE user_id = $1 AND id = $2`

	ct, err := r.pool.Exec(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("address", id)
	}

	return nil
}
