package postgres

import (
	"context"
	"fmt"
	"time"


	"github.com/spicebloom/storefront/internal/domain"
)

// WishlistRepository implements repository.WishlistRepository using PostgreSQL.
type WishlistRepository struct {
	pool DB
}

// NewWishlistRepository creates a new PostgreSQL-backed wishlist repository.
func NewWishlistRepository(pool DB) *WishlistRepository {
	return &WishlistRepository{pool: pool}
}

// Add inserts a product into the user's wishlist. Adding a product that is
// already present is a no-op.
func (r *WishlistRepository) Add(ctx context.Context, userID, productID string) error {
	query := `
		INSERT INTO wishlists (user_id, product_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query, userID, productID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("add wishlist item: %w", err)
	}

	return nil
}

// Remove deletes a product from the user's wishlist. Removing an absent
// product is a no-op.
func (r *WishlistRepository) Remove(ctx context.Context, userID, productID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM wishlists WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	)
	if err != nil {
		return fmt.Errorf("remove wishlist item: %w", err)
	}

	return nil
}

// List returns a page of wishlist items for the user, newest first, with the
// total count.
func (r *WishlistRepository) List(ctx context.Context, userID string, page, perPage int) ([]*domain.WishlistItem, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM wishlists WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count wishlist items: %w", err)
	}

	offset := (page - 1) * perPage
	query := `
		SELECT user_id, product_id, created_at
		FROM wishlists
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, userID, perPage, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list wishlist items: %w", err)
	}
	defer rows.Close()

	var items []*domain.WishlistItem
	for rows.Next() {
		var item domain.WishlistItem
		if err := rows.Scan(&item.UserID, &item.ProductID, &item.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan wishlist item: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate wishlist rows: %w", err)
	}

	if items == nil {
		items = []*domain.WishlistItem{}
	}

	return items, total, nil
}

// Exists reports whether a product is in the user's wishlist.
func (r *WishlistRepository) Exists(ctx context.Context, userID, productID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM wishlists WHERE user_id = $1 AND product_id = $2)`,
		userID, productID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check wishlist item: %w", err)
	}

	return exists, nil
}
