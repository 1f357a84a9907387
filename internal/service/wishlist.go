package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spicebloom/storefront/internal/domain"
	"github.com/spicebloom/storefront/internal/repository"
	apperrors "github.com/spicebloom/storefront/pkg/errors"
)

// WishlistService implements the business logic for wishlists.
type WishlistService struct {
	repo   repository.WishlistRepository
	logger *slog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(repo repository.WishlistRepository, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		repo:   repo,
		logger: logger,
	}
}

// Add puts a product on the user's wishlist. Repeated adds are no-ops.
func (s *WishlistService) Add(ctx context.Context, userID, productID string) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}
	if productID == "" {
		return apperrors.InvalidInput("product id is required")
	}

	if err := s.repo.Add(ctx, userID, productID); err != nil {
		return fmt.Errorf("add to wishlist: %w", err)
	}

	s.logger.InfoContext(ctx, "product added to wishlist",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
	)

	return nil
}

// Remove takes a product off the user's wishlist. Removing an absent product
// is a no-op.
func (s *WishlistService) Remove(ctx context.Context, userID, productID string) error {
	if productID == "" {
		return apperrors.InvalidInput("product id is required")
	}

	if err := s.repo.Remove(ctx, userID, productID); err != nil {
		return fmt.Errorf("remove from wishlist: %w", err)
	}

	return nil
}

// List returns one page of the user's wishlist with the total count.
func (s *WishlistService) List(ctx context.Context, userID string, page, perPage int) ([]*domain.WishlistItem, int, error) {
	if userID == "" {
		return nil, 0, apperrors.InvalidInput("user id is required")
	}

	items, total, err := s.repo.List(ctx, userID, page, perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("list wishlist: %w", err)
	}

	return items, total, nil
}

// Contains reports whether a product is on the user's wishlist.
func (s *WishlistService) Contains(ctx context.Context, userID, productID string) (bool, error) {
	exists, err := s.repo.Exists(ctx, userID, productID)
	if err != nil {
		return false, fmt.Errorf("check wishlist: %w", err)
	}
	return exists, nil
}
