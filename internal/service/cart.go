package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spicebloom/storefront/internal/domain"
	"github.com/spicebloom/storefront/internal/event"
	"github.com/spicebloom/storefront/internal/repository"
	apperrors "github.com/spicebloom/storefront/pkg/errors"
)

// defaultCurrency is the storefront's pricing currency. All amounts are paise.
const defaultCurrency = "INR"

// CartService implements the business logic for cart operations.
type CartService struct {
	repo     repository.CartRepository
	producer *event.Producer
	logger   *slog.Logger
	cartTTL  time.Duration
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, producer *event.Producer, logger *slog.Logger, cartTTL time.Duration) *CartService {
	return &CartService{
		repo:     repo,
		producer: producer,
		logger:   logger,
		cartTTL:  cartTTL,
	}
}

// AddItemInput holds the parameters for adding a product to the cart.
type AddItemInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	UnitPrice int64  `json:"unit_price" validate:"gte=0"`
	Quantity  int    `json:"quantity" validate:"gte=0,lte=10"`
	ImageRef  string `json:"image_ref"`
}

// Get returns the user's cart. A user with no stored cart gets an empty one.
func (s *CartService) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.emptyCart(userID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	return cart, nil
}

// AddItem adds a product to the cart, merging with an existing line for the
// same product. The merged quantity never exceeds the per-line cap: the
// overflow is dropped whole, not partially filled, and the returned capped
// flag tells the caller to surface a warning. A zero quantity defaults to 1.
func (s *CartService) AddItem(ctx context.Context, userID string, input *AddItemInput) (*domain.Cart, bool, error) {
	if userID == "" {
		return nil, false, apperrors.InvalidInput("user id is required")
	}
	if input == nil {
		return nil, false, apperrors.InvalidInput("item input is required")
	}
	if input.ProductID == "" {
		return nil, false, apperrors.InvalidInput("product_id is required")
	}
	if input.Name == "" {
		return nil, false, apperrors.InvalidInput("name is required")
	}
	if input.UnitPrice < 0 {
		return nil, false, apperrors.InvalidInput("unit_price must not be negative")
	}
	if input.Quantity < 0 {
		return nil, false, apperrors.InvalidInput("quantity must not be negative")
	}

	qty := input.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty > domain.MaxQuantityPerLine {
		return nil, false, apperrors.InvalidInput(fmt.Sprintf("quantity cannot exceed %d per item", domain.MaxQuantityPerLine))
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	capped := false
	if idx := cart.FindLineIndex(input.ProductID); idx >= 0 {
		merged := cart.Lines[idx].Quantity + qty
		if merged > domain.MaxQuantityPerLine {
			merged = domain.MaxQuantityPerLine
			capped = true
		}
		cart.Lines[idx].Quantity = merged
	} else {
		if len(cart.Lines) >= domain.MaxLinesPerCart {
			return nil, false, apperrors.InvalidInput(fmt.Sprintf("cart cannot hold more than %d distinct products", domain.MaxLinesPerCart))
		}
		cart.Lines = append(cart.Lines, domain.CartLine{
			ProductID: input.ProductID,
			Name:      input.Name,
			UnitPrice: input.UnitPrice,
			Quantity:  qty,
			ImageRef:  input.ImageRef,
		})
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, false, err
	}

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("user_id", userID),
		slog.String("product_id", input.ProductID),
		slog.Int("quantity", qty),
		slog.Bool("capped", capped),
	)

	return cart, capped, nil
}

// RemoveItem deletes a line from the cart regardless of its quantity.
// Removing an absent product is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product_id is required")
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindLineIndex(productID)
	if idx < 0 {
		return cart, nil
	}

	cart.Lines = append(cart.Lines[:idx], cart.Lines[idx+1:]...)

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
	)

	return cart, nil
}

// DecreaseQuantity decrements a line's quantity by one, removing the line
// when the quantity would drop to zero. Decrementing an absent product is a
// no-op, so repeated calls are safe.
func (s *CartService) DecreaseQuantity(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product_id is required")
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindLineIndex(productID)
	if idx < 0 {
		return cart, nil
	}

	if cart.Lines[idx].Quantity <= 1 {
		cart.Lines = append(cart.Lines[:idx], cart.Lines[idx+1:]...)
	} else {
		cart.Lines[idx].Quantity--
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// SetQuantity sets a line's quantity exactly. A quantity of zero or less
// removes the line; a quantity over the per-line cap is rejected and the line
// is left unchanged.
func (s *CartService) SetQuantity(ctx context.Context, userID, productID string, qty int) (*domain.Cart, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product_id is required")
	}
	if qty > domain.MaxQuantityPerLine {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity cannot exceed %d per item", domain.MaxQuantityPerLine))
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindLineIndex(productID)
	if idx < 0 {
		return nil, apperrors.NotFound("cart item", productID)
	}

	if qty <= 0 {
		cart.Lines = append(cart.Lines[:idx], cart.Lines[idx+1:]...)
	} else {
		cart.Lines[idx].Quantity = qty
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// Clear empties the cart. Invoked after a confirmed order submission, and
// available directly for an explicit user reset.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	// Publish event; log but do not fail on error.
	if err := s.producer.PublishCartCleared(ctx, userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared", slog.String("user_id", userID))

	return nil
}

func (s *CartService) emptyCart(userID string) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		ID:        uuid.New().String(),
		UserID:    userID,
		Lines:     []domain.CartLine{},
		Currency:  defaultCurrency,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.cartTTL),
	}
}

func (s *CartService) save(ctx context.Context, cart *domain.Cart) error {
	now := time.Now().UTC()
	cart.UpdatedAt = now
	cart.ExpiresAt = now.Add(s.cartTTL)

	if err := s.repo.Save(ctx, cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}

	// Publish event; log but do not fail on error.
	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("user_id", cart.UserID),
			slog.String("error", err.Error()),
		)
	}

	return nil
}
