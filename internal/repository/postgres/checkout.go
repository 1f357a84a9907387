package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spicebloom/storefront/internal/domain"
	apperrors "github.com/spicebloom/storefront/pkg/errors"
)

// CheckoutRepository implements repository.CheckoutRepository using PostgreSQL.
type CheckoutRepository struct {
	pool DB
}

// NewCheckoutRepository creates a new PostgreSQL-backed checkout repository.
func NewCheckoutRepository(pool DB) *CheckoutRepository {
	return &CheckoutRepository{pool: pool}
}

// Create inserts a new checkout session into the database.
func (r *CheckoutRepository) Create(ctx context.Context, session *domain.CheckoutSession) error {
	shippingJSON, err := json.Marshal(session.ShippingAddress)
	if err != nil {
		return fmt.Errorf("marshal shipping address: %w", err)
	}

	paymentJSON, err := json.Marshal(session.Payment)
	if err != nil {
		return fmt.Errorf("marshal payment selection: %w", err)
	}

	totalsJSON, err := json.Marshal(session.Totals)
	if err != nil {
		return fmt.Errorf("marshal totals: %w", err)
	}

	query := `
		INSERT INTO checkout_sessions (
			id, user_id, step, status,
			selected_address_id, shipping_address, payment, totals,
			submission_key, gateway_order_id, order_id, failure_reason,
			expires_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8,
			$9, $10, $11, $12,
			$13, $14, $15
		)`

	_, err = r.pool.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.Step,
		session.Status,
		nullableString(session.SelectedAddressID),
		shippingJSON,
		paymentJSON,
		totalsJSON,
		session.SubmissionKey,
		nullableString(session.GatewayOrderID),
		nullableString(session.OrderID),
		nullableString(session.FailureReason),
		session.ExpiresAt,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert checkout session: %w", err)
	}

	return nil
}

// GetByID retrieves a checkout session by its ID.
func (r *CheckoutRepository) GetByID(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	query := `
		SELECT id, user_id, step, status,
			selected_address_id, shipping_address, payment, totals,
			submission_key, gateway_order_id, order_id, failure_reason,
			expires_at, created_at, updated_at
		FROM checkout_sessions
		WHERE id = $1`

	return r.scanSession(ctx, query, id)
}

// Update modifies an existing checkout session in the database.
func (r *CheckoutRepository) Update(ctx context.Context, session *domain.CheckoutSession) error {
	shippingJSON, err := json.Marshal(session.ShippingAddress)
	if err != nil {
		return fmt.Errorf("marshal shipping address: %w", err)
	}

	paymentJSON, err := json.Marshal(session.Payment)
	if err != nil {
		return fmt.Errorf("marshal payment selection: %w", err)
	}

	totalsJSON, err := json.Marshal(session.Totals)
	if err != nil {
		return fmt.Errorf("marshal totals: %w", err)
	}

	session.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE checkout_sessions
		SET step = $1, status = $2,
			selected_address_id = $3, shipping_address = $4, payment = $5, totals = $6,
			gateway_order_id = $7, order_id = $8, failure_reason = $9,
			expires_at = $10, updated_at = $11
		WHERE id = $12`

	ct, err := r.pool.Exec(ctx, query,
		session.Step,
		session.Status,
		nullableString(session.SelectedAddressID),
		shippingJSON,
		paymentJSON,
		totalsJSON,
		nullableString(session.GatewayOrderID),
		nullableString(session.OrderID),
		nullableString(session.FailureReason),
		session.ExpiresAt,
		session.UpdatedAt,
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("update checkout session: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("checkout_session", session.ID)
	}

	return nil
}

// scanSession executes a query expected to return a single checkout session row.
func (r *CheckoutRepository) scanSession(ctx context.Context, query string, args ...any) (*domain.CheckoutSession, error) {
	var (
		session           domain.CheckoutSession
		selectedAddressID *string
		shippingJSON      []byte
		paymentJSON       []byte
		totalsJSON        []byte
		gatewayOrderID    *string
		orderID           *string
		failureReason     *string
	)

	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&session.ID,
		&session.UserID,
		&session.Step,
		&session.Status,
		&selectedAddressID,
		&shippingJSON,
		&paymentJSON,
		&totalsJSON,
		&session.SubmissionKey,
		&gatewayOrderID,
		&orderID,
		&failureReason,
		&session.ExpiresAt,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan checkout session: %w", err)
	}

	if len(shippingJSON) > 0 {
		if err := json.Unmarshal(shippingJSON, &session.ShippingAddress); err != nil {
			return nil, fmt.Errorf("unmarshal shipping address: %w", err)
		}
	}
	if len(paymentJSON) > 0 {
		if err := json.Unmarshal(paymentJSON, &session.Payment); err != nil {
			return nil, fmt.Errorf("unmarshal payment selection: %w", err)
		}
	}
	if len(totalsJSON) > 0 {
		if err := json.Unmarshal(totalsJSON, &session.Totals); err != nil {
			return nil, fmt.Errorf("unmarshal totals: %w", err)
		}
	}

	if selectedAddressID != nil {
		session.SelectedAddressID = *selectedAddressID
	}
	if gatewayOrderID != nil {
		session.GatewayOrderID = *gatewayOrderID
	}
	if orderID != nil {
		session.OrderID = *orderID
	}
	if failureReason != nil {
		session.FailureReason = *failureReason
	}

	return &session, nil
}

// nullableString converts an empty string to a nil pointer for NULL columns.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
