package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spicebloom/storefront/internal/domain"
	apperrors "github.com/spicebloom/storefront/pkg/errors"
)

// WalletRepository implements repository.WalletRepository using PostgreSQL.
// Every balance change writes its ledger entry in the same transaction.
type WalletRepository struct {
	pool DB
}

// NewWalletRepository creates a new PostgreSQL-backed wallet repository.
func NewWalletRepository(pool DB) *WalletRepository {
	return &WalletRepository{pool: pool}
}

// GetOrCreate returns the wallet for a user, creating a zero-balance wallet
// if none exists.
func (r *WalletRepository) GetOrCreate(ctx context.Context, userID string) (*domain.Wallet, error) {
	query := `
		INSERT INTO wallets (user_id, balance, updated_at)
		VALUES ($1, 0, $2)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING user_id, balance, updated_at`

	var w domain.Wallet
	err := r.pool.QueryRow(ctx, query, userID, time.Now().UTC()).Scan(&w.UserID, &w.Balance, &w.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get or create wallet: %w", err)
	}

	return &w, nil
}

// Credit adds amount to the wallet balance and records a ledger entry.
func (r *WalletRepository) Credit(ctx context.Context, userID string, amount int64, reference, txType string) (*domain.Wallet, error) {
	if amount <= 0 {
		return nil, apperrors.InvalidInput("credit amount must be greater than 0")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin credit tx: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()

	query := `
		INSERT INTO wallets (user_id, balance, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET balance = wallets.balance + $2, updated_at = $3
		RETURNING user_id, balance, updated_at`

	var w domain.Wallet
	if err := tx.QueryRow(ctx, query, userID, amount, now).Scan(&w.UserID, &w.Balance, &w.UpdatedAt); err != nil {
		return nil, fmt.Errorf("credit wallet: %w", err)
	}

	if err := insertLedgerEntry(ctx, tx, &domain.WalletTransaction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      txType,
		Amount:    amount,
		Reference: reference,
		Status:    domain.WalletTxStatusSucceeded,
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit credit tx: %w", err)
	}

	return &w, nil
}

// Debit subtracts amount from the wallet balance iff the balance covers it.
// The conditional UPDATE makes the balance check and the deduction atomic.
func (r *WalletRepository) Debit(ctx context.Context, userID string, amount int64, reference string) (*domain.Wallet, error) {
	if amount <= 0 {
		return nil, apperrors.InvalidInput("debit amount must be greater than 0")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin debit tx: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()

	query := `
		UPDATE wallets
		SET balance = balance - $1, updated_at = $2
		WHERE user_id = $3 AND balance >= $1
		RETURNING user_id, balance, updated_at`

	var w domain.Wallet
	err = tx.QueryRow(ctx, query, amount, now, userID).Scan(&w.UserID, &w.Balance, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.InsufficientBalance("wallet balance does not cover the requested amount")
		}
		return nil, fmt.Errorf("debit wallet: %w", err)
	}

	if err := insertLedgerEntry(ctx, tx, &domain.WalletTransaction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      domain.WalletTxTypeDebit,
		Amount:    amount,
		Reference: reference,
		Status:    domain.WalletTxStatusSucceeded,
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit debit tx: %w", err)
	}

	return &w, nil
}

// RecordPendingTopUp inserts a pending top-up ledger entry.
func (r *WalletRepository) RecordPendingTopUp(ctx context.Context, wt *domain.WalletTransaction) error {
	query := `
		INSERT INTO wallet_transactions (id, user_id, type, amount, reference, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		wt.ID,
		wt.UserID,
		wt.Type,
		wt.Amount,
		wt.Reference,
		wt.Status,
		wt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pending top-up: %w", err)
	}

	return nil
}

// SettleTopUp marks the pending top-up with the given reference as succeeded
// and credits its amount, atomically. Settling an already-settled reference
// returns the wallet unchanged, so gateway callback retries are harmless.
func (r *WalletRepository) SettleTopUp(ctx context.Context, userID, reference string) (*domain.Wallet, *domain.WalletTransaction, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin settle tx: %w", err)
	}
	defer tx.Rollback(ctx)

	wt := domain.WalletTransaction{
		UserID:    userID,
		Type:      domain.WalletTxTypeTopUp,
		Reference: reference,
	}
	err = tx.QueryRow(ctx,
		`SELECT id, amount, status, created_at FROM wallet_transactions WHERE user_id = $1 AND reference = $2 FOR UPDATE`,
		userID, reference,
	).Scan(&wt.ID, &wt.Amount, &wt.Status, &wt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NotFound("wallet top-up", reference)
		}
		return nil, nil, fmt.Errorf("lock top-up row: %w", err)
	}

	now := time.Now().UTC()

	if wt.Status == domain.WalletTxStatusSucceeded {
		var w domain.Wallet
		if err := tx.QueryRow(ctx,
			`SELECT user_id, balance, updated_at FROM wallets WHERE user_id = $1`,
			userID,
		).Scan(&w.UserID, &w.Balance, &w.UpdatedAt); err != nil {
			return nil, nil, fmt.Errorf("read settled wallet: %w", err)
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, nil, fmt.Errorf("commit settle tx: %w", err)
		}
		return &w, &wt, nil
	}

	if wt.Status != domain.WalletTxStatusPending {
		return nil, nil, apperrors.Conflict("top-up is not in a settleable state")
	}

	if _, err := tx.Exec(ctx,
		`UPDATE wallet_transactions SET status = $1 WHERE user_id = $2 AND reference = $3`,
		domain.WalletTxStatusSucceeded, userID, reference,
	); err != nil {
		return nil, nil, fmt.Errorf("mark top-up succeeded: %w", err)
	}
	wt.Status = domain.WalletTxStatusSucceeded

	query := `
		INSERT INTO wallets (user_id, balance, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET balance = wallets.balance + $2, updated_at = $3
		RETURNING user_id, balance, updated_at`

	var w domain.Wallet
	if err := tx.QueryRow(ctx, query, userID, wt.Amount, now).Scan(&w.UserID, &w.Balance, &w.UpdatedAt); err != nil {
		return nil, nil, fmt.Errorf("credit settled top-up: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit settle tx: %w", err)
	}

	return &w, &wt, nil
}

// ListTransactions returns a page of ledger entries, newest first, with the total count.
func (r *WalletRepository) ListTransactions(ctx context.Context, userID string, page, perPage int) ([]*domain.WalletTransaction, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM wallet_transactions WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count wallet transactions: %w", err)
	}

	offset := (page - 1) * perPage
	query := `
		SELECT id, user_id, type, amount, reference, status, created_at
		FROM wallet_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, userID, perPage, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list wallet transactions: %w", err)
	}
	defer rows.Close()

	var txs []*domain.WalletTransaction
	for rows.Next() {
		var wt domain.WalletTransaction
		if err := rows.Scan(&wt.ID, &wt.UserID, &wt.Type, &wt.Amount, &wt.Reference, &wt.Status, &wt.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan wallet transaction: %w", err)
		}
		txs = append(txs, &wt)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate wallet transaction rows: %w", err)
	}

	if txs == nil {
		txs = []*domain.WalletTransaction{}
	}

	return txs, total, nil
}

// insertLedgerEntry writes one wallet_transactions row inside an open transaction.
func insertLedgerEntry(ctx context.Context, tx pgx.Tx, wt *domain.WalletTransaction) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO wallet_transactions (id, user_id, type, amount, reference, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		wt.ID, wt.UserID, wt.Type, wt.Amount, wt.Reference, wt.Status, wt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}
