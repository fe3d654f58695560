package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/member-ledger/internal/commons"
	"github.com/api-sage/member-ledger/internal/domain"
	"github.com/api-sage/member-ledger/internal/logger"
	"github.com/shopspring/decimal"
)

// querier is satisfied by both *sql.DB and *sql.Tx so the wallet delta can run
// inside whichever transaction the calling repository already holds.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// zeroAmount is the no-op side of a one-sided wallet delta.
var zeroAmount = decimal.Zero

type WalletRepository struct {
	db *sql.DB
}

func NewWalletRepository(db *sql.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) GetOrCreate(ctx context.Context, memberID string) (domain.Wallet, error) {
	logger.Info("wallet repository get or create", logger.Fields{
		"memberId": memberID,
	})

	if err := ensureWallet(ctx, r.db, memberID); err != nil {
		logger.Error("wallet repository ensure wallet failed", err, logger.Fields{
			"memberId": memberID,
		})
		return domain.Wallet{}, err
	}

	return getWallet(ctx, r.db, memberID)
}

func (r *WalletRepository) ApplyDelta(ctx context.Context, memberID string, balanceDelta decimal.Decimal, lockedDelta decimal.Decimal) (domain.Wallet, error) {
	logger.Info("wallet repository apply delta", logger.Fields{
		"memberId":     memberID,
		"balanceDelta": balanceDelta,
		"lockedDelta":  lockedDelta,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("wallet repository begin tx failed", err, nil)
		return domain.Wallet{}, fmt.Errorf("begin wallet delta transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = ensureWallet(ctx, tx, memberID); err != nil {
		return domain.Wallet{}, err
	}

	var wallet domain.Wallet
	wallet, err = applyWalletDelta(ctx, tx, memberID, balanceDelta, lockedDelta)
	if err != nil {
		return domain.Wallet{}, err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("wallet repository commit tx failed", err, nil)
		return domain.Wallet{}, fmt.Errorf("commit wallet delta transaction: %w", err)
	}

	return wallet, nil
}

func ensureWallet(ctx context.Context, q querier, memberID string) error {
	const query = `
INSERT INTO wallets (member_id)
VALUES ($1)
ON CONFLICT (member_id) DO NOTHING`

	if _, err := q.ExecContext(ctx, query, memberID); err != nil {
		return fmt.Errorf("ensure wallet for member: %w", err)
	}

	return nil
}

func getWallet(ctx context.Context, q querier, memberID string) (domain.Wallet, error) {
	const query = `
SELECT id, member_id, balance, locked_balance, created_at, updated_at
FROM wallets
WHERE member_id = $1`

	var wallet domain.Wallet
	if err := q.QueryRowContext(ctx, query, memberID).Scan(
		&wallet.ID,
		&wallet.MemberID,
		&wallet.Balance,
		&wallet.LockedBalance,
		&wallet.CreatedAt,
		&wallet.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Wallet{}, commons.ErrRecordNotFound
		}
		return domain.Wallet{}, fmt.Errorf("get wallet by member id: %w", err)
	}

	return wallet, nil
}

// applyWalletDelta is the single mutation path for wallet balances. The
// predicate keeps both balances non-negative; zero rows affected on an
// existing wallet means the delta would have broken the invariant.
func applyWalletDelta(ctx context.Context, q querier, memberID string, balanceDelta decimal.Decimal, lockedDelta decimal.Decimal) (domain.Wallet, error) {
	const query = `
UPDATE wallets
SET balance = balance + $2::numeric,
    locked_balance = locked_balance + $3::numeric,
    updated_at = NOW()
WHERE member_id = $1
  AND balance + $2::numeric >= 0
  AND locked_balance + $3::numeric >= 0
RETURNING id, member_id, balance, locked_balance, created_at, updated_at`

	var wallet domain.Wallet
	if err := q.QueryRowContext(ctx, query, memberID, balanceDelta, lockedDelta).Scan(
		&wallet.ID,
		&wallet.MemberID,
		&wallet.Balance,
		&wallet.LockedBalance,
		&wallet.CreatedAt,
		&wallet.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, getErr := getWallet(ctx, q, memberID); getErr != nil {
				return domain.Wallet{}, getErr
			}
			return domain.Wallet{}, commons.ErrInsufficientBalance
		}
		return domain.Wallet{}, fmt.Errorf("apply wallet delta: %w", err)
	}

	return wallet, nil
}
