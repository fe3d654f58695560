package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/member-ledger/internal/commons"
	"github.com/api-sage/member-ledger/internal/domain"
	"github.com/api-sage/member-ledger/internal/logger"
)

type WithdrawalRepository struct {
	db *sql.DB
}

func NewWithdrawalRepository(db *sql.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

const withdrawalColumns = `id, member_id, amount, method, account_details, status, admin_note, created_at, reviewed_at`

// CreateWithReservation moves the amount from the spendable balance into the
// locked balance and inserts the pending request in one transaction. If the
// member cannot cover the amount the whole transaction rolls back and no
// request row exists.
func (r *WithdrawalRepository) CreateWithReservation(ctx context.Context, request domain.WithdrawalRequest) (domain.WithdrawalRequest, error) {
	logger.Info("withdrawal repository create with reservation", logger.Fields{
		"memberId": request.MemberID,
		"amount":   request.Amount,
		"method":   request.Method,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("withdrawal repository begin tx failed", err, nil)
		return domain.WithdrawalRequest{}, fmt.Errorf("begin withdrawal creation transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = ensureWallet(ctx, tx, request.MemberID); err != nil {
		return domain.WithdrawalRequest{}, err
	}

	if _, err = applyWalletDelta(ctx, tx, request.MemberID, request.Amount.Neg(), request.Amount); err != nil {
		return domain.WithdrawalRequest{}, err
	}

	const query = `
INSERT INTO withdrawal_requests (member_id, amount, method, account_details, status)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + withdrawalColumns

	var created domain.WithdrawalRequest
	created, err = scanWithdrawal(tx.QueryRowContext(
		ctx,
		query,
		request.MemberID,
		request.Amount,
		request.Method,
		request.AccountDetails,
		domain.RequestStatusPending,
	))
	if err != nil {
		err = fmt.Errorf("create withdrawal request: %w", err)
		return domain.WithdrawalRequest{}, err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("withdrawal repository commit tx failed", err, nil)
		return domain.WithdrawalRequest{}, fmt.Errorf("commit withdrawal creation transaction: %w", err)
	}

	logger.Info("withdrawal repository create success", logger.Fields{
		"requestId": created.ID,
		"memberId":  created.MemberID,
	})

	return created, nil
}

func (r *WithdrawalRepository) GetByID(ctx context.Context, id string) (domain.WithdrawalRequest, error) {
	const query = `
SELECT ` + withdrawalColumns + `
FROM withdrawal_requests
WHERE id = $1`

	request, err := scanWithdrawal(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.WithdrawalRequest{}, commons.ErrRecordNotFound
		}
		return domain.WithdrawalRequest{}, fmt.Errorf("get withdrawal request by id: %w", err)
	}

	return request, nil
}

func (r *WithdrawalRepository) ListByStatus(ctx context.Context, status domain.RequestStatus) ([]domain.WithdrawalRequest, error) {
	const query = `
SELECT ` + withdrawalColumns + `
FROM withdrawal_requests
WHERE ($1 = '' OR status = $1)
ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("list withdrawal requests: %w", err)
	}
	defer rows.Close()

	requests := make([]domain.WithdrawalRequest, 0)
	for rows.Next() {
		request, err := scanWithdrawal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan withdrawal request: %w", err)
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate withdrawal requests: %w", err)
	}

	return requests, nil
}

// Resolve claims the pending row and settles the reservation in the same
// transaction: approval forfeits the locked funds, rejection returns them to
// the spendable balance.
func (r *WithdrawalRepository) Resolve(ctx context.Context, id string, action domain.ResolutionAction, adminNote string) (domain.WithdrawalRequest, error) {
	logger.Info("withdrawal repository resolve", logger.Fields{
		"requestId": id,
		"action":    action,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("withdrawal repository begin tx failed", err, nil)
		return domain.WithdrawalRequest{}, fmt.Errorf("begin withdrawal resolution transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	status := domain.RequestStatusApproved
	if action == domain.ResolutionActionReject {
		status = domain.RequestStatusRejected
	}

	const claim = `
UPDATE withdrawal_requests
SET status = $2,
    admin_note = NULLIF($3, ''),
    reviewed_at = NOW()
WHERE id = $1
  AND status = $4
RETURNING ` + withdrawalColumns

	var resolved domain.WithdrawalRequest
	resolved, err = scanWithdrawal(tx.QueryRowContext(ctx, claim, id, status, adminNote, domain.RequestStatusPending))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = r.classifyUnclaimed(ctx, tx, id)
			return domain.WithdrawalRequest{}, err
		}
		err = fmt.Errorf("claim pending withdrawal request: %w", err)
		return domain.WithdrawalRequest{}, err
	}

	if action == domain.ResolutionActionApprove {
		_, err = applyWalletDelta(ctx, tx, resolved.MemberID, zeroAmount, resolved.Amount.Neg())
	} else {
		_, err = applyWalletDelta(ctx, tx, resolved.MemberID, resolved.Amount, resolved.Amount.Neg())
	}
	if err != nil {
		return domain.WithdrawalRequest{}, err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("withdrawal repository commit tx failed", err, nil)
		return domain.WithdrawalRequest{}, fmt.Errorf("commit withdrawal resolution transaction: %w", err)
	}

	logger.Info("withdrawal repository resolve success", logger.Fields{
		"requestId": resolved.ID,
		"status":    resolved.Status,
	})

	return resolved, nil
}

func (r *WithdrawalRepository) classifyUnclaimed(ctx context.Context, tx *sql.Tx, id string) error {
	var status domain.RequestStatus
	if err := tx.QueryRowContext(ctx, `SELECT status FROM withdrawal_requests WHERE id = $1`, id).Scan(&status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return commons.ErrRecordNotFound
		}
		return fmt.Errorf("check withdrawal request status: %w", err)
	}

	return commons.ErrAlreadyResolved
}

func scanWithdrawal(row rowScanner) (domain.WithdrawalRequest, error) {
	var request domain.WithdrawalRequest
	err := row.Scan(
		&request.ID,
		&request.MemberID,
		&request.Amount,
		&request.Method,
		&request.AccountDetails,
		&request.Status,
		&request.AdminNote,
		&request.CreatedAt,
		&request.ReviewedAt,
	)
	return request, err
}
