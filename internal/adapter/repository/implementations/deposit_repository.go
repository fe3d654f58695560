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

type DepositRepository struct {
	db *sql.DB
}

func NewDepositRepository(db *sql.DB) *DepositRepository {
	return &DepositRepository{db: db}
}

const depositColumns = `id, member_id, amount, method, tx_ref, proof_url, status, admin_note, created_at, reviewed_at`

func (r *DepositRepository) Create(ctx context.Context, request domain.DepositRequest) (domain.DepositRequest, error) {
	logger.Info("deposit repository create", logger.Fields{
		"memberId": request.MemberID,
		"amount":   request.Amount,
		"method":   request.Method,
	})

	const query = `
INSERT INTO deposit_requests (member_id, amount, method, tx_ref, proof_url, status)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + depositColumns

	created, err := scanDeposit(r.db.QueryRowContext(
		ctx,
		query,
		request.MemberID,
		request.Amount,
		request.Method,
		request.TxRef,
		request.ProofURL,
		domain.RequestStatusPending,
	))
	if err != nil {
		logger.Error("deposit repository create failed", err, logger.Fields{
			"memberId": request.MemberID,
		})
		return domain.DepositRequest{}, fmt.Errorf("create deposit request: %w", err)
	}

	logger.Info("deposit repository create success", logger.Fields{
		"requestId": created.ID,
		"memberId":  created.MemberID,
	})

	return created, nil
}

func (r *DepositRepository) GetByID(ctx context.Context, id string) (domain.DepositRequest, error) {
	const query = `
SELECT ` + depositColumns + `
FROM deposit_requests
WHERE id = $1`

	request, err := scanDeposit(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.DepositRequest{}, commons.ErrRecordNotFound
		}
		return domain.DepositRequest{}, fmt.Errorf("get deposit request by id: %w", err)
	}

	return request, nil
}

func (r *DepositRepository) ListByStatus(ctx context.Context, status domain.RequestStatus) ([]domain.DepositRequest, error) {
	const query = `
SELECT ` + depositColumns + `
FROM deposit_requests
WHERE ($1 = '' OR status = $1)
ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("list deposit requests: %w", err)
	}
	defer rows.Close()

	requests := make([]domain.DepositRequest, 0)
	for rows.Next() {
		request, err := scanDeposit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deposit request: %w", err)
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deposit requests: %w", err)
	}

	return requests, nil
}

// Resolve claims the pending row and, on approval, credits the wallet inside
// the same transaction. A second resolution of the same request finds no
// pending row to claim and fails without touching the wallet.
func (r *DepositRepository) Resolve(ctx context.Context, id string, action domain.ResolutionAction, adminNote string) (domain.DepositRequest, error) {
	logger.Info("deposit repository resolve", logger.Fields{
		"requestId": id,
		"action":    action,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("deposit repository begin tx failed", err, nil)
		return domain.DepositRequest{}, fmt.Errorf("begin deposit resolution transaction: %w", err)
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
UPDATE deposit_requests
SET status = $2,
    admin_note = NULLIF($3, ''),
    reviewed_at = NOW()
WHERE id = $1
  AND status = $4
RETURNING ` + depositColumns

	var resolved domain.DepositRequest
	resolved, err = scanDeposit(tx.QueryRowContext(ctx, claim, id, status, adminNote, domain.RequestStatusPending))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = r.classifyUnclaimed(ctx, tx, id)
			return domain.DepositRequest{}, err
		}
		err = fmt.Errorf("claim pending deposit request: %w", err)
		return domain.DepositRequest{}, err
	}

	if action == domain.ResolutionActionApprove {
		if err = ensureWallet(ctx, tx, resolved.MemberID); err != nil {
			return domain.DepositRequest{}, err
		}
		if _, err = applyWalletDelta(ctx, tx, resolved.MemberID, resolved.Amount, zeroAmount); err != nil {
			return domain.DepositRequest{}, err
		}
	}

	if err = tx.Commit(); err != nil {
		logger.Error("deposit repository commit tx failed", err, nil)
		return domain.DepositRequest{}, fmt.Errorf("commit deposit resolution transaction: %w", err)
	}

	logger.Info("deposit repository resolve success", logger.Fields{
		"requestId": resolved.ID,
		"status":    resolved.Status,
	})

	return resolved, nil
}

func (r *DepositRepository) classifyUnclaimed(ctx context.Context, tx *sql.Tx, id string) error {
	var status domain.RequestStatus
	if err := tx.QueryRowContext(ctx, `SELECT status FROM deposit_requests WHERE id = $1`, id).Scan(&status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return commons.ErrRecordNotFound
		}
		return fmt.Errorf("check deposit request status: %w", err)
	}

	return commons.ErrAlreadyResolved
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeposit(row rowScanner) (domain.DepositRequest, error) {
	var request domain.DepositRequest
	err := row.Scan(
		&request.ID,
		&request.MemberID,
		&request.Amount,
		&request.Method,
		&request.TxRef,
		&request.ProofURL,
		&request.Status,
		&request.AdminNote,
		&request.CreatedAt,
		&request.ReviewedAt,
	)
	return request, err
}
