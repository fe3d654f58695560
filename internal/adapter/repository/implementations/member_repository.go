package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/member-ledger/internal/commons"
	"github.com/api-sage/member-ledger/internal/domain"
)

// MemberRepository is a read-only adapter over the platform's member
// directory. This service never writes member rows.
type MemberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) GetByID(ctx context.Context, id string) (domain.Member, error) {
	const query = `
SELECT id, role, approval_status, withdraw_privilege, transaction_pin_hash
FROM members
WHERE id = $1`

	var member domain.Member
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&member.ID,
		&member.Role,
		&member.ApprovalStatus,
		&member.WithdrawPrivilege,
		&member.TransactionPinHash,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Member{}, commons.ErrRecordNotFound
		}
		return domain.Member{}, fmt.Errorf("get member by id: %w", err)
	}

	return member, nil
}
