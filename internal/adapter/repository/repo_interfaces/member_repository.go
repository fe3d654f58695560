package repo_interfaces

import (
	"context"

	"github.com/api-sage/member-ledger/internal/domain"
)

// MemberRepository reads the member directory owned by the wider platform.
type MemberRepository interface {
	GetByID(ctx context.Context, id string) (domain.Member, error)
}
