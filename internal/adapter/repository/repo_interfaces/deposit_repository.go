package repo_interfaces

import (
	"context"

	"github.com/api-sage/member-ledger/internal/domain"
)

type DepositRepository interface {
	Create(ctx context.Context, request domain.DepositRequest) (domain.DepositRequest, error)
	GetByID(ctx context.Context, id string) (domain.DepositRequest, error)
	ListByStatus(ctx context.Context, status domain.RequestStatus) ([]domain.DepositRequest, error)
	Resolve(ctx context.Context, id string, action domain.ResolutionAction, adminNote string) (domain.DepositRequest, error)
}
