package repo_interfaces

import (
	"context"

	"github.com/api-sage/member-ledger/internal/domain"
)

type WithdrawalRepository interface {
	CreateWithReservation(ctx context.Context, request domain.WithdrawalRequest) (domain.WithdrawalRequest, error)
	GetByID(ctx context.Context, id string) (domain.WithdrawalRequest, error)
	ListByStatus(ctx context.Context, status domain.RequestStatus) ([]domain.WithdrawalRequest, error)
	Resolve(ctx context.Context, id string, action domain.ResolutionAction, adminNote string) (domain.WithdrawalRequest, error)
}
