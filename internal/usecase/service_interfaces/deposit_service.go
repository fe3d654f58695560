package service_interfaces

import (
	"context"

	"github.com/api-sage/member-ledger/internal/adapter/http/models"
	"github.com/api-sage/member-ledger/internal/commons"
)

type DepositService interface {
	CreateDeposit(ctx context.Context, req models.CreateDepositRequest) (commons.Response[models.DepositResponse], error)
	ResolveDeposit(ctx context.Context, requestID string, req models.ResolveRequest) (commons.Response[models.DepositResponse], error)
	ListDeposits(ctx context.Context, status string) (commons.Response[models.ListDepositsResponse], error)
}
