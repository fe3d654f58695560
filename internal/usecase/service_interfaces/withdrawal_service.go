package service_interfaces

import (
	"context"

	"github.com/api-sage/member-ledger/internal/adapter/http/models"
	"github.com/api-sage/member-ledger/internal/commons"
)

type WithdrawalService interface {
	CreateWithdrawal(ctx context.Context, req models.CreateWithdrawalRequest) (commons.Response[models.WithdrawalResponse], error)
	ResolveWithdrawal(ctx context.Context, requestID string, req models.ResolveRequest) (commons.Response[models.WithdrawalResponse], error)
	ListWithdrawals(ctx context.Context, status string) (commons.Response[models.ListWithdrawalsResponse], error)
}
