package service_interfaces

import (
	"context"

	"github.com/api-sage/member-ledger/internal/adapter/http/models"
	"github.com/api-sage/member-ledger/internal/commons"
)

type WalletService interface {
	GetWallet(ctx context.Context, memberID string) (commons.Response[models.WalletResponse], error)
}
