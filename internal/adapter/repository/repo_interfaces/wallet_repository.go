package repo_interfaces

import (
	"context"

	"github.com/api-sage/member-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

type WalletRepository interface {
	GetOrCreate(ctx context.Context, memberID string) (domain.Wallet, error)
	ApplyDelta(ctx context.Context, memberID string, balanceDelta decimal.Decimal, lockedDelta decimal.Decimal) (domain.Wallet, error)
}
