package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet holds the spendable and reserved funds for a single member.
// Balance and LockedBalance are always non-negative; every mutation goes
// through the wallet repository's guarded delta, never a direct write.
type Wallet struct {
	ID            string
	MemberID      string
	Balance       decimal.Decimal
	LockedBalance decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
