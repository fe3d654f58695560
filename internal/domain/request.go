package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

type ResolutionAction string

const (
	ResolutionActionApprove ResolutionAction = "APPROVE"
	ResolutionActionReject  ResolutionAction = "REJECT"
)

// DepositRequest records a claimed inbound payment awaiting staff review.
// Funds reach the wallet only on approval; a rejected deposit never moved
// money, so rejection does not touch the wallet.
type DepositRequest struct {
	ID         string
	MemberID   string
	Amount     decimal.Decimal
	Method     string
	TxRef      *string
	ProofURL   *string
	Status     RequestStatus
	AdminNote  *string
	CreatedAt  time.Time
	ReviewedAt *time.Time
}

// WithdrawalRequest reserves funds the moment it is created: the amount moves
// from the spendable balance into the locked balance and stays there until a
// staff resolution releases or forfeits it.
type WithdrawalRequest struct {
	ID             string
	MemberID       string
	Amount         decimal.Decimal
	Method         string
	AccountDetails string
	Status         RequestStatus
	AdminNote      *string
	CreatedAt      time.Time
	ReviewedAt     *time.Time
}
