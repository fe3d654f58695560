package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type CreateDepositRequest struct {
	MemberID string `json:"memberId"`
	Amount   string `json:"amount"`
	Method   string `json:"method"`
	TxRef    string `json:"txRef,omitempty"`
	ProofURL string `json:"proofUrl,omitempty"`
}

func (r CreateDepositRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.MemberID) == "" {
		errs = append(errs, "memberId is required")
	}

	amount := strings.TrimSpace(r.Amount)
	if amount == "" {
		errs = append(errs, "amount is required")
	} else if parsed, err := decimal.NewFromString(amount); err != nil {
		errs = append(errs, "amount must be a valid number")
	} else if !parsed.IsPositive() {
		errs = append(errs, "amount must be greater than zero")
	}

	if strings.TrimSpace(r.Method) == "" {
		errs = append(errs, "method is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type DepositResponse struct {
	ID         string `json:"id"`
	MemberID   string `json:"memberId"`
	Amount     string `json:"amount"`
	Method     string `json:"method"`
	TxRef      string `json:"txRef,omitempty"`
	ProofURL   string `json:"proofUrl,omitempty"`
	Status     string `json:"status"`
	AdminNote  string `json:"adminNote,omitempty"`
	CreatedAt  string `json:"createdAt"`
	ReviewedAt string `json:"reviewedAt,omitempty"`
}

type ListDepositsResponse struct {
	Deposits []DepositResponse `json:"deposits"`
}
