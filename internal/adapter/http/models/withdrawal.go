package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type CreateWithdrawalRequest struct {
	MemberID       string `json:"memberId"`
	Amount         string `json:"amount"`
	Method         string `json:"method"`
	AccountDetails string `json:"accountDetails"`
	Pin            string `json:"pin,omitempty"`
}

func (r CreateWithdrawalRequest) Validate() error {
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

	if strings.TrimSpace(r.AccountDetails) == "" {
		errs = append(errs, "accountDetails is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type WithdrawalResponse struct {
	ID             string `json:"id"`
	MemberID       string `json:"memberId"`
	Amount         string `json:"amount"`
	Method         string `json:"method"`
	AccountDetails string `json:"accountDetails"`
	Status         string `json:"status"`
	AdminNote      string `json:"adminNote,omitempty"`
	CreatedAt      string `json:"createdAt"`
	ReviewedAt     string `json:"reviewedAt,omitempty"`
}

type ListWithdrawalsResponse struct {
	Withdrawals []WithdrawalResponse `json:"withdrawals"`
}
