package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/api-sage/member-ledger/internal/adapter/http/models"
	"github.com/api-sage/member-ledger/internal/commons"
	"github.com/api-sage/member-ledger/internal/domain"
	"github.com/api-sage/member-ledger/internal/usecase/services"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func newWithdrawalFixture(balance string) (*ledgerCore, *services.WithdrawalService) {
	core := newLedgerCore()
	core.addMember(domain.Member{
		ID:                "m-1",
		Role:              domain.MemberRoleMember,
		ApprovalStatus:    domain.ApprovalStatusApproved,
		WithdrawPrivilege: true,
	})
	if balance != "" {
		core.wallet("m-1").balance = decimal.RequireFromString(balance)
	}
	svc := services.NewWithdrawalService(&fakeWithdrawalRepo{core: core}, &fakeMemberRepo{core: core})
	return core, svc
}

func TestWithdrawalServiceCreateWithdrawalValidationError(t *testing.T) {
	_, svc := newWithdrawalFixture("")

	_, err := svc.CreateWithdrawal(context.Background(), models.CreateWithdrawalRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty withdrawal request")
	}
}

func TestWithdrawalServiceCreateWithdrawalNotAllowed(t *testing.T) {
	core, svc := newWithdrawalFixture("100")
	core.addMember(domain.Member{
		ID:                "m-2",
		Role:              domain.MemberRoleMember,
		ApprovalStatus:    domain.ApprovalStatusApproved,
		WithdrawPrivilege: false,
	})

	_, err := svc.CreateWithdrawal(context.Background(), models.CreateWithdrawalRequest{
		MemberID:       "m-2",
		Amount:         "40",
		Method:         "bank_transfer",
		AccountDetails: "GTB 0123456789",
	})
	if !errors.Is(err, commons.ErrWithdrawNotAllowed) {
		t.Fatalf("expected ErrWithdrawNotAllowed, got %v", err)
	}
}

func TestWithdrawalServiceCreateWithdrawalInvalidPin(t *testing.T) {
	core, svc := newWithdrawalFixture("100")
	hash, err := bcrypt.GenerateFromPassword([]byte("4321"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash pin: %v", err)
	}
	pinHash := string(hash)
	core.addMember(domain.Member{
		ID:                 "m-3",
		Role:               domain.MemberRoleMember,
		ApprovalStatus:     domain.ApprovalStatusApproved,
		WithdrawPrivilege:  true,
		TransactionPinHash: &pinHash,
	})

	_, err = svc.CreateWithdrawal(context.Background(), models.CreateWithdrawalRequest{
		MemberID:       "m-3",
		Amount:         "40",
		Method:         "bank_transfer",
		AccountDetails: "GTB 0123456789",
		Pin:            "1111",
	})
	if !errors.Is(err, commons.ErrInvalidPin) {
		t.Fatalf("expected ErrInvalidPin, got %v", err)
	}
}

func TestWithdrawalServiceCreateWithdrawalInsufficientBalance(t *testing.T) {
	core, svc := newWithdrawalFixture("10")

	_, err := svc.CreateWithdrawal(context.Background(), models.CreateWithdrawalRequest{
		MemberID:       "m-1",
		Amount:         "40",
		Method:         "bank_transfer",
		AccountDetails: "GTB 0123456789",
	})
	if !errors.Is(err, commons.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	if len(core.withdrawals) != 0 {
		t.Fatalf("failed reservation must not create a request, got %d", len(core.withdrawals))
	}
	balance, locked := core.balances("m-1")
	if balance.String() != "10" || !locked.IsZero() {
		t.Fatalf("failed reservation must not move funds, got balance=%s locked=%s", balance, locked)
	}
}

func TestWithdrawalServiceCreateWithdrawalReservesFunds(t *testing.T) {
	core, svc := newWithdrawalFixture("100")

	response, err := svc.CreateWithdrawal(context.Background(), models.CreateWithdrawalRequest{
		MemberID:       "m-1",
		Amount:         "40",
		Method:         "bank_transfer",
		AccountDetails: "GTB 0123456789",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Data.Status != string(domain.RequestStatusPending) {
		t.Fatalf("expected PENDING status, got %s", response.Data.Status)
	}

	balance, locked := core.balances("m-1")
	if balance.String() != "60" || locked.String() != "40" {
		t.Fatalf("expected balance=60 locked=40, got balance=%s locked=%s", balance, locked)
	}
}

func TestWithdrawalServiceRejectRestoresFunds(t *testing.T) {
	core, svc := newWithdrawalFixture("100")

	created, _ := svc.CreateWithdrawal(context.Background(), models.CreateWithdrawalRequest{
		MemberID:       "m-1",
		Amount:         "40",
		Method:         "bank_transfer",
		AccountDetails: "GTB 0123456789",
	})

	resolved, err := svc.ResolveWithdrawal(context.Background(), created.Data.ID, models.ResolveRequest{Action: "REJECT"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Data.Status != string(domain.RequestStatusRejected) {
		t.Fatalf("expected REJECTED status, got %s", resolved.Data.Status)
	}

	balance, locked := core.balances("m-1")
	if balance.String() != "100" || !locked.IsZero() {
		t.Fatalf("expected balance=100 locked=0 after rejection, got balance=%s locked=%s", balance, locked)
	}
}

func TestWithdrawalServiceApproveReleasesLockedFunds(t *testing.T) {
	core, svc := newWithdrawalFixture("100")

	created, _ := svc.CreateWithdrawal(context.Background(), models.CreateWithdrawalRequest{
		MemberID:       "m-1",
		Amount:         "40",
		Method:         "bank_transfer",
		AccountDetails: "GTB 0123456789",
	})

	resolved, err := svc.ResolveWithdrawal(context.Background(), created.Data.ID, models.ResolveRequest{Action: "APPROVE"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Data.Status != string(domain.RequestStatusApproved) {
		t.Fatalf("expected APPROVED status, got %s", resolved.Data.Status)
	}

	balance, locked := core.balances("m-1")
	if balance.String() != "60" || !locked.IsZero() {
		t.Fatalf("expected balance=60 locked=0 after approval, got balance=%s locked=%s", balance, locked)
	}
}

func TestWithdrawalServiceResolveTwiceFails(t *testing.T) {
	core, svc := newWithdrawalFixture("100")

	created, _ := svc.CreateWithdrawal(context.Background(), models.CreateWithdrawalRequest{
		MemberID:       "m-1",
		Amount:         "40",
		Method:         "bank_transfer",
		AccountDetails: "GTB 0123456789",
	})

	if _, err := svc.ResolveWithdrawal(context.Background(), created.Data.ID, models.ResolveRequest{Action: "APPROVE"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.ResolveWithdrawal(context.Background(), created.Data.ID, models.ResolveRequest{Action: "REJECT"})
	if !errors.Is(err, commons.ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved, got %v", err)
	}

	balance, locked := core.balances("m-1")
	if balance.String() != "60" || !locked.IsZero() {
		t.Fatalf("second resolution must not touch the wallet, got balance=%s locked=%s", balance, locked)
	}
}
