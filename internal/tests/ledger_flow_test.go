package services_test

import (
	"context"
	"testing"

	"github.com/api-sage/member-ledger/internal/adapter/http/models"
	"github.com/api-sage/member-ledger/internal/domain"
	"github.com/api-sage/member-ledger/internal/usecase/services"
	"github.com/shopspring/decimal"
)

// TestLedgerFlowEndToEnd walks a member through the full earning cycle:
// deposit approval, withdrawal reservation and rejection, then a two-task set
// completed to the end.
func TestLedgerFlowEndToEnd(t *testing.T) {
	core := newLedgerCore()
	core.addMember(domain.Member{
		ID:                "m-1",
		Role:              domain.MemberRoleMember,
		ApprovalStatus:    domain.ApprovalStatusApproved,
		WithdrawPrivilege: true,
	})
	core.addSet(
		domain.Set{ID: "set-1", Name: "Starter Pack", MaxTasks: 2, SetAmount: decimal.RequireFromString("100")},
		[]domain.SetTask{
			{ID: "t-0", SetID: "set-1", Position: 0, Title: "Review product A", Price: decimal.RequireFromString("30")},
			{ID: "t-1", SetID: "set-1", Position: 1, Title: "Review product B", Price: decimal.RequireFromString("70")},
		},
	)

	depositSvc := services.NewDepositService(&fakeDepositRepo{core: core}, &fakeMemberRepo{core: core})
	withdrawalSvc := services.NewWithdrawalService(&fakeWithdrawalRepo{core: core}, &fakeMemberRepo{core: core})
	assignmentSvc := services.NewAssignmentService(&fakeAssignmentRepo{core: core}, &fakeSetRepo{core: core}, &fakeMemberRepo{core: core})

	ctx := context.Background()

	deposit, err := depositSvc.CreateDeposit(ctx, models.CreateDepositRequest{
		MemberID: "m-1",
		Amount:   "100",
		Method:   "bank_transfer",
	})
	if err != nil {
		t.Fatalf("create deposit: %v", err)
	}
	if _, err := depositSvc.ResolveDeposit(ctx, deposit.Data.ID, models.ResolveRequest{Action: "APPROVE"}); err != nil {
		t.Fatalf("approve deposit: %v", err)
	}
	assertBalances(t, core, "100", "0")

	withdrawal, err := withdrawalSvc.CreateWithdrawal(ctx, models.CreateWithdrawalRequest{
		MemberID:       "m-1",
		Amount:         "40",
		Method:         "bank_transfer",
		AccountDetails: "GTB 0123456789",
	})
	if err != nil {
		t.Fatalf("create withdrawal: %v", err)
	}
	assertBalances(t, core, "60", "40")

	if _, err := withdrawalSvc.ResolveWithdrawal(ctx, withdrawal.Data.ID, models.ResolveRequest{Action: "REJECT"}); err != nil {
		t.Fatalf("reject withdrawal: %v", err)
	}
	assertBalances(t, core, "100", "0")

	if _, err := assignmentSvc.AssignSet(ctx, models.AssignSetRequest{MemberID: "m-1", SetID: "set-1"}); err != nil {
		t.Fatalf("assign set: %v", err)
	}

	first, err := assignmentSvc.CompleteTask(ctx, "m-1")
	if err != nil {
		t.Fatalf("complete first task: %v", err)
	}
	if first.Data.CurrentTaskIndex != 1 || first.Data.Status != string(domain.AssignmentStatusActive) {
		t.Fatalf("expected index=1 status=ACTIVE, got index=%d status=%s", first.Data.CurrentTaskIndex, first.Data.Status)
	}
	assertBalances(t, core, "130", "0")

	second, err := assignmentSvc.CompleteTask(ctx, "m-1")
	if err != nil {
		t.Fatalf("complete second task: %v", err)
	}
	if second.Data.CurrentTaskIndex != 2 || second.Data.Status != string(domain.AssignmentStatusCompleted) {
		t.Fatalf("expected index=2 status=COMPLETED, got index=%d status=%s", second.Data.CurrentTaskIndex, second.Data.Status)
	}
	assertBalances(t, core, "200", "0")
}

func assertBalances(t *testing.T, core *ledgerCore, balance, locked string) {
	t.Helper()
	gotBalance, gotLocked := core.balances("m-1")
	if gotBalance.String() != balance || gotLocked.String() != locked {
		t.Fatalf("expected balance=%s locked=%s, got balance=%s locked=%s", balance, locked, gotBalance, gotLocked)
	}
}
