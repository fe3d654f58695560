package services_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/api-sage/member-ledger/internal/commons"
	"github.com/api-sage/member-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

// ledgerCore backs the fake repositories with a single lock so the fakes
// reproduce the storage layer's transactional behavior: each operation is
// atomic and concurrent duplicates observe each other's effects.
type ledgerCore struct {
	mu          sync.Mutex
	seq         int
	members     map[string]domain.Member
	wallets     map[string]*walletState
	deposits    map[string]*domain.DepositRequest
	withdrawals map[string]*domain.WithdrawalRequest
	assignments map[string]*domain.SetAssignment
	completions map[string]map[int]bool
	sets        map[string]domain.Set
	tasks       map[string]map[int]domain.SetTask
}

type walletState struct {
	balance decimal.Decimal
	locked  decimal.Decimal
}

func newLedgerCore() *ledgerCore {
	return &ledgerCore{
		members:     make(map[string]domain.Member),
		wallets:     make(map[string]*walletState),
		deposits:    make(map[string]*domain.DepositRequest),
		withdrawals: make(map[string]*domain.WithdrawalRequest),
		assignments: make(map[string]*domain.SetAssignment),
		completions: make(map[string]map[int]bool),
		sets:        make(map[string]domain.Set),
		tasks:       make(map[string]map[int]domain.SetTask),
	}
}

func (c *ledgerCore) nextID(prefix string) string {
	c.seq++
	return fmt.Sprintf("%s-%d", prefix, c.seq)
}

func (c *ledgerCore) wallet(memberID string) *walletState {
	w, ok := c.wallets[memberID]
	if !ok {
		w = &walletState{balance: decimal.Zero, locked: decimal.Zero}
		c.wallets[memberID] = w
	}
	return w
}

// applyDelta mirrors the guarded UPDATE: both balances must stay non-negative
// or nothing changes. Callers must hold c.mu.
func (c *ledgerCore) applyDelta(memberID string, balanceDelta, lockedDelta decimal.Decimal) error {
	w := c.wallet(memberID)
	newBalance := w.balance.Add(balanceDelta)
	newLocked := w.locked.Add(lockedDelta)
	if newBalance.IsNegative() || newLocked.IsNegative() {
		return commons.ErrInsufficientBalance
	}
	w.balance = newBalance
	w.locked = newLocked
	return nil
}

func (c *ledgerCore) addMember(member domain.Member) {
	c.members[member.ID] = member
}

func (c *ledgerCore) addSet(set domain.Set, tasks []domain.SetTask) {
	c.sets[set.ID] = set
	byPosition := make(map[int]domain.SetTask, len(tasks))
	for _, task := range tasks {
		byPosition[task.Position] = task
	}
	c.tasks[set.ID] = byPosition
}

func (c *ledgerCore) balances(memberID string) (decimal.Decimal, decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	w := c.wallet(memberID)
	return w.balance, w.locked
}

type fakeMemberRepo struct{ core *ledgerCore }

func (r *fakeMemberRepo) GetByID(_ context.Context, id string) (domain.Member, error) {
	r.core.mu.Lock()
	defer r.core.mu.Unlock()
	member, ok := r.core.members[id]
	if !ok {
		return domain.Member{}, commons.ErrRecordNotFound
	}
	return member, nil
}

type fakeSetRepo struct{ core *ledgerCore }

func (r *fakeSetRepo) GetByID(_ context.Context, id string) (domain.Set, error) {
	r.core.mu.Lock()
	defer r.core.mu.Unlock()
	set, ok := r.core.sets[id]
	if !ok {
		return domain.Set{}, commons.ErrRecordNotFound
	}
	return set, nil
}

func (r *fakeSetRepo) GetTask(_ context.Context, setID string, position int) (domain.SetTask, error) {
	r.core.mu.Lock()
	defer r.core.mu.Unlock()
	task, ok := r.core.tasks[setID][position]
	if !ok {
		return domain.SetTask{}, commons.ErrRecordNotFound
	}
	return task, nil
}

type fakeWalletRepo struct{ core *ledgerCore }

func (r *fakeWalletRepo) GetOrCreate(_ context.Context, memberID string) (domain.Wallet, error) {
	r.core.mu.Lock()
	defer r.core.mu.Unlock()
	w := r.core.wallet(memberID)
	return domain.Wallet{
		MemberID:      memberID,
		Balance:       w.balance,
		LockedBalance: w.locked,
		UpdatedAt:     time.Now(),
	}, nil
}

func (r *fakeWalletRepo) ApplyDelta(_ context.Context, memberID string, balanceDelta, lockedDelta decimal.Decimal) (domain.Wallet, error) {
	r.core.mu.Lock()
	defer r.core.mu.Unlock()
	if err := r.core.applyDelta(memberID, balanceDelta, lockedDelta); err != nil {
		return domain.Wallet{}, err
	}
	w := r.core.wallet(memberID)
	return domain.Wallet{
		MemberID:      memberID,
		Balance:       w.balance,
		LockedBalance: w.locked,
		UpdatedAt:     time.Now(),
	}, nil
}

type fakeDepositRepo struct{ core *ledgerCore }

func (r *fakeDepositRepo) Create(_ context.Context, request domain.DepositRequest) (domain.DepositRequest, error) {
	r.core.mu.Lock()
	defer r.core.mu.Unlock()
	request.ID = r.core.nextID("dep")
	request.Status = domain.RequestStatusPending
	request.CreatedAt = time.Now()
	stored := request
	r.core.deposits[request.ID] = &stored
	return request, nil
}

func (r *fakeDepositRepo) GetByID(_ context.Context, id string) (domain.DepositRequest, error) {
	r.core.mu.Lock()
	defer r.core.mu.Unlock()
	request, ok := r.core.deposits[id]
	if !ok {
		return domain.DepositRequest{}, commons.ErrRecordNotFound
	}
	return *request, nil
}

func (r *fakeDepositRepo) ListByStatus(_ context.Context, status domain.RequestStatus) ([]domain.DepositRequest, error) {
	r.core.mu.Lock()
	defer r.core.mu.Unlock()
	requests := make([]domain.DepositRequest, 0)
	for _, request := range r.core.deposits {
		if status == "" || request.Status == status {
			requests = append(requests, *request)
		}
	}
	return requests, nil
}

func (r *fakeDepositRepo) Resolve(_ context.Context, id string, action domain.ResolutionAction, adminNote string) (domain.DepositRequest, error) {
	r.core.mu.Lock()
	defer r.core.mu.Unlock()
	request, ok := r.core.deposits[id]
	if !ok {
		return domain.DepositRequest{}, commons.ErrRecordNotFound
	}
	if request.Status != domain.RequestStatusPending {
		return domain.DepositRequest{}, commons.ErrAlreadyResolved
	}
	if action == domain.ResolutionActionApprove {
		if err := r.core.applyDelta(request.MemberID, request.Amount, decimal.Zero); err != nil {
			return domain.DepositRequest{}, err
		}
		request.Status = domain.RequestStatusApproved
	} else {
		request.Status = domain.RequestStatusRejected
	}
	if adminNote != "" {
		request.AdminNote = &adminNote
	}
	now := time.Now()
	request.ReviewedAt = &now
	return *request, nil
}

type fakeWithdrawalRepo struct{ core *ledgerCore }

func (r *fakeWithdrawalRepo) CreateWithReservation(_ context.Context, request domain.WithdrawalRequest) (domain.WithdrawalRequest, error) {
	r.core.mu.Lock()
	defer r.core.mu.Unlock()
	if err := r.core.applyDelta(request.MemberID, request.Amount.Neg(), request.Amount); err != nil {
		return domain.WithdrawalRequest{}, err
	}
	request.ID = r.core.nextID("wd")
	request.Status = domain.RequestStatusPending
	request.CreatedAt = time.Now()
	stored := request
	r.core.withdrawals[request.ID] = &stored
	return request, nil
}

func (r *fakeWithdrawalRepo) GetByID(_ context.Context, id string) (domain.WithdrawalRequest, error) {
	r.core.mu.Lock()
	defer r.core.mu.Unlock()
	request, ok := r.core.withdrawals[id]
	if !ok {
		return domain.WithdrawalRequest{}, commons.ErrRecordNotFound
	}
	return *request, nil
}

func (r *fakeWithdrawalRepo) ListByStatus(_ context.Context, status domain.RequestStatus) ([]domain.WithdrawalRequest, error) {
	r.core.mu.Lock()
	defer r.core.mu.Unlock()
	requests := make([]domain.WithdrawalRequest, 0)
	for _, request := range r.core.withdrawals {
		if status == "" || request.Status == status {
			requests = append(requests, *request)
		}
	}
	return requests, nil
}

func (r *fakeWithdrawalRepo) Resolve(_ context.Context, id string, action domain.ResolutionAction, adminNote string) (domain.WithdrawalRequest, error) {
	r.core.mu.Lock()
	defer r.core.mu.Unlock()
	request, ok := r.core.withdrawals[id]
	if !ok {
		return domain.WithdrawalRequest{}, commons.ErrRecordNotFound
	}
	if request.Status != domain.RequestStatusPending {
		return domain.WithdrawalRequest{}, commons.ErrAlreadyResolved
	}
	if action == domain.ResolutionActionApprove {
		if err := r.core.applyDelta(request.MemberID, decimal.Zero, request.Amount.Neg()); err != nil {
			return domain.WithdrawalRequest{}, err
		}
		request.Status = domain.RequestStatusApproved
	} else {
		if err := r.core.applyDelta(request.MemberID, request.Amount, request.Amount.Neg()); err != nil {
			return domain.WithdrawalRequest{}, err
		}
		request.Status = domain.RequestStatusRejected
	}
	if adminNote != "" {
		request.AdminNote = &adminNote
	}
	now := time.Now()
	request.ReviewedAt = &now
	return *request, nil
}

type fakeAssignmentRepo struct{ core *ledgerCore }

func (r *fakeAssignmentRepo) Create(_ context.Context, memberID string, setID string) (domain.SetAssignment, error) {
	r.core.mu.Lock()
	defer r.core.mu.Unlock()
	for _, assignment := range r.core.assignments {
		if assignment.MemberID == memberID && assignment.Status == domain.AssignmentStatusActive {
			return domain.SetAssignment{}, commons.ErrAssignmentActive
		}
	}
	now := time.Now()
	assignment := domain.SetAssignment{
		ID:        r.core.nextID("asg"),
		MemberID:  memberID,
		SetID:     setID,
		Status:    domain.AssignmentStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	stored := assignment
	r.core.assignments[assignment.ID] = &stored
	return assignment, nil
}

func (r *fakeAssignmentRepo) GetActive(_ context.Context, memberID string) (domain.SetAssignment, error) {
	r.core.mu.Lock()
	defer r.core.mu.Unlock()
	for _, assignment := range r.core.assignments {
		if assignment.MemberID == memberID && assignment.Status == domain.AssignmentStatusActive {
			return *assignment, nil
		}
	}
	return domain.SetAssignment{}, commons.ErrRecordNotFound
}

func (r *fakeAssignmentRepo) GetLastCompleted(_ context.Context, memberID string) (domain.SetAssignment, error) {
	r.core.mu.Lock()
	defer r.core.mu.Unlock()
	var latest *domain.SetAssignment
	for _, assignment := range r.core.assignments {
		if assignment.MemberID != memberID || assignment.Status != domain.AssignmentStatusCompleted {
			continue
		}
		if latest == nil || assignment.UpdatedAt.After(latest.UpdatedAt) {
			latest = assignment
		}
	}
	if latest == nil {
		return domain.SetAssignment{}, commons.ErrRecordNotFound
	}
	return *latest, nil
}

func (r *fakeAssignmentRepo) CompleteCurrentTask(_ context.Context, memberID string) (domain.SetAssignment, error) {
	r.core.mu.Lock()
	defer r.core.mu.Unlock()

	var active *domain.SetAssignment
	hasCompleted := false
	for _, assignment := range r.core.assignments {
		if assignment.MemberID != memberID {
			continue
		}
		if assignment.Status == domain.AssignmentStatusActive {
			active = assignment
		}
		if assignment.Status == domain.AssignmentStatusCompleted {
			hasCompleted = true
		}
	}
	if active == nil {
		if hasCompleted {
			return domain.SetAssignment{}, commons.ErrAssignmentCompleted
		}
		return domain.SetAssignment{}, commons.ErrNoActiveAssignment
	}

	set, ok := r.core.sets[active.SetID]
	if !ok || active.CurrentTaskIndex >= set.MaxTasks {
		return domain.SetAssignment{}, commons.ErrSetExhausted
	}
	task, ok := r.core.tasks[active.SetID][active.CurrentTaskIndex]
	if !ok {
		return domain.SetAssignment{}, commons.ErrSetExhausted
	}

	done, ok := r.core.completions[active.ID]
	if !ok {
		done = make(map[int]bool)
		r.core.completions[active.ID] = done
	}
	if done[active.CurrentTaskIndex] {
		return domain.SetAssignment{}, commons.ErrAssignmentCompleted
	}
	done[active.CurrentTaskIndex] = true

	if err := r.core.applyDelta(memberID, task.Price, decimal.Zero); err != nil {
		return domain.SetAssignment{}, err
	}

	active.CurrentTaskIndex++
	if active.CurrentTaskIndex == set.MaxTasks {
		active.Status = domain.AssignmentStatusCompleted
	}
	active.UpdatedAt = time.Now()
	return *active, nil
}
