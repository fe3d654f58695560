package repo_interfaces

import (
	"context"

	"github.com/api-sage/member-ledger/internal/domain"
)

type AssignmentRepository interface {
	Create(ctx context.Context, memberID string, setID string) (domain.SetAssignment, error)
	GetActive(ctx context.Context, memberID string) (domain.SetAssignment, error)
	GetLastCompleted(ctx context.Context, memberID string) (domain.SetAssignment, error)
	CompleteCurrentTask(ctx context.Context, memberID string) (domain.SetAssignment, error)
}
