package repo_interfaces

import (
	"context"

	"github.com/api-sage/member-ledger/internal/domain"
)

// SetRepository reads the task-set catalog owned by the wider platform.
type SetRepository interface {
	GetByID(ctx context.Context, id string) (domain.Set, error)
	GetTask(ctx context.Context, setID string, position int) (domain.SetTask, error)
}
