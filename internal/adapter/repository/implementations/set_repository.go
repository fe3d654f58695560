package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/member-ledger/internal/commons"
	"github.com/api-sage/member-ledger/internal/domain"
)

// SetRepository is a read-only adapter over the platform's task-set catalog.
type SetRepository struct {
	db *sql.DB
}

func NewSetRepository(db *sql.DB) *SetRepository {
	return &SetRepository{db: db}
}

func (r *SetRepository) GetByID(ctx context.Context, id string) (domain.Set, error) {
	const query = `
SELECT id, name, max_tasks, set_amount
FROM sets
WHERE id = $1`

	var set domain.Set
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&set.ID,
		&set.Name,
		&set.MaxTasks,
		&set.SetAmount,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Set{}, commons.ErrRecordNotFound
		}
		return domain.Set{}, fmt.Errorf("get set by id: %w", err)
	}

	return set, nil
}

func (r *SetRepository) GetTask(ctx context.Context, setID string, position int) (domain.SetTask, error) {
	const query = `
SELECT id, set_id, position, title, price, commission_rate
FROM set_tasks
WHERE set_id = $1
  AND position = $2`

	var task domain.SetTask
	if err := r.db.QueryRowContext(ctx, query, setID, position).Scan(
		&task.ID,
		&task.SetID,
		&task.Position,
		&task.Title,
		&task.Price,
		&task.CommissionRate,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.SetTask{}, commons.ErrRecordNotFound
		}
		return domain.SetTask{}, fmt.Errorf("get set task by position: %w", err)
	}

	return task, nil
}
