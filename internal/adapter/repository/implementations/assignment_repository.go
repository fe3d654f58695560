package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/member-ledger/internal/commons"
	"github.com/api-sage/member-ledger/internal/domain"
	"github.com/api-sage/member-ledger/internal/logger"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type AssignmentRepository struct {
	db *sql.DB
}

func NewAssignmentRepository(db *sql.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

const assignmentColumns = `id, member_id, set_id, status, current_task_index, created_at, updated_at`

// Create relies on the partial unique index over (member_id) WHERE status =
// 'ACTIVE': two concurrent assigns for the same member cannot both insert, and
// the loser surfaces as ErrAssignmentActive.
func (r *AssignmentRepository) Create(ctx context.Context, memberID string, setID string) (domain.SetAssignment, error) {
	logger.Info("assignment repository create", logger.Fields{
		"memberId": memberID,
		"setId":    setID,
	})

	const query = `
INSERT INTO set_assignments (member_id, set_id, status, current_task_index)
VALUES ($1, $2, $3, 0)
RETURNING ` + assignmentColumns

	assignment, err := scanAssignment(r.db.QueryRowContext(ctx, query, memberID, setID, domain.AssignmentStatusActive))
	if err != nil {
		if isUniqueViolation(err) {
			logger.Info("assignment repository member already active", logger.Fields{
				"memberId": memberID,
			})
			return domain.SetAssignment{}, commons.ErrAssignmentActive
		}
		logger.Error("assignment repository create failed", err, logger.Fields{
			"memberId": memberID,
			"setId":    setID,
		})
		return domain.SetAssignment{}, fmt.Errorf("create set assignment: %w", err)
	}

	logger.Info("assignment repository create success", logger.Fields{
		"assignmentId": assignment.ID,
		"memberId":     assignment.MemberID,
	})

	return assignment, nil
}

func (r *AssignmentRepository) GetActive(ctx context.Context, memberID string) (domain.SetAssignment, error) {
	const query = `
SELECT ` + assignmentColumns + `
FROM set_assignments
WHERE member_id = $1
  AND status = $2`

	assignment, err := scanAssignment(r.db.QueryRowContext(ctx, query, memberID, domain.AssignmentStatusActive))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.SetAssignment{}, commons.ErrRecordNotFound
		}
		return domain.SetAssignment{}, fmt.Errorf("get active assignment: %w", err)
	}

	return assignment, nil
}

func (r *AssignmentRepository) GetLastCompleted(ctx context.Context, memberID string) (domain.SetAssignment, error) {
	const query = `
SELECT ` + assignmentColumns + `
FROM set_assignments
WHERE member_id = $1
  AND status = $2
ORDER BY updated_at DESC
LIMIT 1`

	assignment, err := scanAssignment(r.db.QueryRowContext(ctx, query, memberID, domain.AssignmentStatusCompleted))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.SetAssignment{}, commons.ErrRecordNotFound
		}
		return domain.SetAssignment{}, fmt.Errorf("get last completed assignment: %w", err)
	}

	return assignment, nil
}

// CompleteCurrentTask advances the cursor, records the completion and credits
// the task price in one transaction. The row lock on the active assignment
// serializes concurrent completion calls for the same member, and the unique
// (assignment_id, task_index) pair guarantees a task index is credited once.
func (r *AssignmentRepository) CompleteCurrentTask(ctx context.Context, memberID string) (domain.SetAssignment, error) {
	logger.Info("assignment repository complete current task", logger.Fields{
		"memberId": memberID,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("assignment repository begin tx failed", err, nil)
		return domain.SetAssignment{}, fmt.Errorf("begin task completion transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const lockQuery = `
SELECT a.id, a.set_id, a.current_task_index, s.max_tasks
FROM set_assignments a
JOIN sets s ON s.id = a.set_id
WHERE a.member_id = $1
  AND a.status = $2
FOR UPDATE OF a`

	var assignmentID string
	var setID string
	var taskIndex int
	var maxTasks int
	err = tx.QueryRowContext(ctx, lockQuery, memberID, domain.AssignmentStatusActive).Scan(&assignmentID, &setID, &taskIndex, &maxTasks)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = r.classifyInactive(ctx, tx, memberID)
			return domain.SetAssignment{}, err
		}
		err = fmt.Errorf("lock active assignment: %w", err)
		return domain.SetAssignment{}, err
	}

	if taskIndex >= maxTasks {
		err = commons.ErrSetExhausted
		return domain.SetAssignment{}, err
	}

	const taskQuery = `
SELECT price
FROM set_tasks
WHERE set_id = $1
  AND position = $2`

	var price decimal.Decimal
	err = tx.QueryRowContext(ctx, taskQuery, setID, taskIndex).Scan(&price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = commons.ErrSetExhausted
			return domain.SetAssignment{}, err
		}
		err = fmt.Errorf("get task at current index: %w", err)
		return domain.SetAssignment{}, err
	}

	const recordQuery = `
INSERT INTO task_completions (assignment_id, task_index, credited_amount)
VALUES ($1, $2, $3)`

	if _, err = tx.ExecContext(ctx, recordQuery, assignmentID, taskIndex, price); err != nil {
		if isUniqueViolation(err) {
			err = commons.ErrAssignmentCompleted
			return domain.SetAssignment{}, err
		}
		err = fmt.Errorf("record task completion: %w", err)
		return domain.SetAssignment{}, err
	}

	status := domain.AssignmentStatusActive
	if taskIndex+1 == maxTasks {
		status = domain.AssignmentStatusCompleted
	}

	const advanceQuery = `
UPDATE set_assignments
SET current_task_index = $2,
    status = $3,
    updated_at = NOW()
WHERE id = $1
RETURNING ` + assignmentColumns

	var assignment domain.SetAssignment
	assignment, err = scanAssignment(tx.QueryRowContext(ctx, advanceQuery, assignmentID, taskIndex+1, status))
	if err != nil {
		err = fmt.Errorf("advance assignment cursor: %w", err)
		return domain.SetAssignment{}, err
	}

	if err = ensureWallet(ctx, tx, memberID); err != nil {
		return domain.SetAssignment{}, err
	}
	if _, err = applyWalletDelta(ctx, tx, memberID, price, zeroAmount); err != nil {
		return domain.SetAssignment{}, err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("assignment repository commit tx failed", err, nil)
		return domain.SetAssignment{}, fmt.Errorf("commit task completion transaction: %w", err)
	}

	logger.Info("assignment repository complete current task success", logger.Fields{
		"assignmentId":     assignment.ID,
		"currentTaskIndex": assignment.CurrentTaskIndex,
		"status":           assignment.Status,
	})

	return assignment, nil
}

func (r *AssignmentRepository) classifyInactive(ctx context.Context, tx *sql.Tx, memberID string) error {
	var exists bool
	const query = `
SELECT EXISTS (
	SELECT 1
	FROM set_assignments
	WHERE member_id = $1
	  AND status = $2
)`

	if err := tx.QueryRowContext(ctx, query, memberID, domain.AssignmentStatusCompleted).Scan(&exists); err != nil {
		return fmt.Errorf("check completed assignments: %w", err)
	}
	if exists {
		return commons.ErrAssignmentCompleted
	}

	return commons.ErrNoActiveAssignment
}

func scanAssignment(row rowScanner) (domain.SetAssignment, error) {
	var assignment domain.SetAssignment
	err := row.Scan(
		&assignment.ID,
		&assignment.MemberID,
		&assignment.SetID,
		&assignment.Status,
		&assignment.CurrentTaskIndex,
		&assignment.CreatedAt,
		&assignment.UpdatedAt,
	)
	return assignment, err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "23505"
	}
	return false
}
