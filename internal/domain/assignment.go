package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AssignmentStatus string

const (
	AssignmentStatusActive    AssignmentStatus = "ACTIVE"
	AssignmentStatusCompleted AssignmentStatus = "COMPLETED"
)

// SetAssignment binds one set to one member with a progress cursor.
// CurrentTaskIndex counts completed tasks, so it doubles as the position of
// the next task to complete. A member holds at most one ACTIVE assignment.
type SetAssignment struct {
	ID               string
	MemberID         string
	SetID            string
	Status           AssignmentStatus
	CurrentTaskIndex int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TaskCompletion is the ledger entry proving a task index was credited for an
// assignment. The (AssignmentID, TaskIndex) pair is unique, which is what
// makes retried completion calls safe.
type TaskCompletion struct {
	ID             string
	AssignmentID   string
	TaskIndex      int
	CreditedAmount decimal.Decimal
	CreatedAt      time.Time
}
