package models

import (
	"errors"
	"strings"
)

type AssignSetRequest struct {
	MemberID string `json:"memberId"`
	SetID    string `json:"setId"`
}

func (r AssignSetRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.MemberID) == "" {
		errs = append(errs, "memberId is required")
	}
	if strings.TrimSpace(r.SetID) == "" {
		errs = append(errs, "setId is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type AssignmentResponse struct {
	ID               string `json:"id"`
	MemberID         string `json:"memberId"`
	SetID            string `json:"setId"`
	Status           string `json:"status"`
	CurrentTaskIndex int    `json:"currentTaskIndex"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
}

type SetSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	MaxTasks  int    `json:"maxTasks"`
	SetAmount string `json:"setAmount"`
}

type TaskSummary struct {
	ID             string `json:"id"`
	Position       int    `json:"position"`
	Title          string `json:"title"`
	Price          string `json:"price"`
	CommissionRate string `json:"commissionRate"`
}

// MemberAssignmentResponse renders the member task view: the active
// assignment with its current task, or the last completed assignment with no
// current task, or nothing at all.
type MemberAssignmentResponse struct {
	Assignment  *AssignmentResponse `json:"assignment,omitempty"`
	Set         *SetSummary         `json:"set,omitempty"`
	CurrentTask *TaskSummary        `json:"currentTask,omitempty"`
}
