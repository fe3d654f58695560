package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/member-ledger/internal/adapter/http/models"
	"github.com/api-sage/member-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/member-ledger/internal/commons"
	"github.com/api-sage/member-ledger/internal/domain"
	"github.com/api-sage/member-ledger/internal/logger"
)

type AssignmentService struct {
	assignmentRepo repo_interfaces.AssignmentRepository
	setRepo        repo_interfaces.SetRepository
	memberRepo     repo_interfaces.MemberRepository
}

func NewAssignmentService(
	assignmentRepo repo_interfaces.AssignmentRepository,
	setRepo repo_interfaces.SetRepository,
	memberRepo repo_interfaces.MemberRepository,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		setRepo:        setRepo,
		memberRepo:     memberRepo,
	}
}

func (s *AssignmentService) AssignSet(ctx context.Context, req models.AssignSetRequest) (commons.Response[models.AssignmentResponse], error) {
	logger.Info("assignment service assign set request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("assignment service assign set validation failed", err, nil)
		return commons.ErrorResponse[models.AssignmentResponse]("validation failed", err.Error()), err
	}

	memberID := strings.TrimSpace(req.MemberID)
	setID := strings.TrimSpace(req.SetID)

	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AssignmentResponse]("Member not found"), err
		}
		return commons.ErrorResponse[models.AssignmentResponse]("failed to assign set", "Unable to assign set right now"), err
	}
	if member.Role != domain.MemberRoleMember {
		err := fmt.Errorf("memberId does not reference a member account")
		return commons.ErrorResponse[models.AssignmentResponse]("validation failed", err.Error()), err
	}

	if _, err := s.setRepo.GetByID(ctx, setID); err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AssignmentResponse]("Set not found"), err
		}
		return commons.ErrorResponse[models.AssignmentResponse]("failed to assign set", "Unable to assign set right now"), err
	}

	assignment, err := s.assignmentRepo.Create(ctx, memberID, setID)
	if err != nil {
		logger.Error("assignment service assign set repository failed", err, logger.Fields{
			"memberId": memberID,
			"setId":    setID,
		})
		if errors.Is(err, commons.ErrAssignmentActive) {
			return commons.ErrorResponse[models.AssignmentResponse]("Member already has an active assignment", err.Error()), err
		}
		return commons.ErrorResponse[models.AssignmentResponse]("failed to assign set", "Unable to assign set right now"), err
	}

	logger.Info("assignment service assign set success", logger.Fields{
		"assignmentId": assignment.ID,
		"memberId":     assignment.MemberID,
		"setId":        assignment.SetID,
	})

	return commons.SuccessResponse("set assigned successfully", assignmentResponse(assignment)), nil
}

// GetMemberAssignment renders the member task view: the active assignment with
// its current task when one exists, otherwise the most recently completed
// assignment, otherwise an empty payload.
func (s *AssignmentService) GetMemberAssignment(ctx context.Context, memberID string) (commons.Response[models.MemberAssignmentResponse], error) {
	logger.Info("assignment service get member assignment request", logger.Fields{
		"memberId": memberID,
	})

	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		err := fmt.Errorf("memberId is required")
		return commons.ErrorResponse[models.MemberAssignmentResponse]("validation failed", err.Error()), err
	}

	assignment, err := s.assignmentRepo.GetActive(ctx, memberID)
	if err != nil {
		if !errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.MemberAssignmentResponse]("failed to get assignment", "Unable to fetch assignment right now"), err
		}

		assignment, err = s.assignmentRepo.GetLastCompleted(ctx, memberID)
		if err != nil {
			if errors.Is(err, commons.ErrRecordNotFound) {
				return commons.SuccessResponse("member has no assignment", models.MemberAssignmentResponse{}), nil
			}
			return commons.ErrorResponse[models.MemberAssignmentResponse]("failed to get assignment", "Unable to fetch assignment right now"), err
		}
	}

	set, err := s.setRepo.GetByID(ctx, assignment.SetID)
	if err != nil {
		logger.Error("assignment service set lookup failed", err, logger.Fields{
			"setId": assignment.SetID,
		})
		return commons.ErrorResponse[models.MemberAssignmentResponse]("failed to get assignment", "Unable to fetch assignment right now"), err
	}

	response := models.MemberAssignmentResponse{
		Assignment: assignmentResponsePtr(assignment),
		Set: &models.SetSummary{
			ID:        set.ID,
			Name:      set.Name,
			MaxTasks:  set.MaxTasks,
			SetAmount: set.SetAmount.StringFixed(2),
		},
	}

	if assignment.Status == domain.AssignmentStatusActive && assignment.CurrentTaskIndex < set.MaxTasks {
		task, err := s.setRepo.GetTask(ctx, set.ID, assignment.CurrentTaskIndex)
		if err != nil && !errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.MemberAssignmentResponse]("failed to get assignment", "Unable to fetch assignment right now"), err
		}
		if err == nil {
			response.CurrentTask = &models.TaskSummary{
				ID:             task.ID,
				Position:       task.Position,
				Title:          task.Title,
				Price:          task.Price.StringFixed(2),
				CommissionRate: task.CommissionRate.String(),
			}
		}
	}

	return commons.SuccessResponse("assignment fetched successfully", response), nil
}

func (s *AssignmentService) CompleteTask(ctx context.Context, memberID string) (commons.Response[models.AssignmentResponse], error) {
	logger.Info("assignment service complete task request", logger.Fields{
		"memberId": memberID,
	})

	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		err := fmt.Errorf("memberId is required")
		return commons.ErrorResponse[models.AssignmentResponse]("validation failed", err.Error()), err
	}

	assignment, err := s.assignmentRepo.CompleteCurrentTask(ctx, memberID)
	if err != nil {
		logger.Error("assignment service complete task failed", err, logger.Fields{
			"memberId": memberID,
		})
		switch {
		case errors.Is(err, commons.ErrNoActiveAssignment):
			return commons.ErrorResponse[models.AssignmentResponse]("Member has no active assignment", err.Error()), err
		case errors.Is(err, commons.ErrAssignmentCompleted):
			return commons.ErrorResponse[models.AssignmentResponse]("Assignment already completed", err.Error()), err
		case errors.Is(err, commons.ErrSetExhausted):
			return commons.ErrorResponse[models.AssignmentResponse]("Set has no task at the current index", err.Error()), err
		}
		return commons.ErrorResponse[models.AssignmentResponse]("failed to complete task", "Unable to complete task right now"), err
	}

	message := "task completed successfully"
	if assignment.Status == domain.AssignmentStatusCompleted {
		message = "task completed and set finished"
	}

	logger.Info("assignment service complete task success", logger.Fields{
		"assignmentId":     assignment.ID,
		"currentTaskIndex": assignment.CurrentTaskIndex,
		"status":           assignment.Status,
	})

	return commons.SuccessResponse(message, assignmentResponse(assignment)), nil
}

func assignmentResponse(assignment domain.SetAssignment) models.AssignmentResponse {
	return models.AssignmentResponse{
		ID:               assignment.ID,
		MemberID:         assignment.MemberID,
		SetID:            assignment.SetID,
		Status:           string(assignment.Status),
		CurrentTaskIndex: assignment.CurrentTaskIndex,
		CreatedAt:        assignment.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        assignment.UpdatedAt.Format(time.RFC3339),
	}
}

func assignmentResponsePtr(assignment domain.SetAssignment) *models.AssignmentResponse {
	response := assignmentResponse(assignment)
	return &response
}
