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
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type WithdrawalService struct {
	withdrawalRepo repo_interfaces.WithdrawalRepository
	memberRepo     repo_interfaces.MemberRepository
}

func NewWithdrawalService(
	withdrawalRepo repo_interfaces.WithdrawalRepository,
	memberRepo repo_interfaces.MemberRepository,
) *WithdrawalService {
	return &WithdrawalService{
		withdrawalRepo: withdrawalRepo,
		memberRepo:     memberRepo,
	}
}

func (s *WithdrawalService) CreateWithdrawal(ctx context.Context, req models.CreateWithdrawalRequest) (commons.Response[models.WithdrawalResponse], error) {
	logger.Info("withdrawal service create withdrawal request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("withdrawal service create withdrawal validation failed", err, nil)
		return commons.ErrorResponse[models.WithdrawalResponse]("validation failed", err.Error()), err
	}

	memberID := strings.TrimSpace(req.MemberID)
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		logger.Error("withdrawal service member lookup failed", err, logger.Fields{
			"memberId": memberID,
		})
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.WithdrawalResponse]("Member not found"), err
		}
		return commons.ErrorResponse[models.WithdrawalResponse]("failed to create withdrawal request", "Unable to create withdrawal request right now"), err
	}

	if member.Role != domain.MemberRoleMember {
		err := fmt.Errorf("memberId does not reference a member account")
		return commons.ErrorResponse[models.WithdrawalResponse]("validation failed", err.Error()), err
	}
	if member.ApprovalStatus != domain.ApprovalStatusApproved || !member.WithdrawPrivilege {
		err := commons.ErrWithdrawNotAllowed
		logger.Info("withdrawal service member not allowed to withdraw", logger.Fields{
			"memberId":          memberID,
			"approvalStatus":    member.ApprovalStatus,
			"withdrawPrivilege": member.WithdrawPrivilege,
		})
		return commons.ErrorResponse[models.WithdrawalResponse]("Withdrawal not allowed", err.Error()), err
	}

	if member.TransactionPinHash != nil {
		if err := bcrypt.CompareHashAndPassword([]byte(*member.TransactionPinHash), []byte(strings.TrimSpace(req.Pin))); err != nil {
			err = commons.ErrInvalidPin
			logger.Info("withdrawal service transaction pin mismatch", logger.Fields{
				"memberId": memberID,
			})
			return commons.ErrorResponse[models.WithdrawalResponse]("Transaction pin is invalid"), err
		}
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil || !amount.IsPositive() {
		err = commons.ErrInvalidAmount
		return commons.ErrorResponse[models.WithdrawalResponse]("validation failed", err.Error()), err
	}

	request := domain.WithdrawalRequest{
		MemberID:       memberID,
		Amount:         amount.Round(2),
		Method:         strings.TrimSpace(req.Method),
		AccountDetails: strings.TrimSpace(req.AccountDetails),
	}

	created, err := s.withdrawalRepo.CreateWithReservation(ctx, request)
	if err != nil {
		logger.Error("withdrawal service create withdrawal repository failed", err, logger.Fields{
			"memberId": memberID,
		})
		if errors.Is(err, commons.ErrInsufficientBalance) {
			return commons.ErrorResponse[models.WithdrawalResponse]("Insufficient balance", err.Error()), err
		}
		return commons.ErrorResponse[models.WithdrawalResponse]("failed to create withdrawal request", "Unable to create withdrawal request right now"), err
	}

	logger.Info("withdrawal service create withdrawal success", logger.Fields{
		"requestId": created.ID,
		"memberId":  created.MemberID,
	})

	return commons.SuccessResponse("withdrawal request created successfully", withdrawalResponse(created)), nil
}

func (s *WithdrawalService) ResolveWithdrawal(ctx context.Context, requestID string, req models.ResolveRequest) (commons.Response[models.WithdrawalResponse], error) {
	logger.Info("withdrawal service resolve withdrawal request", logger.Fields{
		"requestId": requestID,
		"action":    req.Action,
	})

	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		err := fmt.Errorf("requestId is required")
		return commons.ErrorResponse[models.WithdrawalResponse]("validation failed", err.Error()), err
	}
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.WithdrawalResponse]("validation failed", err.Error()), err
	}

	action := domain.ResolutionActionReject
	if req.IsApprove() {
		action = domain.ResolutionActionApprove
	}

	resolved, err := s.withdrawalRepo.Resolve(ctx, requestID, action, strings.TrimSpace(req.AdminNote))
	if err != nil {
		logger.Error("withdrawal service resolve withdrawal failed", err, logger.Fields{
			"requestId": requestID,
		})
		switch {
		case errors.Is(err, commons.ErrRecordNotFound):
			return commons.ErrorResponse[models.WithdrawalResponse]("Withdrawal request not found"), err
		case errors.Is(err, commons.ErrAlreadyResolved):
			return commons.ErrorResponse[models.WithdrawalResponse]("Request already resolved", err.Error()), err
		}
		return commons.ErrorResponse[models.WithdrawalResponse]("failed to resolve withdrawal request", "Unable to resolve withdrawal request right now"), err
	}

	logger.Info("withdrawal service resolve withdrawal success", logger.Fields{
		"requestId": resolved.ID,
		"status":    resolved.Status,
	})

	return commons.SuccessResponse("withdrawal request resolved successfully", withdrawalResponse(resolved)), nil
}

func (s *WithdrawalService) ListWithdrawals(ctx context.Context, status string) (commons.Response[models.ListWithdrawalsResponse], error) {
	normalized, err := normalizeStatusFilter(status)
	if err != nil {
		return commons.ErrorResponse[models.ListWithdrawalsResponse]("validation failed", err.Error()), err
	}

	requests, err := s.withdrawalRepo.ListByStatus(ctx, normalized)
	if err != nil {
		logger.Error("withdrawal service list withdrawals failed", err, logger.Fields{
			"status": status,
		})
		return commons.ErrorResponse[models.ListWithdrawalsResponse]("failed to list withdrawal requests", "Unable to list withdrawal requests right now"), err
	}

	withdrawals := make([]models.WithdrawalResponse, 0, len(requests))
	for _, request := range requests {
		withdrawals = append(withdrawals, withdrawalResponse(request))
	}

	return commons.SuccessResponse("withdrawal requests fetched successfully", models.ListWithdrawalsResponse{Withdrawals: withdrawals}), nil
}

func withdrawalResponse(request domain.WithdrawalRequest) models.WithdrawalResponse {
	response := models.WithdrawalResponse{
		ID:             request.ID,
		MemberID:       request.MemberID,
		Amount:         request.Amount.StringFixed(2),
		Method:         request.Method,
		AccountDetails: request.AccountDetails,
		Status:         string(request.Status),
		CreatedAt:      request.CreatedAt.Format(time.RFC3339),
	}
	if request.AdminNote != nil {
		response.AdminNote = *request.AdminNote
	}
	if request.ReviewedAt != nil {
		response.ReviewedAt = request.ReviewedAt.Format(time.RFC3339)
	}

	return response
}
