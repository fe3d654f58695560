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
)

type DepositService struct {
	depositRepo repo_interfaces.DepositRepository
	memberRepo  repo_interfaces.MemberRepository
}

func NewDepositService(
	depositRepo repo_interfaces.DepositRepository,
	memberRepo repo_interfaces.MemberRepository,
) *DepositService {
	return &DepositService{
		depositRepo: depositRepo,
		memberRepo:  memberRepo,
	}
}

func (s *DepositService) CreateDeposit(ctx context.Context, req models.CreateDepositRequest) (commons.Response[models.DepositResponse], error) {
	logger.Info("deposit service create deposit request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("deposit service create deposit validation failed", err, nil)
		return commons.ErrorResponse[models.DepositResponse]("validation failed", err.Error()), err
	}

	memberID := strings.TrimSpace(req.MemberID)
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		logger.Error("deposit service member lookup failed", err, logger.Fields{
			"memberId": memberID,
		})
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.DepositResponse]("Member not found"), err
		}
		return commons.ErrorResponse[models.DepositResponse]("failed to create deposit request", "Unable to create deposit request right now"), err
	}
	if member.Role != domain.MemberRoleMember {
		err := fmt.Errorf("memberId does not reference a member account")
		return commons.ErrorResponse[models.DepositResponse]("validation failed", err.Error()), err
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil || !amount.IsPositive() {
		err = commons.ErrInvalidAmount
		return commons.ErrorResponse[models.DepositResponse]("validation failed", err.Error()), err
	}

	request := domain.DepositRequest{
		MemberID: memberID,
		Amount:   amount.Round(2),
		Method:   strings.TrimSpace(req.Method),
		TxRef:    optionalString(req.TxRef),
		ProofURL: optionalString(req.ProofURL),
	}

	created, err := s.depositRepo.Create(ctx, request)
	if err != nil {
		logger.Error("deposit service create deposit repository failed", err, logger.Fields{
			"memberId": memberID,
		})
		return commons.ErrorResponse[models.DepositResponse]("failed to create deposit request", "Unable to create deposit request right now"), err
	}

	logger.Info("deposit service create deposit success", logger.Fields{
		"requestId": created.ID,
		"memberId":  created.MemberID,
	})

	return commons.SuccessResponse("deposit request created successfully", depositResponse(created)), nil
}

func (s *DepositService) ResolveDeposit(ctx context.Context, requestID string, req models.ResolveRequest) (commons.Response[models.DepositResponse], error) {
	logger.Info("deposit service resolve deposit request", logger.Fields{
		"requestId": requestID,
		"action":    req.Action,
	})

	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		err := fmt.Errorf("requestId is required")
		return commons.ErrorResponse[models.DepositResponse]("validation failed", err.Error()), err
	}
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.DepositResponse]("validation failed", err.Error()), err
	}

	action := domain.ResolutionActionReject
	if req.IsApprove() {
		action = domain.ResolutionActionApprove
	}

	resolved, err := s.depositRepo.Resolve(ctx, requestID, action, strings.TrimSpace(req.AdminNote))
	if err != nil {
		logger.Error("deposit service resolve deposit failed", err, logger.Fields{
			"requestId": requestID,
		})
		switch {
		case errors.Is(err, commons.ErrRecordNotFound):
			return commons.ErrorResponse[models.DepositResponse]("Deposit request not found"), err
		case errors.Is(err, commons.ErrAlreadyResolved):
			return commons.ErrorResponse[models.DepositResponse]("Request already resolved", err.Error()), err
		}
		return commons.ErrorResponse[models.DepositResponse]("failed to resolve deposit request", "Unable to resolve deposit request right now"), err
	}

	logger.Info("deposit service resolve deposit success", logger.Fields{
		"requestId": resolved.ID,
		"status":    resolved.Status,
	})

	return commons.SuccessResponse("deposit request resolved successfully", depositResponse(resolved)), nil
}

func (s *DepositService) ListDeposits(ctx context.Context, status string) (commons.Response[models.ListDepositsResponse], error) {
	normalized, err := normalizeStatusFilter(status)
	if err != nil {
		return commons.ErrorResponse[models.ListDepositsResponse]("validation failed", err.Error()), err
	}

	requests, err := s.depositRepo.ListByStatus(ctx, normalized)
	if err != nil {
		logger.Error("deposit service list deposits failed", err, logger.Fields{
			"status": status,
		})
		return commons.ErrorResponse[models.ListDepositsResponse]("failed to list deposit requests", "Unable to list deposit requests right now"), err
	}

	deposits := make([]models.DepositResponse, 0, len(requests))
	for _, request := range requests {
		deposits = append(deposits, depositResponse(request))
	}

	return commons.SuccessResponse("deposit requests fetched successfully", models.ListDepositsResponse{Deposits: deposits}), nil
}

func depositResponse(request domain.DepositRequest) models.DepositResponse {
	response := models.DepositResponse{
		ID:        request.ID,
		MemberID:  request.MemberID,
		Amount:    request.Amount.StringFixed(2),
		Method:    request.Method,
		Status:    string(request.Status),
		CreatedAt: request.CreatedAt.Format(time.RFC3339),
	}
	if request.TxRef != nil {
		response.TxRef = *request.TxRef
	}
	if request.ProofURL != nil {
		response.ProofURL = *request.ProofURL
	}
	if request.AdminNote != nil {
		response.AdminNote = *request.AdminNote
	}
	if request.ReviewedAt != nil {
		response.ReviewedAt = request.ReviewedAt.Format(time.RFC3339)
	}

	return response
}

func optionalString(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}

func normalizeStatusFilter(raw string) (domain.RequestStatus, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	switch normalized {
	case "":
		return "", nil
	case string(domain.RequestStatusPending), string(domain.RequestStatusApproved), string(domain.RequestStatusRejected):
		return domain.RequestStatus(normalized), nil
	}

	return "", fmt.Errorf("status must be one of PENDING, APPROVED, REJECTED")
}
