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
	"github.com/api-sage/member-ledger/internal/logger"
)

type WalletService struct {
	walletRepo repo_interfaces.WalletRepository
	memberRepo repo_interfaces.MemberRepository
}

func NewWalletService(
	walletRepo repo_interfaces.WalletRepository,
	memberRepo repo_interfaces.MemberRepository,
) *WalletService {
	return &WalletService{
		walletRepo: walletRepo,
		memberRepo: memberRepo,
	}
}

func (s *WalletService) GetWallet(ctx context.Context, memberID string) (commons.Response[models.WalletResponse], error) {
	logger.Info("wallet service get wallet request", logger.Fields{
		"memberId": memberID,
	})

	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		err := fmt.Errorf("memberId is required")
		return commons.ErrorResponse[models.WalletResponse]("validation failed", err.Error()), err
	}

	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		logger.Error("wallet service member lookup failed", err, logger.Fields{
			"memberId": memberID,
		})
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.WalletResponse]("Member not found"), err
		}
		return commons.ErrorResponse[models.WalletResponse]("failed to get wallet", "Unable to fetch wallet right now"), err
	}

	wallet, err := s.walletRepo.GetOrCreate(ctx, memberID)
	if err != nil {
		logger.Error("wallet service get wallet failed", err, logger.Fields{
			"memberId": memberID,
		})
		return commons.ErrorResponse[models.WalletResponse]("failed to get wallet", "Unable to fetch wallet right now"), err
	}

	response := models.WalletResponse{
		MemberID:      wallet.MemberID,
		Balance:       wallet.Balance.StringFixed(2),
		LockedBalance: wallet.LockedBalance.StringFixed(2),
		UpdatedAt:     wallet.UpdatedAt.Format(time.RFC3339),
	}

	logger.Info("wallet service get wallet success", logger.Fields{
		"memberId": wallet.MemberID,
	})

	return commons.SuccessResponse("wallet fetched successfully", response), nil
}
