package service_interfaces

import (
	"context"

	"github.com/api-sage/member-ledger/internal/adapter/http/models"
	"github.com/api-sage/member-ledger/internal/commons"
)

type AssignmentService interface {
	AssignSet(ctx context.Context, req models.AssignSetRequest) (commons.Response[models.AssignmentResponse], error)
	GetMemberAssignment(ctx context.Context, memberID string) (commons.Response[models.MemberAssignmentResponse], error)
	CompleteTask(ctx context.Context, memberID string) (commons.Response[models.AssignmentResponse], error)
}
