package controller

import (
	"encoding/json"
	"net/http"

	"github.com/api-sage/member-ledger/internal/adapter/http/models"
	"github.com/api-sage/member-ledger/internal/commons"
	"github.com/api-sage/member-ledger/internal/usecase/service_interfaces"
	"github.com/go-chi/chi/v5"
)

type AssignmentController struct {
	service service_interfaces.AssignmentService
}

func NewAssignmentController(service service_interfaces.AssignmentService) *AssignmentController {
	return &AssignmentController{service: service}
}

// RegisterStaffRoutes carries the staff-only assign action; member routes are
// reachable by the member session layer in front of this service.
func (c *AssignmentController) RegisterStaffRoutes(r chi.Router) {
	r.Post("/assignments", c.assignSet)
}

func (c *AssignmentController) RegisterMemberRoutes(r chi.Router) {
	r.Get("/members/{memberId}/assignment", c.getMemberAssignment)
	r.Post("/members/{memberId}/assignment/complete-task", c.completeTask)
}

func (c *AssignmentController) assignSet(w http.ResponseWriter, r *http.Request) {
	var req models.AssignSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AssignmentResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.AssignSet(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForResponse(response.Message, err), response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (c *AssignmentController) getMemberAssignment(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.GetMemberAssignment(r.Context(), chi.URLParam(r, "memberId"))
	if err != nil {
		writeJSON(w, statusForResponse(response.Message, err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AssignmentController) completeTask(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.CompleteTask(r.Context(), chi.URLParam(r, "memberId"))
	if err != nil {
		writeJSON(w, statusForResponse(response.Message, err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
