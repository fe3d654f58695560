package controller

import (
	"encoding/json"
	"net/http"

	"github.com/api-sage/member-ledger/internal/adapter/http/models"
	"github.com/api-sage/member-ledger/internal/commons"
	"github.com/api-sage/member-ledger/internal/usecase/service_interfaces"
	"github.com/go-chi/chi/v5"
)

type DepositController struct {
	service service_interfaces.DepositService
}

func NewDepositController(service service_interfaces.DepositService) *DepositController {
	return &DepositController{service: service}
}

func (c *DepositController) RegisterRoutes(r chi.Router) {
	r.Post("/deposits", c.createDeposit)
	r.Get("/deposits", c.listDeposits)
	r.Post("/deposits/{requestId}/resolve", c.resolveDeposit)
}

func (c *DepositController) createDeposit(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.DepositResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.CreateDeposit(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForResponse(response.Message, err), response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (c *DepositController) listDeposits(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.ListDeposits(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeJSON(w, statusForResponse(response.Message, err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *DepositController) resolveDeposit(w http.ResponseWriter, r *http.Request) {
	var req models.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.DepositResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.ResolveDeposit(r.Context(), chi.URLParam(r, "requestId"), req)
	if err != nil {
		writeJSON(w, statusForResponse(response.Message, err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
