package controller

import (
	"encoding/json"
	"net/http"

	"github.com/api-sage/member-ledger/internal/adapter/http/models"
	"github.com/api-sage/member-ledger/internal/commons"
	"github.com/api-sage/member-ledger/internal/usecase/service_interfaces"
	"github.com/go-chi/chi/v5"
)

type WithdrawalController struct {
	service service_interfaces.WithdrawalService
}

func NewWithdrawalController(service service_interfaces.WithdrawalService) *WithdrawalController {
	return &WithdrawalController{service: service}
}

func (c *WithdrawalController) RegisterRoutes(r chi.Router) {
	r.Post("/withdrawals", c.createWithdrawal)
	r.Get("/withdrawals", c.listWithdrawals)
	r.Post("/withdrawals/{requestId}/resolve", c.resolveWithdrawal)
}

func (c *WithdrawalController) createWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req models.CreateWithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.WithdrawalResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.CreateWithdrawal(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForResponse(response.Message, err), response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (c *WithdrawalController) listWithdrawals(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.ListWithdrawals(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeJSON(w, statusForResponse(response.Message, err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *WithdrawalController) resolveWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req models.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.WithdrawalResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.ResolveWithdrawal(r.Context(), chi.URLParam(r, "requestId"), req)
	if err != nil {
		writeJSON(w, statusForResponse(response.Message, err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
