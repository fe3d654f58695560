package controller

import (
	"net/http"

	"github.com/api-sage/member-ledger/internal/usecase/service_interfaces"
	"github.com/go-chi/chi/v5"
)

type WalletController struct {
	service service_interfaces.WalletService
}

func NewWalletController(service service_interfaces.WalletService) *WalletController {
	return &WalletController{service: service}
}

func (c *WalletController) RegisterRoutes(r chi.Router) {
	r.Get("/wallets/{memberId}", c.getWallet)
}

func (c *WalletController) getWallet(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.GetWallet(r.Context(), chi.URLParam(r, "memberId"))
	if err != nil {
		writeJSON(w, statusForResponse(response.Message, err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
