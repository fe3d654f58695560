package router

import (
	"net/http"
	"time"

	"github.com/api-sage/member-ledger/internal/adapter/http/controller"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func New(
	walletController *controller.WalletController,
	depositController *controller.DepositController,
	withdrawalController *controller.WithdrawalController,
	assignmentController *controller.AssignmentController,
	staffAuth func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/api/v1/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if staffAuth != nil {
				r.Use(staffAuth)
			}
			depositController.RegisterRoutes(r)
			withdrawalController.RegisterRoutes(r)
			walletController.RegisterRoutes(r)
			assignmentController.RegisterStaffRoutes(r)
		})

		assignmentController.RegisterMemberRoutes(r)
	})

	return r
}
