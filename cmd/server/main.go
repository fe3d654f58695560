package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/api-sage/member-ledger/internal/adapter/http/controller"
	"github.com/api-sage/member-ledger/internal/adapter/http/middleware"
	"github.com/api-sage/member-ledger/internal/adapter/http/router"
	"github.com/api-sage/member-ledger/internal/adapter/repository/implementations"
	"github.com/api-sage/member-ledger/internal/config"
	"github.com/api-sage/member-ledger/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	migrationCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	if err := implementations.RunMigrations(migrationCtx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		cancel()
		log.Fatalf("run migrations: %v", err)
	}
	cancel()

	db, err := implementations.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	walletRepo := implementations.NewWalletRepository(db)
	depositRepo := implementations.NewDepositRepository(db)
	withdrawalRepo := implementations.NewWithdrawalRepository(db)
	assignmentRepo := implementations.NewAssignmentRepository(db)
	setRepo := implementations.NewSetRepository(db)
	memberRepo := implementations.NewMemberRepository(db)

	walletService := services.NewWalletService(walletRepo, memberRepo)
	depositService := services.NewDepositService(depositRepo, memberRepo)
	withdrawalService := services.NewWithdrawalService(withdrawalRepo, memberRepo)
	assignmentService := services.NewAssignmentService(assignmentRepo, setRepo, memberRepo)

	handler := router.New(
		controller.NewWalletController(walletService),
		controller.NewDepositController(depositService),
		controller.NewWithdrawalController(withdrawalService),
		controller.NewAssignmentController(assignmentService),
		middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey),
	)

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("member ledger service listening on %s", cfg.ListenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("serve http: %v", err)
	}
}
