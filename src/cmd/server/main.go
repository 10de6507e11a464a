package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/api-sage/bank-backoffice/src/internal/adapter/http/controller"
	"github.com/api-sage/bank-backoffice/src/internal/adapter/http/middleware"
	"github.com/api-sage/bank-backoffice/src/internal/adapter/http/router"
	"github.com/api-sage/bank-backoffice/src/internal/adapter/repository/postgres"
	"github.com/api-sage/bank-backoffice/src/internal/config"
	"github.com/api-sage/bank-backoffice/src/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(ctx, db, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	accountRepo := postgres.NewAccountRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)
	numbers := services.NewAccountNumberGenerator(accountRepo, nil)
	policies := services.NewPolicyTable(cfg.MonthlyYields)

	ledgerService := services.NewLedgerService(accountRepo, customerRepo, numbers)
	movementService := services.NewMoneyMovementService(accountRepo)
	investmentService := services.NewInvestmentService(accountRepo, customerRepo, numbers, policies)
	customerService := services.NewCustomerService(customerRepo, accountRepo, numbers)

	mux := router.New(
		controller.NewOperationsController(ledgerService, movementService, investmentService),
		controller.NewCustomerController(customerService),
		middleware.AdminAuth(cfg.AdminUser, cfg.AdminKeyHash),
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	log.Printf("bank back-office listening on %s", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("serve http: %v", err)
	}
}
