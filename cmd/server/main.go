package main

import (
	"fmt"
	"log"

	"lekha/internal/config"
	"lekha/internal/handler"
	"lekha/internal/repository/postgres"
	"lekha/internal/router"
	"lekha/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	invoiceRepo := postgres.NewInvoiceRepo(db)
	itemRepo := postgres.NewItemRepo(db)
	taxRepo := postgres.NewTaxRepo(db)
	tdsRepo := postgres.NewTDSRepo(db)

	// Initialize services
	reviewSvc := service.NewReviewService(invoiceRepo, itemRepo, taxRepo, tdsRepo, cfg.Master.FetchLimit)

	// Initialize handlers
	reviewH := handler.NewReviewHandler(reviewSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, reviewH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
