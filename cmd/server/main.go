package main

import (
	"fmt"
	"log"
	"os"

	"github.com/nutrimize/backend/config"
	httpDelivery "github.com/nutrimize/backend/internal/delivery/http"
	"github.com/nutrimize/backend/internal/infrastructure/cache"
	"github.com/nutrimize/backend/internal/infrastructure/postgres"
	"github.com/nutrimize/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Nutrimize Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	db, err := postgres.Open(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	log.Printf("Database: %s@%s:%s/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)

	memoryCache := cache.NewMemoryCache()
	log.Printf("Catalog cache TTL: %s", cfg.Cache.TTL)

	productRepo := postgres.NewProductRepository(db, memoryCache, cfg.Cache.TTL)
	menuRepo := postgres.NewMenuRepository(db)

	// Initialize usecase layer
	planner := usecase.NewPlannerService(productRepo, nil, usecase.PlannerConfig{
		MinProducts:     cfg.Optimizer.MinProducts,
		MinPortionGrams: cfg.Optimizer.MinPortionGrams,
		MaxPortionGrams: cfg.Optimizer.MaxPortionGrams,
		MaxSolverNodes:  cfg.Optimizer.MaxSolverNodes,
	})
	menus := usecase.NewMenuService(menuRepo)

	log.Printf("Optimizer: minProducts=%d, portion=[%.0fg, %.0fg]",
		cfg.Optimizer.MinProducts,
		cfg.Optimizer.MinPortionGrams,
		cfg.Optimizer.MaxPortionGrams)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(planner, menus)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
