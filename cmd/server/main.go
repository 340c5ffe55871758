package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"chit-backend/internal/auth"
	"chit-backend/internal/cache"
	"chit-backend/internal/config"
	"chit-backend/internal/database"
	"chit-backend/internal/db"
	"chit-backend/internal/handlers"
	"chit-backend/internal/health"
	h "chit-backend/internal/http"
	"chit-backend/internal/middleware"
	"chit-backend/internal/monitoring"
	"chit-backend/internal/repositories"
	"chit-backend/internal/services"
	"chit-backend/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to Postgres
	pool, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()
	log.Printf("Connected to database %s@%s:%d", cfg.Database.Name, cfg.Database.Host, cfg.Database.Port)

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (login will use bcrypt only)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run embedded schema migrations
	migrator := database.NewMigrator(pool, migrations.FS)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Start monitoring stats server in background
	go monitoring.NewMonitoringServer(pool, cfg.Server.MonitoringPort).Start()

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Initialize repositories
	memberRepo := repositories.NewMemberRepository(pool)
	transactionRepo := repositories.NewTransactionRepository(pool)
	repaymentRepo := repositories.NewRepaymentRepository(pool)
	staffRepo := repositories.NewStaffRepository(pool)

	// Initialize services
	memberService := services.NewMemberService(memberRepo)
	transactionService := services.NewTransactionService(transactionRepo)
	repaymentService := services.NewRepaymentService(repaymentRepo)
	authService := services.NewAuthService(staffRepo, jwtManager)
	reconciliationService := services.NewReconciliationService(memberRepo, transactionRepo)

	// Initialize handlers
	memberHandler := handlers.NewMemberHandler(memberService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	repaymentHandler := handlers.NewRepaymentHandler(repaymentService)
	authHandler := handlers.NewAuthHandler(authService)
	reconciliationHandler := handlers.NewReconciliationHandler(reconciliationService)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, staffRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		memberHandler,
		transactionHandler,
		repaymentHandler,
		authHandler,
		reconciliationHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running at http://localhost%s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
