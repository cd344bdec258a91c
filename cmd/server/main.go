package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/makingbetter/serveconnect-backend/internal/app"
	"github.com/makingbetter/serveconnect-backend/internal/config"
	"github.com/makingbetter/serveconnect-backend/internal/db"
	"github.com/makingbetter/serveconnect-backend/internal/pkg/logger"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.IsProduction)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zl.Sync()

	// Connect DB (skipped in demo mode, which runs on in-memory repositories)
	var pool *pgxpool.Pool
	if !cfg.DemoMode {
		pool, err = db.NewPool(ctx, cfg.DBDSN)
		if err != nil {
			zl.Fatal("failed to connect to db", zap.Error(err))
		}
		defer pool.Close()
	} else {
		zl.Info("demo mode: using in-memory repositories and logging outbound email")
	}

	container, err := app.NewContainer(app.Config{
		DemoMode:       cfg.DemoMode,
		DBPool:         pool,
		Logger:         zl,
		AllowedOrigins: allowedOrigins(cfg),
		JWTSecret:      cfg.JWTSecret,
		JWTTTL:         cfg.JWTAccessTokenTTL,
		BcryptCost:     cfg.BcryptCost,
		SendGridAPIKey: cfg.SendGridAPIKey,
		EmailFrom:      cfg.EmailFrom,
		EmailFromName:  cfg.EmailFromName,
		BookingInbox:   cfg.BookingInbox,
		UploadDir:      cfg.UploadDir,
		SubmitTimeout:  cfg.SubmitTimeout,
		WizardTTL:      cfg.WizardTTL,
	})
	if err != nil {
		zl.Fatal("failed to init application", zap.Error(err))
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	// Run server in separate goroutine
	go func() {
		zl.Info("server running", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	zl.Info("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}

	zl.Info("server exited gracefully")
}

func allowedOrigins(cfg *config.Config) []string {
	if cfg.IsProduction {
		var origins []string
		for _, o := range strings.Split(cfg.ProdOrigins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		return origins
	}
	// Local frontend dev servers.
	return []string{"http://localhost:3000", "http://localhost:5173"}
}
