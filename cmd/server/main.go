package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orderalert/internal/config"
	"orderalert/internal/domain/dispatch"
	"orderalert/internal/infra/render"
	"orderalert/internal/infra/smtp"
	"orderalert/internal/router"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded", "port", cfg.Server.Port, "mode", cfg.Server.Mode)

	// ==========================================
	// Dependency Injection (Manual Wiring)
	// ==========================================

	// Template renderer
	engine, err := render.NewEngine()
	if err != nil {
		slog.Error("failed to initialize template engine", "error", err)
		os.Exit(1)
	}

	// SMTP transport. A profile that cannot resolve is an operator error;
	// refuse to start rather than fail every request at runtime.
	transport, err := smtp.NewTransport(smtp.Profile{
		Service:     cfg.SMTP.Service,
		Host:        cfg.SMTP.Host,
		Port:        cfg.SMTP.Port,
		SSL:         cfg.SMTP.SSL,
		Username:    cfg.SMTP.Username,
		Password:    cfg.SMTP.Password,
		InsecureTLS: cfg.SMTP.InsecureTLS,
	}, cfg.Mail.FromAddress)
	if err != nil {
		slog.Error("failed to initialize smtp transport", "error", err)
		os.Exit(1)
	}
	slog.Info("smtp transport initialized", "service", cfg.SMTP.Service, "host", cfg.SMTP.Host)

	// Dispatch service
	dispatchService := dispatch.NewService(engine, transport, dispatch.Mailbox{
		FromName:    cfg.Mail.FromName,
		FromAddress: cfg.Mail.FromAddress,
		To:          cfg.Mail.To,
		CC:          cfg.Mail.CC,
	})

	// Handler
	dispatchHandler := dispatch.NewHandler(dispatchService)

	// Router
	r := router.New(cfg, dispatchHandler)

	// ==========================================
	// HTTP Server with Graceful Shutdown
	// ==========================================

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Give outstanding dispatches 10 seconds to complete. In-flight SMTP
	// submissions are allowed to finish; aborting mid-protocol risks
	// duplicate or corrupted delivery.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}
