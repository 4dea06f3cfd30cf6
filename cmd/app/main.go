package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/learnlynk/followup-tasks/internal/broadcast"
	"github.com/learnlynk/followup-tasks/internal/config"
	"github.com/learnlynk/followup-tasks/internal/dashboard"
	"github.com/learnlynk/followup-tasks/internal/handler"
	"github.com/learnlynk/followup-tasks/internal/repo"
	"github.com/learnlynk/followup-tasks/internal/service"
	"github.com/learnlynk/followup-tasks/internal/store"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx := context.Background()

	pool, err := store.Connect(ctx, cfg.DatabaseURL, cfg.ServiceRoleKey)
	if err != nil {
		logger.Fatal("failed to connect to store", zap.Error(err))
	}
	defer pool.Close()
	logger.Info("connected to store")

	// The dashboard reads with public credentials when they are configured,
	// otherwise it shares the privileged pool.
	dashPool := pool
	if cfg.DashboardDatabaseURL != "" {
		dashPool, err = store.Connect(ctx, cfg.DashboardDatabaseURL, cfg.AnonKey)
		if err != nil {
			logger.Fatal("failed to connect dashboard store", zap.Error(err))
		}
		defer dashPool.Close()
	}

	taskRepo := repo.NewTaskRepo(pool)
	appRepo := repo.NewApplicationRepo(pool)

	broadcaster := broadcast.New(pool)
	taskService := service.NewTaskService(taskRepo, appRepo, broadcaster.Channel(broadcast.SystemChannel), logger)
	taskHandler := handler.NewTaskHandler(taskService, logger)
	dashHandler := dashboard.NewHandler(repo.NewTaskRepo(dashPool), logger)

	listener := broadcast.NewListener(pool, logger, broadcast.SystemChannel, func(channel string, e broadcast.Envelope) {
		logger.Info("broadcast event",
			zap.String("channel", channel),
			zap.String("event", e.Event),
			zap.ByteString("payload", e.Payload),
		)
	})
	if err := listener.Start(ctx); err != nil {
		logger.Warn("broadcast listener unavailable", zap.Error(err))
	} else {
		defer listener.Stop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(handler.Recoverer(logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Registered for every method; the handler answers non-POST with 405.
	r.HandleFunc("/functions/create-task", taskHandler.CreateTask)

	r.Route("/dashboard", dashHandler.Routes)

	srv := http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
