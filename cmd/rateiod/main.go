package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rateio-app/rateio/internal/auth"
	"github.com/rateio-app/rateio/internal/classify"
	"github.com/rateio-app/rateio/internal/config"
	"github.com/rateio-app/rateio/internal/export"
	"github.com/rateio-app/rateio/internal/llm/gemini"
	"github.com/rateio-app/rateio/internal/repository"
	"github.com/rateio-app/rateio/internal/server"
	"github.com/rateio-app/rateio/internal/session"
)

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()
	log := logger.Sugar()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slogger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	db, err := repository.Open(ctx, cfg.Database.Path, slogger)
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepository(db)
	if err := repository.EnsureDefaultUser(ctx, users, cfg.Auth.AdminUser, cfg.Auth.AdminPassword, slogger); err != nil {
		log.Fatalf("ensuring default user: %v", err)
	}

	store := session.NewStore()
	go func() {
		ticker := time.NewTicker(cfg.Sessions.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := store.Sweep(cfg.Sessions.MaxIdle); n > 0 {
					log.Infow("swept idle sessions", "count", n)
				}
			}
		}
	}()

	extractor := gemini.NewClient(gemini.Config{
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, slogger)

	secret := []byte(cfg.Auth.JWTSecret)
	svc := server.NewRateioService(
		store,
		extractor,
		classify.New(classify.DefaultConfig()),
		auth.NewService(users, secret),
		export.NewService(slogger),
		logger,
	)
	router := server.NewRouter(svc, secret)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("HTTP serving on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
	fmt.Println("stopped.")
}
