package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/attack15/internal/config"
	"github.com/DoyleJ11/attack15/internal/httpapi"
	"github.com/DoyleJ11/attack15/internal/hub"
	"github.com/DoyleJ11/attack15/internal/logging"
	"github.com/DoyleJ11/attack15/internal/session"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", os.Getenv("ATTACK15_CONFIG"), "path to attack15.yaml")
	flag.Parse()

	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("failed to load .env: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := hub.NewHub(ctx, cfg.Game, session.Options{
		Clock:        clockwork.NewRealClock(),
		TickInterval: cfg.Session.TickInterval(),
		IdleTimeout:  cfg.Session.IdleTimeout,
		Logger:       logger,
	})

	// Build the router *with* the hub injected
	handler := httpapi.SetupRoutes(h, httpapi.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		OutboxSize:     cfg.Session.OutboxSize,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		h.Inbox() <- hub.ShutdownHub{}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
