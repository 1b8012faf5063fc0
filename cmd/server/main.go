package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	app "github.com/hpa153/private-chat/internal/app"
	"github.com/hpa153/private-chat/internal/bus"
	"github.com/hpa153/private-chat/internal/chat"
	httpx "github.com/hpa153/private-chat/internal/http"
	"github.com/hpa153/private-chat/internal/store"
	"github.com/hpa153/private-chat/internal/ws"
)

func main() {
	// Load local .env (dev only)
	_ = godotenv.Load()

	cfg := app.LoadConfig()
	logger := app.NewLogger(cfg.Env)

	// Cancel on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// State store + broadcast bus; redis when configured, in-process
	// otherwise (dev only, single instance)
	var (
		kv store.KV
		b  bus.Bus
	)
	if cfg.RedisAddr != "" {
		rkv, err := store.NewRedis(ctx, cfg, logger)
		if err != nil {
			logger.Error("redis connect", "err", err)
			log.Fatal(err)
		}
		kv = rkv

		rbus, err := bus.NewRedis(ctx, cfg, logger)
		if err != nil {
			logger.Error("redis connect", "err", err)
			log.Fatal(err)
		}
		b = rbus
	} else {
		logger.Warn("store.memory", "reason", "REDIS_ADDR empty")
		kv = store.NewMemory()
		b = bus.NewMemory()
	}
	defer kv.Close()
	defer b.Close()

	// Chat core
	svc := chat.NewService(kv, b, logger, cfg)

	// WebSocket hub
	hub := ws.NewHub(logger, b, svc)
	go hub.Run(ctx)

	// HTTP + WS router
	router := httpx.NewRouter(cfg, svc, hub)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("server.listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server.crash", "err", err)
			cancel()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	logger.Info("server.shutdown.start")

	// shutdown
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	_ = srv.Shutdown(shutdownCtx)

	logger.Info("server.shutdown.complete")
	_ = os.Stdout.Sync()
}
