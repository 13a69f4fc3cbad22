package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blackjack-lite/apps/server/internal/api"
	"blackjack-lite/apps/server/internal/config"
	"blackjack-lite/apps/server/internal/gateway"
	"blackjack-lite/apps/server/internal/lobby"
	"blackjack-lite/apps/server/internal/practice"
	"blackjack-lite/blackjack/bot"

	"github.com/pterm/pterm"
)

func main() {
	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("[Server] Invalid configuration", "err", err)
		os.Exit(1)
	}

	store, storeMode, err := practice.NewServiceFromConfig(cfg)
	if err != nil {
		logger.Error("[Server] Failed to init practice store", "mode", storeMode, "err", err)
		os.Exit(1)
	}
	defer store.Close()

	bots := bot.NewRegistry()
	if cfg.ProfilesPath != "" {
		if err := bots.LoadFromFile(cfg.ProfilesPath); err != nil {
			logger.Warn("[Server] Bot profiles not loaded, using built-ins", "path", cfg.ProfilesPath, "err", err)
		}
	}

	lby := lobby.New(cfg.Game, store, logger)
	gw := gateway.New(lby, logger)

	router := api.New(store, bots, cfg.Game, logger).Router()
	router.HandleFunc("/ws", gw.HandleWebSocket)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("[Server] Practice store", "mode", storeMode)
		logger.Info("[Server] Starting server", "addr", cfg.ListenAddr, "decks", cfg.Game.DeckCount, "mode", cfg.Game.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("[Server] Failed to start", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("[Server] Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("[Server] Shutdown", "err", err)
	}
	// open sessions are saved before the store closes
	lby.CloseAll()
}
