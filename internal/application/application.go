package application

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/stow-planner/internal/api"
	"github.com/eugenenazirov/stow-planner/internal/config"
	"github.com/eugenenazirov/stow-planner/internal/storage"
	"github.com/eugenenazirov/stow-planner/internal/stowage"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	storage storage.Storage
	handler *api.Handler
	router  http.Handler
	logger  *zap.Logger
	server  *http.Server
}

// New initializes the application with all dependencies from the provided
// configuration. An engine is constructed once here purely to reject invalid
// ship or grid configuration before the server starts listening.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	if _, err := stowage.NewEngine(cfg.Ship, cfg.Grid, cfg.Settings); err != nil {
		return nil, fmt.Errorf("invalid vessel configuration: %w", err)
	}

	store := storage.NewMemoryStorage()
	if err := store.SetSettings(cfg.Settings); err != nil {
		return nil, fmt.Errorf("failed to apply initial settings: %w", err)
	}

	handler := api.NewHandler(cfg.Ship, cfg.Grid, store)
	router := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	return &App{
		storage: store,
		handler: handler,
		router:  router,
		logger:  logger,
		server:  server,
	}, nil
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}
