package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Johnsoncharless1976/zen-grid-forecaster/pkg/config"
	xhttp "github.com/Johnsoncharless1976/zen-grid-forecaster/pkg/http"
	applogger "github.com/Johnsoncharless1976/zen-grid-forecaster/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	httpServer  *xhttp.Server
	httpHandler xhttp.Handler
	l           *applogger.Logger
}

// New creates a new App instance with all dependencies. The warehouse has no
// long-lived client here: every refresh opens and closes its own connection.
func New(cfg *config.Config, httpHandler xhttp.Handler, l *applogger.Logger) *App {
	return &App{
		cfg:         cfg,
		httpHandler: httpHandler,
		l:           l,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	}
	if a.cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithRequestStats(a.l, time.Second))
	}
	a.httpServer = xhttp.NewServer(a.httpHandler, opts...)

	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}
	a.l.Info("dashboard api up",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("database", a.cfg.Snowflake.Database),
		applogger.String("schema", a.cfg.Snowflake.Schema),
	)

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.l.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops the HTTP server. Warehouse sessions are
// request-scoped, so there is nothing else to release.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
	}

	a.l.Info("shutdown complete")
	return nil
}
