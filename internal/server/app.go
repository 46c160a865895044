// Package server runs the moodkeeperd daemon: it opens the journal with
// the configured backend, serves the companion gRPC service and shuts down
// gracefully on SIGINT/SIGTERM/SIGQUIT.
package server

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	core "github.com/dmitrijs2005/moodkeeper/internal/app"
	"github.com/dmitrijs2005/moodkeeper/internal/config"
	"github.com/dmitrijs2005/moodkeeper/internal/logging"

	gs "github.com/dmitrijs2005/moodkeeper/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	core   *core.App
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	a, err := core.New(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	return &App{config: c, logger: logger, core: a}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	secret, err := app.core.PairingSecret(ctx)
	if err != nil {
		app.logger.Error(ctx, "pairing secret unavailable", "error", err)
		cancelFunc()
		return
	}

	s := gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.core.Analyzer, app.core.Journal,
		secret, app.config.RateLimit, app.config.RateBurst)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a signal arrives, then closes the
// backend.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "backend", app.config.Backend)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.core.Close(); err != nil {
		app.logger.Error(ctx, "close failed", "error", err)
	}
	app.logger.Info(ctx, "Stopped")
}
