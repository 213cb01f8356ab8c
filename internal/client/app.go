package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/commerce-console/internal/adapter"
	"github.com/MKhiriev/commerce-console/internal/config"
	"github.com/MKhiriev/commerce-console/internal/logger"
	"github.com/MKhiriev/commerce-console/internal/service"
	"github.com/MKhiriev/commerce-console/internal/store"
	"github.com/MKhiriev/commerce-console/internal/tui"
	"github.com/MKhiriev/commerce-console/internal/workers"
	"github.com/MKhiriev/commerce-console/models"
)

// App is the console process: configuration, profile storage, the API
// gateway client, the services, the background poller and the terminal UI.
type App struct {
	cfg     *config.StructuredConfig
	logger  *logger.Logger
	closers []io.Closer

	storages *store.ClientStorages
	services *service.Services
	workers  *workers.Workers
	ui       *tui.TUI
}

// NewApp builds every component from cfg. On error, everything opened so far
// is closed.
func NewApp(ctx context.Context, cfg *config.StructuredConfig, buildInfo models.BuildInfo) (app *App, err error) {
	log, logFile, err := logger.NewClientLogger("commerce-console", cfg.App.ProfileDir, cfg.App.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	a := &App{cfg: cfg, logger: log, closers: []io.Closer{logFile}}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	log.Info().Str("version", buildInfo.Version).Str("gateway", cfg.Adapter.Address).Msg("starting console")

	a.storages, err = store.NewClientStorages(ctx, cfg.Storage, cfg.App, log)
	if err != nil {
		return nil, fmt.Errorf("create profile storage: %w", err)
	}
	a.closers = append(a.closers, a.storages)

	api, err := adapter.NewHTTPServerAdapter(cfg.Adapter, a.storages.TokenStore, log)
	if err != nil {
		return nil, fmt.Errorf("create gateway adapter: %w", err)
	}

	a.services = service.NewServices(api, a.storages.TokenStore, cfg.Console, log)

	poller := workers.NewPoller(cfg.Workers.RefreshInterval, log)
	a.workers = workers.NewWorkers(poller)
	a.ui = tui.New(a.services, poller, buildInfo, log)

	return a, nil
}

// Run starts the background workers and blocks in the terminal UI. Quitting
// the console is not an error.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.workers.Start(ctx)
	defer a.workers.Stop()

	err := a.ui.Run(ctx)
	switch {
	case errors.Is(err, tui.ErrUserQuit), errors.Is(err, context.Canceled):
		a.logger.Info().Msg("console closed")
		return nil
	case err != nil:
		return fmt.Errorf("run console: %w", err)
	}
	return nil
}

// Close releases storage and the log file, in reverse order of opening.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
