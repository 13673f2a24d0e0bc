package client

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/zylch/zylch-go/internal/cli"
	"github.com/zylch/zylch-go/internal/config"
	"github.com/zylch/zylch-go/internal/logger"
	"github.com/zylch/zylch-go/internal/service"
)

// App owns the client process lifecycle.
type App struct {
	services     *service.Services
	ui           *cli.CLI
	syncInterval time.Duration
	logger       *logger.Logger
}

func NewApp(services *service.Services, ui *cli.CLI, cfg config.Sync, log *logger.Logger) (*App, error) {
	if services == nil || ui == nil {
		return nil, fmt.Errorf("client app: services and ui are required")
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Minute
	}

	return &App{
		services:     services,
		ui:           ui,
		syncInterval: interval,
		logger:       log,
	}, nil
}

// Run blocks until the user quits. A logout restarts the whole flow with a
// fresh login instead of exiting.
func (a *App) Run() error {
	ctx := context.Background()

	if _, err := a.services.Auth.Restore(ctx); err != nil {
		a.logger.Debug().Str("func", "Run").Err(err).Msg("no restorable session, starting login flow")

		if _, err = a.ui.LoginFlow(ctx); err != nil {
			return fmt.Errorf("run client: %w", err)
		}
	}

	// Return crash-orphaned in_flight modifiers to pending before anything
	// is dispatched; their idempotency keys make the resend safe.
	if err := a.services.Sync.Recover(ctx); err != nil {
		return fmt.Errorf("recover modifier queue: %w", err)
	}

	// The initial sync is best effort: an unreachable server just means we
	// start offline with whatever the cache already holds.
	if err := a.services.Sync.Sync(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "sync warning: %v\n", err)
	}

	a.services.Job.Start(ctx, a.syncInterval)
	defer a.services.Job.Stop()

	logout, err := a.ui.Run(ctx)
	if err != nil {
		return err
	}
	if logout {
		return a.Run()
	}

	return nil
}
