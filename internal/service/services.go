package service

import (
	"github.com/zylch/zylch-go/internal/adapter"
	"github.com/zylch/zylch-go/internal/config"
	"github.com/zylch/zylch-go/internal/logger"
	"github.com/zylch/zylch-go/internal/store"
)

// Services groups the client's business services.
type Services struct {
	Queue QueueService
	Sync  SyncService
	Auth  AuthService
	Job   SyncJob
}

// NewServices wires the full service layer over the storages, gateway, and
// browser login flow.
func NewServices(storages *store.Storages, gateway adapter.RemoteGateway, browser *adapter.BrowserLogin, cfg *config.StructuredConfig, log *logger.Logger) *Services {
	clock := SystemClock()

	syncSvc := NewSyncService(storages, gateway, cfg.Sync, clock, log)

	return &Services{
		Queue: NewQueueService(storages, clock, log),
		Sync:  syncSvc,
		Auth:  NewAuthService(gateway, browser, cfg.Session, clock, log),
		Job:   NewSyncJob(syncSvc, log),
	}
}
