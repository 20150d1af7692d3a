package providers

import (
	"github.com/samber/do/v2"

	"github.com/wayfarerapp/wayfarer-server/internal/config"
	"github.com/wayfarerapp/wayfarer-server/internal/logger"
	"github.com/wayfarerapp/wayfarer-server/internal/store"
	"github.com/wayfarerapp/wayfarer-server/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the SQLite-backed store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	db, err := sqlite.Open(cfg.Database.Path, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", cfg.Database.Path)

	return &StoreHandle{Store: db}, nil
}
