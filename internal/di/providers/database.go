package providers

import (
	"context"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/shopmateapp/shopmate-server/internal/config"
	"github.com/shopmateapp/shopmate-server/internal/logger"
	"github.com/shopmateapp/shopmate-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the document store and runs pending data migrations.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Store.BasePath, "db")
	db, err := store.New(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	// Older exports carried a single category string per contact. Upgrade
	// them to category sets before serving traffic.
	migrated, err := db.MigrateContactCategories(context.Background())
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if migrated > 0 {
		log.Info("Upgraded contact categories", "contacts", migrated)
	}

	return &StoreHandle{Store: db}, nil
}
