package app

import (
	"fmt"

	"github.com/pantrypal/pantrypal-backend/internal/clients/imagestore"
	"github.com/pantrypal/pantrypal-backend/internal/clients/inventory"
	"github.com/pantrypal/pantrypal-backend/internal/clients/redisx"
	"github.com/pantrypal/pantrypal-backend/internal/platform/logger"
)

type Clients struct {
	Pantry     inventory.Client
	ImageStore imagestore.Store
	ImportLock redisx.ImportLock
}

func wireClients(cfg Config, log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	pantry := inventory.NewClient(cfg.InventoryBaseURL, cfg.InventoryServiceToken, log)

	store, err := imagestore.NewStore(cfg.ImageDir, log)
	if err != nil {
		return Clients{}, fmt.Errorf("init image store: %w", err)
	}

	var lock redisx.ImportLock
	if cfg.RedisAddr == "" {
		log.Warn("REDIS_ADDR not set, import locking is per-process only")
		lock = redisx.NoopLock{}
	} else {
		lock, err = redisx.NewImportLock(cfg.RedisAddr, log)
		if err != nil {
			log.Warn("redis import lock init failed, falling back to no-op lock", "error", err)
			lock = redisx.NoopLock{}
		}
	}

	return Clients{
		Pantry:     pantry,
		ImageStore: store,
		ImportLock: lock,
	}, nil
}
