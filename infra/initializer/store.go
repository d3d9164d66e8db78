package initializer

import (
	"context"
	"fmt"
	"log/slog"

	infra_repository "github.com/amirasaad/bankcli/infra/repository"
	"github.com/amirasaad/bankcli/pkg/config"
	"github.com/amirasaad/bankcli/pkg/repository"
)

// OpenStore returns the snapshot store selected by STORE_DRIVER.
func OpenStore(
	ctx context.Context,
	cfg *config.App,
	logger *slog.Logger,
) (repository.SnapshotStore, error) {
	switch cfg.Store.Driver {
	case "", "file":
		logger.Debug("Using JSON file store", "path", cfg.Store.File)
		return infra_repository.NewFileStore(cfg.Store.File, logger), nil
	case "sql":
		logger.Debug("Using SQL store", "dialect", cfg.DB.Dialect)
		store, err := infra_repository.OpenGormStore(ctx, cfg.DB.Dialect, cfg.DB.Url, cfg.Env, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open sql store: %w", err)
		}
		return store, nil
	case "redis":
		logger.Debug("Using Redis store", "key", cfg.Redis.Key)
		store, err := infra_repository.OpenRedisStore(ctx, cfg.Redis.URL, cfg.Redis.Key, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open redis store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
