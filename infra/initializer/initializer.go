package initializer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/amirasaad/bankcli/pkg/bank"
	"github.com/amirasaad/bankcli/pkg/config"
	"github.com/amirasaad/bankcli/pkg/repository"
	"github.com/amirasaad/bankcli/pkg/utils"
)

// InitializeDependencies builds the logger and the store, then restores the
// bank from the last saved snapshot. An empty store yields an empty bank.
func InitializeDependencies(ctx context.Context, cfg *config.App) (*config.Deps, error) {
	return initialize(ctx, cfg, os.Stderr)
}

func initialize(ctx context.Context, cfg *config.App, logOut io.Writer) (deps *config.Deps, err error) {
	logger := setupLogger(cfg.Log, logOut)

	store, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = store.Close()
		}
	}()

	b := bank.New(logger,
		bank.WithHasher(utils.BcryptHasher{Cost: cfg.Auth.BcryptCost}),
		bank.WithAccountDefaults(bank.AccountDefaults{
			Agency:             cfg.Ledger.Agency,
			DailyWithdrawLimit: cfg.Ledger.DailyWithdrawLimit,
			PerWithdrawLimit:   cfg.Ledger.PerWithdrawLimit,
		}),
	)

	doc, err := store.Load(ctx)
	switch {
	case errors.Is(err, repository.ErrSnapshotNotFound):
		logger.Info("No saved data found, starting with an empty bank")
		err = nil
	case err != nil:
		return nil, fmt.Errorf("failed to load saved data: %w", err)
	default:
		if err = b.Restore(doc); err != nil {
			return nil, fmt.Errorf("failed to restore saved data: %w", err)
		}
	}

	return &config.Deps{
		Bank:   b,
		Store:  store,
		Logger: logger,
		Config: cfg,
	}, nil
}
