package config

import (
	"log/slog"

	"github.com/amirasaad/bankcli/pkg/bank"
	"github.com/amirasaad/bankcli/pkg/repository"
)

// Deps holds everything a session needs: the restored bank, the store it
// came from and the logger.
type Deps struct {
	Bank   *bank.Bank
	Store  repository.SnapshotStore
	Logger *slog.Logger
	Config *App
}
