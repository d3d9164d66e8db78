package repository

import (
	"context"
	"errors"

	"github.com/amirasaad/bankcli/pkg/dto"
)

// ErrSnapshotNotFound is returned by Load when nothing has been saved yet.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore persists the whole bank document. A single session is the
// only writer; stores do not coordinate concurrent writers.
type SnapshotStore interface {
	// Load reads the last saved document or returns ErrSnapshotNotFound.
	Load(ctx context.Context) (*dto.Document, error)
	// Save replaces the stored document with doc.
	Save(ctx context.Context, doc *dto.Document) error
	Close() error
}
