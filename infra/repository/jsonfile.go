package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/amirasaad/bankcli/pkg/dto"
	pkgrepo "github.com/amirasaad/bankcli/pkg/repository"
)

// FileStore keeps the bank document in a single JSON file.
type FileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore returns a store backed by the file at path. The file does
// not need to exist yet.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{path: path, logger: logger}
}

// Path returns the file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads and decodes the file. A missing file yields ErrSnapshotNotFound.
func (s *FileStore) Load(ctx context.Context) (*dto.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("no data file yet", "path", s.path)
		return nil, pkgrepo.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close() //nolint:errcheck

	doc, err := decodeDocument(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	s.logger.Info("snapshot loaded", "store", "file", "path", s.path,
		"users", len(doc.Users), "accounts", len(doc.Accounts))
	return doc, nil
}

// Save writes doc next to the target and renames it into place, so a
// failed write never truncates the previous file.
func (s *FileStore) Save(ctx context.Context, doc *dto.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	if err := encodeDocument(f, doc); err != nil {
		f.Close()      //nolint:errcheck
		os.Remove(tmp) //nolint:errcheck
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp) //nolint:errcheck
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp) //nolint:errcheck
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	s.logger.Info("snapshot saved", "store", "file", "path", s.path,
		"users", len(doc.Users), "accounts", len(doc.Accounts))
	return nil
}

// Close is a no-op; the file is opened per call.
func (s *FileStore) Close() error {
	return nil
}
