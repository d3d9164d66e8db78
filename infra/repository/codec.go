package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/amirasaad/bankcli/pkg/dto"
	pkgrepo "github.com/amirasaad/bankcli/pkg/repository"
	"github.com/redis/go-redis/v9"
)

// encodeDocument writes doc as indented JSON without HTML escaping, so
// names and notes keep their accents readable in the file.
func encodeDocument(w io.Writer, doc *dto.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}

func decodeDocument(r io.Reader) (*dto.Document, error) {
	var doc dto.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if doc.Users == nil {
		doc.Users = map[string]dto.UserRecord{}
	}
	if doc.Accounts == nil {
		doc.Accounts = map[string]dto.AccountRecord{}
	}
	return &doc, nil
}

func marshalDocument(doc *dto.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeDocument(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var (
	_ pkgrepo.SnapshotStore = (*FileStore)(nil)
	_ pkgrepo.SnapshotStore = (*GormStore)(nil)
	_ pkgrepo.SnapshotStore = (*RedisStore)(nil)
	_ RedisClient           = (*redis.Client)(nil)
)
