package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/amirasaad/bankcli/pkg/dto"
	pkgrepo "github.com/amirasaad/bankcli/pkg/repository"
	"github.com/redis/go-redis/v9"
)

// RedisClient is the part of the go-redis command surface the store uses.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisStore keeps the JSON document under a single key.
type RedisStore struct {
	client RedisClient
	key    string
	logger *slog.Logger
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client RedisClient, key string, logger *slog.Logger) *RedisStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisStore{client: client, key: key, logger: logger}
}

// OpenRedisStore parses a redis:// URL, connects and checks the server
// answers.
func OpenRedisStore(ctx context.Context, url, key string, logger *slog.Logger) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close() //nolint:errcheck
		return nil, fmt.Errorf("connect to redis %s: %w", opt.Addr, err)
	}
	return NewRedisStore(client, key, logger), nil
}

// Load fetches the document. A missing key yields ErrSnapshotNotFound.
func (s *RedisStore) Load(ctx context.Context) (*dto.Document, error) {
	val, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		s.logger.Debug("no snapshot in redis yet", "key", s.key)
		return nil, pkgrepo.ErrSnapshotNotFound
	}
	if err != nil {
		s.logger.Error("redis get failed", "key", s.key, "error", err)
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	doc, err := decodeDocument(bytes.NewReader(val))
	if err != nil {
		return nil, fmt.Errorf("redis key %s: %w", s.key, err)
	}
	s.logger.Info("snapshot loaded", "store", "redis", "key", s.key,
		"users", len(doc.Users), "accounts", len(doc.Accounts))
	return doc, nil
}

// Save overwrites the key with doc. The key never expires.
func (s *RedisStore) Save(ctx context.Context, doc *dto.Document) error {
	data, err := marshalDocument(doc)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		s.logger.Error("redis set failed", "key", s.key, "error", err)
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	s.logger.Info("snapshot saved", "store", "redis", "key", s.key,
		"users", len(doc.Users), "accounts", len(doc.Accounts))
	return nil
}

// Close closes the client when it owns a connection pool.
func (s *RedisStore) Close() error {
	if c, ok := s.client.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
