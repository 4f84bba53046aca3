package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ruteri/kyc-onboarding-backend/interfaces"
)

// DefaultRedisKey is the key holding the record when the URI names none.
const DefaultRedisKey = "kyc:admin-credentials"

// RedisStore keeps the credential record under a single Redis key. SET
// replaces the value whole, so readers never see a partial record.
type RedisStore struct {
	client      *redis.Client
	key         string
	codec       RecordCodec
	log         *slog.Logger
	locationURI string
}

// NewRedisStore creates a store from a go-redis URL such as
// redis://:password@localhost:6379/0.
func NewRedisStore(url, key string, codec RecordCodec, log *slog.Logger) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrInvalidLocationURI, err)
	}

	return newRedisStore(redis.NewClient(opts), key, codec, log), nil
}

func newRedisStore(client *redis.Client, key string, codec RecordCodec, log *slog.Logger) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	if codec == nil {
		codec = JSONCodec{}
	}
	opts := client.Options()
	return &RedisStore{
		client:      client,
		key:         key,
		codec:       codec,
		log:         log,
		locationURI: fmt.Sprintf("redis://%s/%d?key=%s", opts.Addr, opts.DB, key),
	}
}

func (s *RedisStore) Load(ctx context.Context) (*interfaces.AdminCredentialPair, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, interfaces.ErrCredentialsNotFound
	}
	if err != nil {
		s.log.Error("Failed to get credential record from Redis",
			slog.String("key", s.key),
			"err", err)
		return nil, fmt.Errorf("%w: %v", interfaces.ErrBackendUnavailable, err)
	}

	pair, err := s.codec.Decode(data)
	if err != nil {
		return nil, &interfaces.CacheCorruptError{Location: s.locationURI, Err: err}
	}
	return pair, nil
}

func (s *RedisStore) Save(ctx context.Context, pair *interfaces.AdminCredentialPair) error {
	data, err := s.codec.Encode(pair)
	if err != nil {
		return fmt.Errorf("failed to encode credential record: %w", err)
	}

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		s.log.Error("Failed to set credential record in Redis",
			slog.String("key", s.key),
			"err", err)
		return fmt.Errorf("%w: %v", interfaces.ErrBackendUnavailable, err)
	}

	s.log.Info("Stored credential record in Redis", slog.String("key", s.key))
	return nil
}

// Available pings the server.
func (s *RedisStore) Available(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.client.Ping(pingCtx).Err(); err != nil {
		s.log.Debug("Redis store unavailable", "err", err)
		return false
	}
	return true
}

func (s *RedisStore) Name() string {
	return fmt.Sprintf("redis-%s", s.key)
}

func (s *RedisStore) LocationURI() string {
	return s.locationURI
}

// Close releases the connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
