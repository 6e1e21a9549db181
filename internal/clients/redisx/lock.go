package redisx

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/pantrypal/pantrypal-backend/internal/platform/logger"
)

const importLockTTL = 10 * time.Minute

// ImportLock serializes import runs per user. A second run for the same user
// while one is in flight is refused rather than queued.
type ImportLock interface {
	// Acquire returns held=false when another run owns the lock. The release
	// func is always safe to call.
	Acquire(ctx context.Context, userID uuid.UUID) (release func(), held bool, err error)
	Close() error
}

type importLock struct {
	rdb *goredis.Client
	log *logger.Logger
}

func NewImportLock(addr string, logg *logger.Logger) (ImportLock, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &importLock{rdb: rdb, log: logg.With("client", "ImportLock")}, nil
}

func (l *importLock) Acquire(ctx context.Context, userID uuid.UUID) (func(), bool, error) {
	key := "import_lock:" + userID.String()
	ok, err := l.rdb.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), importLockTTL).Result()
	if err != nil {
		return func() {}, false, fmt.Errorf("acquire import lock: %w", err)
	}
	if !ok {
		return func() {}, false, nil
	}
	release := func() {
		rctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := l.rdb.Del(rctx, key).Err(); err != nil {
			l.log.Warn("Failed to release import lock", "key", key, "error", err)
		}
	}
	return release, true, nil
}

func (l *importLock) Close() error { return l.rdb.Close() }

// NoopLock is used when redis is not configured. Every acquire succeeds, so
// single-instance deployments still work without a broker.
type NoopLock struct{}

func (NoopLock) Acquire(context.Context, uuid.UUID) (func(), bool, error) {
	return func() {}, true, nil
}

func (NoopLock) Close() error { return nil }
