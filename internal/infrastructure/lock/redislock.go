package lock

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrBusy is returned when another holder owns the key.
var ErrBusy = errors.New("operation already in progress")

type Locker interface {
	// WithLock runs fn while holding key. The lock is released when fn returns.
	WithLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error
}

type RedisLocker struct {
	client *redislock.Client
	log    *logrus.Logger
}

func NewRedisLocker(rdb redis.UniversalClient, log *logrus.Logger) *RedisLocker {
	return &RedisLocker{client: redislock.New(rdb), log: log}
}

func (l *RedisLocker) WithLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error {
	lk, err := l.client.Obtain(ctx, "lock:"+key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return ErrBusy
	}
	if err != nil {
		return err
	}
	defer func() {
		// use a fresh context so a cancelled request still releases
		if rerr := lk.Release(context.Background()); rerr != nil && !errors.Is(rerr, redislock.ErrLockNotHeld) {
			l.log.WithError(rerr).WithField("key", key).Warn("redis lock release failed")
		}
	}()
	return fn(ctx)
}

// Nop runs fn without coordination, for single-instance setups and tests.
type Nop struct{}

func (Nop) WithLock(ctx context.Context, _ string, _ time.Duration, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
