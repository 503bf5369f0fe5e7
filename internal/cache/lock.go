package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	lockTTL      = 5 * time.Second
	lockAttempts = 3
	lockBackoff  = 100 * time.Millisecond
)

var ErrLockNotAcquired = errors.New("system busy, please try again later (lock)")

// WithLock runs fn while holding the named lock, retrying acquisition a few
// times before giving up. The cluster document is the platform's most
// contended resource; every read-modify-write cycle on it runs under its
// per-cluster lock.
func WithLock(ctx context.Context, l Locker, key string, fn func() error) error {
	value := uuid.New().String()

	acquired := false
	for i := 0; i < lockAttempts; i++ {
		ok, err := l.AcquireLock(ctx, key, value, lockTTL)
		if err != nil {
			return err
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(lockBackoff)
	}
	if !acquired {
		return ErrLockNotAcquired
	}
	defer l.ReleaseLock(ctx, key, value)

	return fn()
}
