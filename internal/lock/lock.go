// Package lock serializes the check-then-commit span of booking and
// rescheduling per barber.
package lock

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotAcquired is returned when ctx ends before the lock is obtained.
var ErrNotAcquired = errors.New("lock not acquired")

// Unlock releases a held lock. It is safe to call more than once.
type Unlock func()

type Locker interface {
	// Lock blocks until key is held by the caller or ctx is done.
	Lock(ctx context.Context, key string) (Unlock, error)
}

func BarberKey(barberID uint) string {
	return fmt.Sprintf("barber:%d", barberID)
}
