package rate

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

const window = time.Minute

type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// Limiter enforces a fixed per-minute write budget per user and scope.
type Limiter struct {
	store WindowStore
}

func NewLimiter(store WindowStore) *Limiter {
	return &Limiter{store: store}
}

// Allow consumes one slot for the user in the named scope. When the
// budget is exhausted it returns allowed=false plus the seconds until
// the window resets. A zero or negative limit disables the check.
func (l *Limiter) Allow(ctx context.Context, scope string, userID int64, perMinute int) (bool, int64, error) {
	if userID <= 0 || scope == "" {
		return false, 0, fmt.Errorf("invalid rate limit payload")
	}
	if perMinute <= 0 {
		return true, 0, nil
	}
	if l.store == nil {
		return false, 0, fmt.Errorf("rate limiter store is nil")
	}

	count, ttl, err := l.store.IncrementWindow(ctx, key(scope, userID), window)
	if err != nil {
		return false, 0, err
	}
	if count > int64(perMinute) {
		return false, ceilSeconds(ttl), nil
	}

	return true, 0, nil
}

func key(scope string, userID int64) string {
	return "rate:" + scope + ":" + strconv.FormatInt(userID, 10)
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 1
	}
	sec := int64(d / time.Second)
	if d%time.Second != 0 {
		sec++
	}
	if sec <= 0 {
		sec = 1
	}
	return sec
}
