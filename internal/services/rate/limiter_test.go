package rate

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	redrepo "github.com/BorisVilhard/IT-MAXI-BE/internal/repo/redis"
)

func TestLimiterBlocksWhenBudgetExhausted(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	limiter := NewLimiter(redrepo.NewRateRepo(client))

	ctx := context.Background()
	userID := int64(42)

	for i := 0; i < 3; i++ {
		allowed, retryAfter, err := limiter.Allow(ctx, "profile_write", userID, 3)
		if err != nil {
			t.Fatalf("allow #%d: %v", i+1, err)
		}
		if !allowed || retryAfter != 0 {
			t.Fatalf("unexpected result on allow #%d: allowed=%v retry_after=%d", i+1, allowed, retryAfter)
		}
	}

	allowed, retryAfter, err := limiter.Allow(ctx, "profile_write", userID, 3)
	if err != nil {
		t.Fatalf("allow #4: %v", err)
	}
	if allowed {
		t.Fatalf("expected block on fourth write in the window")
	}
	if retryAfter <= 0 || retryAfter > 60 {
		t.Fatalf("unexpected retry_after: %d", retryAfter)
	}
}

func TestLimiterScopesAreIndependent(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	limiter := NewLimiter(redrepo.NewRateRepo(client))
	ctx := context.Background()

	if allowed, _, err := limiter.Allow(ctx, "profile_write", 7, 1); err != nil || !allowed {
		t.Fatalf("first profile write should pass: allowed=%v err=%v", allowed, err)
	}
	if allowed, _, err := limiter.Allow(ctx, "profile_write", 7, 1); err != nil || allowed {
		t.Fatalf("second profile write should block: allowed=%v err=%v", allowed, err)
	}
	if allowed, _, err := limiter.Allow(ctx, "interaction_write", 7, 1); err != nil || !allowed {
		t.Fatalf("interaction write should be unaffected: allowed=%v err=%v", allowed, err)
	}
}

func TestLimiterZeroLimitDisablesCheck(t *testing.T) {
	limiter := NewLimiter(nil)

	allowed, retryAfter, err := limiter.Allow(context.Background(), "profile_write", 1, 0)
	if err != nil {
		t.Fatalf("allow with zero limit: %v", err)
	}
	if !allowed || retryAfter != 0 {
		t.Fatalf("zero limit should always allow: allowed=%v retry_after=%d", allowed, retryAfter)
	}
}

func newMiniRedisClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	return mr, client
}
