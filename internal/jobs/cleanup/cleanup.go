package cleanup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type subscriptionExpirer interface {
	ExpireSubscriptions(ctx context.Context, cutoff time.Time) ([]int64, error)
}

// Job downgrades paid subscriptions whose period has lapsed. It runs in
// the background so entitlements do not outlive what was paid for.
type Job struct {
	users  subscriptionExpirer
	now    func() time.Time
	logger *zap.Logger
}

func NewSubscriptionExpiryJob(users subscriptionExpirer, logger *zap.Logger) *Job {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		users:  users,
		now:    time.Now,
		logger: logger,
	}
}

func (j *Job) Run(ctx context.Context) error {
	if j.users == nil {
		return nil
	}

	expired, err := j.users.ExpireSubscriptions(ctx, j.now())
	if err != nil {
		return fmt.Errorf("expire lapsed subscriptions: %w", err)
	}
	if len(expired) > 0 {
		j.logger.Info("expired lapsed subscriptions", zap.Int("count", len(expired)))
	}

	return nil
}

// Start runs the job on a fixed interval until ctx is cancelled.
func (j *Job) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := j.Run(ctx); err != nil {
					j.logger.Warn("subscription expiry run failed", zap.Error(err))
				}
			}
		}
	}()
}
