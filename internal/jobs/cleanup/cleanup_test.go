package cleanup

import (
	"context"
	"testing"
	"time"
)

func TestRunExpiresOnlyLapsedSubscriptions(t *testing.T) {
	now := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)

	users := &fakeExpirer{
		periodEnds: map[int64]time.Time{
			1: now.Add(-time.Hour),
			2: now.Add(24 * time.Hour),
			3: now.Add(-30 * 24 * time.Hour),
		},
	}

	job := NewSubscriptionExpiryJob(users, nil)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run expiry job: %v", err)
	}

	if len(users.expired) != 2 {
		t.Fatalf("expected 2 expired users, got %v", users.expired)
	}
	for _, id := range users.expired {
		if id == 2 {
			t.Fatalf("user 2 is still within its paid period")
		}
	}
}

func TestRunWithoutStoreIsNoop(t *testing.T) {
	job := NewSubscriptionExpiryJob(nil, nil)
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

type fakeExpirer struct {
	periodEnds map[int64]time.Time
	expired    []int64
}

func (f *fakeExpirer) ExpireSubscriptions(_ context.Context, cutoff time.Time) ([]int64, error) {
	var affected []int64
	for id, end := range f.periodEnds {
		if end.Before(cutoff) {
			affected = append(affected, id)
		}
	}
	f.expired = append(f.expired, affected...)
	return affected, nil
}
