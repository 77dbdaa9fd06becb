package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/BorisVilhard/IT-MAXI-BE/internal/domain/model"
	pgrepo "github.com/BorisVilhard/IT-MAXI-BE/internal/repo/postgres"
)

type memorySubscriptionStore struct {
	subs map[int64]model.Subscription
}

func (m *memorySubscriptionStore) UpdateSubscription(_ context.Context, userID int64, sub model.Subscription) error {
	if userID == 404 {
		return pgrepo.ErrUserNotFound
	}
	m.subs[userID] = sub
	return nil
}

const testSecret = "whsec_test"

func sign(t *testing.T, payload []byte) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func newPaymentsFixture() (*Service, *memorySubscriptionStore) {
	store := &memorySubscriptionStore{subs: make(map[int64]model.Subscription)}
	svc := NewService(store, testSecret, nil)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc, store
}

func TestHandleWebhookActivatesSubscription(t *testing.T) {
	svc, store := newPaymentsFixture()

	payload := []byte(`{"type":"invoice.payment_succeeded","data":{"userId":7,"priceId":"price_company_tier3_99eur","subscriptionId":"sub_1"}}`)
	if err := svc.HandleWebhook(context.Background(), payload, sign(t, payload)); err != nil {
		t.Fatalf("handle: %v", err)
	}

	sub, ok := store.subs[7]
	if !ok {
		t.Fatal("subscription not written")
	}
	if sub.Role != "company" || sub.JobLimit != 5 || sub.VisibilityDays != 30 || !sub.CanTop || sub.TopDays != 7 {
		t.Fatalf("wrong entitlements: %+v", sub)
	}
	if sub.Status != "active" {
		t.Fatalf("status %q", sub.Status)
	}
	wantEnd := time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC)
	if sub.CurrentPeriodEnd == nil || !sub.CurrentPeriodEnd.Equal(wantEnd) {
		t.Fatalf("period end: %v", sub.CurrentPeriodEnd)
	}
}

func TestHandleWebhookRejectsBadSignature(t *testing.T) {
	svc, store := newPaymentsFixture()

	payload := []byte(`{"type":"invoice.payment_succeeded","data":{"userId":7,"priceId":"price_regular_tier2_19eur"}}`)
	if err := svc.HandleWebhook(context.Background(), payload, "deadbeef"); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
	if len(store.subs) != 0 {
		t.Fatal("subscription written despite bad signature")
	}
}

func TestHandleWebhookRejectsUnknownPriceID(t *testing.T) {
	svc, _ := newPaymentsFixture()

	payload := []byte(`{"type":"invoice.payment_succeeded","data":{"userId":7,"priceId":"price_gold_tier9"}}`)
	if err := svc.HandleWebhook(context.Background(), payload, sign(t, payload)); !errors.Is(err, ErrUnsupportedPlan) {
		t.Fatalf("expected ErrUnsupportedPlan, got %v", err)
	}
}

func TestHandleWebhookIgnoresOtherEventTypes(t *testing.T) {
	svc, store := newPaymentsFixture()

	payload := []byte(`{"type":"customer.created","data":{"id":"cus_1"}}`)
	if err := svc.HandleWebhook(context.Background(), payload, sign(t, payload)); err != nil {
		t.Fatalf("expected ack for unknown event, got %v", err)
	}
	if len(store.subs) != 0 {
		t.Fatal("unexpected subscription write")
	}
}

func TestHandleWebhookUnknownUser(t *testing.T) {
	svc, _ := newPaymentsFixture()

	payload := []byte(`{"type":"invoice.payment_succeeded","data":{"userId":404,"priceId":"price_regular_tier1_free"}}`)
	if err := svc.HandleWebhook(context.Background(), payload, sign(t, payload)); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPlanTable(t *testing.T) {
	plan, ok := PlanForPriceID("price_regular_tier3_59eur")
	if !ok {
		t.Fatal("known price id not found")
	}
	if plan.JobLimit != 3 || !plan.CanTop || plan.TopDays != 30 {
		t.Fatalf("wrong plan: %+v", plan)
	}
	if _, ok := PlanForPriceID("nope"); ok {
		t.Fatal("unknown price id resolved")
	}
}
