package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BorisVilhard/IT-MAXI-BE/internal/domain/model"
	pgrepo "github.com/BorisVilhard/IT-MAXI-BE/internal/repo/postgres"
)

var (
	ErrBadSignature    = errors.New("invalid webhook signature")
	ErrMalformedEvent  = errors.New("malformed webhook event")
	ErrUnsupportedPlan = errors.New("unsupported plan")
	ErrUserNotFound    = errors.New("user not found")
)

const subscriptionPeriod = 30 * 24 * time.Hour

type SubscriptionStore interface {
	UpdateSubscription(ctx context.Context, userID int64, sub model.Subscription) error
}

// Service consumes provider-signed billing webhooks and turns paid
// invoices into subscription entitlements. Talking to the provider's
// API (creating customers, subscriptions, payment intents) happens
// elsewhere; this side only trusts what the signature proves.
type Service struct {
	store  SubscriptionStore
	secret string
	log    *zap.Logger
	now    func() time.Time
}

func NewService(store SubscriptionStore, webhookSecret string, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:  store,
		secret: webhookSecret,
		log:    log,
		now:    time.Now,
	}
}

type event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type paymentSucceeded struct {
	UserID         int64  `json:"userId"`
	PriceID        string `json:"priceId"`
	SubscriptionID string `json:"subscriptionId"`
}

// VerifySignature checks the hex HMAC-SHA256 of the raw payload
// against the shared webhook secret.
func (s *Service) VerifySignature(payload []byte, signature string) error {
	if s.secret == "" || signature == "" {
		return ErrBadSignature
	}

	mac := hmac.New(sha256.New, []byte(s.secret))
	mac.Write(payload)
	want := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(want), []byte(signature)) {
		return ErrBadSignature
	}
	return nil
}

// HandleWebhook verifies and applies one webhook delivery. Event types
// this service does not care about are acknowledged and dropped, the
// provider should not retry them.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if err := s.VerifySignature(payload, signature); err != nil {
		return err
	}

	var ev event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return fmt.Errorf("decode event: %w", ErrMalformedEvent)
	}

	switch ev.Type {
	case "invoice.payment_succeeded":
		return s.handlePaymentSucceeded(ctx, ev.Data)
	default:
		s.log.Info("ignoring webhook event", zap.String("type", ev.Type))
		return nil
	}
}

func (s *Service) handlePaymentSucceeded(ctx context.Context, data json.RawMessage) error {
	var ev paymentSucceeded
	if err := json.Unmarshal(data, &ev); err != nil || ev.UserID <= 0 || ev.PriceID == "" {
		return fmt.Errorf("payment_succeeded payload: %w", ErrMalformedEvent)
	}

	plan, ok := PlanForPriceID(ev.PriceID)
	if !ok {
		return fmt.Errorf("price id %q: %w", ev.PriceID, ErrUnsupportedPlan)
	}

	periodEnd := s.now().Add(subscriptionPeriod)
	err := s.store.UpdateSubscription(ctx, ev.UserID, model.Subscription{
		PlanID:           plan.PriceID,
		Role:             string(plan.Role),
		JobLimit:         plan.JobLimit,
		VisibilityDays:   plan.VisibilityDays,
		CanTop:           plan.CanTop,
		TopDays:          plan.TopDays,
		Status:           "active",
		CurrentPeriodEnd: &periodEnd,
	})
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("update subscription: %w", err)
	}

	s.log.Info("subscription activated",
		zap.Int64("user_id", ev.UserID),
		zap.String("plan", plan.Name),
	)
	return nil
}
