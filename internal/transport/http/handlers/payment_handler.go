package handlers

import (
	"errors"
	"io"
	"net/http"

	paymentsvc "github.com/BorisVilhard/IT-MAXI-BE/internal/services/payments"
	httperrors "github.com/BorisVilhard/IT-MAXI-BE/internal/transport/http/errors"
)

const maxWebhookBodySize = 1 << 20

type PaymentHandler struct {
	service *paymentsvc.Service
}

func NewPaymentHandler(service *paymentsvc.Service) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// Webhook consumes billing provider events. The raw body is verified against
// the X-Signature header before any decoding happens.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "PAYMENT_SERVICE_UNAVAILABLE", "payment service is unavailable")
		return
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodySize))
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "unreadable request body")
		return
	}

	if err := h.service.HandleWebhook(r.Context(), payload, r.Header.Get("X-Signature")); err != nil {
		handlePaymentError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, map[string]string{"message": "Webhook received"})
}

func handlePaymentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, paymentsvc.ErrBadSignature):
		writeUnauthorized(w, "UNAUTHORIZED", "invalid webhook signature")
	case errors.Is(err, paymentsvc.ErrMalformedEvent):
		writeBadRequest(w, "VALIDATION_ERROR", "malformed webhook event")
	case errors.Is(err, paymentsvc.ErrUnsupportedPlan):
		writeBadRequest(w, "VALIDATION_ERROR", "unsupported price id")
	case errors.Is(err, paymentsvc.ErrUserNotFound):
		writeNotFound(w, "NOT_FOUND", "user not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "something went wrong")
	}
}
