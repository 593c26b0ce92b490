package http

import (
	"encoding/json"
	"io"
	"net/http"

	"anamola-backend/internal/logger"
	"anamola-backend/internal/payment"
)

const maxWebhookBody = 1 << 20

type WebhookHandler struct {
	secret string
}

func NewWebhookHandler(secret string) *WebhookHandler {
	return &WebhookHandler{secret: secret}
}

type checkoutSessionObject struct {
	ID            string `json:"id"`
	PaymentStatus string `json:"payment_status"`
	CustomerEmail string `json:"customer_email"`
}

// Handle verifies the provider signature over the raw body and acknowledges
// the event. Provisioning happens on the payment-success endpoint; the
// webhook is an audit trail, so events are logged and acked only.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, err := payment.ConstructEvent(body, r.Header.Get("Stripe-Signature"), h.secret, payment.DefaultWebhookTolerance)
	if err != nil {
		logger.Warn("Webhook signature verification failed", "error", err)
		writeError(w, http.StatusBadRequest, "Webhook signature verification failed")
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var session checkoutSessionObject
		if err := json.Unmarshal(event.Data.Object, &session); err != nil {
			logger.Warn("Webhook session payload malformed", "event_id", event.ID, "error", err)
			break
		}
		logger.Info("Checkout session completed",
			"event_id", event.ID,
			"session_id", session.ID,
			"payment_status", session.PaymentStatus,
		)
	default:
		logger.Debug("Unhandled webhook event", "event_id", event.ID, "type", event.Type)
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
