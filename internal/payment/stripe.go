package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"anamola-backend/internal/logger"

	"github.com/google/uuid"
)

const stripeAPIBase = "https://api.stripe.com/v1"

// StripeProvider talks to the Stripe Checkout Sessions API directly. The
// API is plain form-encoded HTTP, so no SDK is used.
type StripeProvider struct {
	secretKey string
	baseURL   string
	http      *http.Client
}

func NewStripeProvider(secretKey string) *StripeProvider {
	return &StripeProvider{
		secretKey: secretKey,
		baseURL:   stripeAPIBase,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

// NewStripeProviderWithBaseURL is used by tests to point at a stub server.
func NewStripeProviderWithBaseURL(secretKey, baseURL string) *StripeProvider {
	p := NewStripeProvider(secretKey)
	p.baseURL = baseURL
	return p
}

type stripeSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	CustomerEmail string            `json:"customer_email"`
	Metadata      map[string]string `json:"metadata"`
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price_data][currency]", strings.ToLower(params.Currency))
	form.Set("line_items[0][price_data][product_data][name]", params.MembershipType)
	form.Set("line_items[0][price_data][product_data][description]", "Anamola Party Membership")
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.AmountCents, 10))
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	form.Set("customer_email", params.Email)
	form.Set("metadata[email]", params.Email)
	form.Set("metadata[fullName]", params.FullName)
	form.Set("metadata[membershipType]", params.MembershipType)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Idempotency-Key", uuid.NewString())

	logger.ExternalServiceCall("stripe", "CreateCheckoutSession", "email", params.Email)
	session, err := p.do(req)
	logger.ExternalServiceResult("stripe", "CreateCheckoutSession", err, "email", params.Email)
	return session, err
}

func (p *StripeProvider) GetSession(ctx context.Context, id string) (*CheckoutSession, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/checkout/sessions/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)

	logger.ExternalServiceCall("stripe", "GetSession", "session_id", id)
	session, err := p.do(req)
	logger.ExternalServiceResult("stripe", "GetSession", err, "session_id", id)
	return session, err
}

func (p *StripeProvider) do(req *http.Request) (*CheckoutSession, error) {
	resp, err := p.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrSessionNotFound
	}
	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return nil, fmt.Errorf("stripe returned status %d: %s", resp.StatusCode, apiErr.Error.Message)
	}

	var s stripeSession
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, err
	}
	return &CheckoutSession{
		ID:            s.ID,
		URL:           s.URL,
		PaymentStatus: Status(s.PaymentStatus),
		AmountCents:   s.AmountTotal,
		Currency:      strings.ToUpper(s.Currency),
		CustomerEmail: s.CustomerEmail,
		Metadata:      s.Metadata,
	}, nil
}
