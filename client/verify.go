package client

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"
)

var (
	// ErrVerificationInFlight is returned when Verify is called while a
	// previous call is still running.
	ErrVerificationInFlight = errors.New("payment verification already in progress")
	// ErrVerificationFailed is returned after the retry budget is spent;
	// Reset re-arms the verifier for another round.
	ErrVerificationFailed = errors.New("payment verification failed, reset to try again")
)

const (
	defaultMaxRetries      = 3
	defaultIncompleteDelay = 2 * time.Second
	defaultNetworkDelay    = 3 * time.Second
)

// PaymentVerifier drives the post-checkout verification call with a bounded
// retry budget: at most 1+maxRetries attempts, waiting incompleteDelay after
// a "payment not completed" answer and networkDelay after a transport
// failure. A verifier that has failed terminally rejects further Verify
// calls until Reset.
type PaymentVerifier struct {
	client          *Client
	maxRetries      int
	incompleteDelay time.Duration
	networkDelay    time.Duration

	mu       sync.Mutex
	inFlight bool
	failed   bool

	// sleep is replaceable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewPaymentVerifier(c *Client) *PaymentVerifier {
	return &PaymentVerifier{
		client:          c,
		maxRetries:      defaultMaxRetries,
		incompleteDelay: defaultIncompleteDelay,
		networkDelay:    defaultNetworkDelay,
		sleep:           sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Reset re-arms the verifier after a terminal failure.
func (v *PaymentVerifier) Reset() {
	v.mu.Lock()
	v.failed = false
	v.mu.Unlock()
}

// Verify calls the payment-success endpoint until it succeeds, a
// non-retryable error occurs, or the retry budget runs out.
func (v *PaymentVerifier) Verify(ctx context.Context, sessionID, email, fullName, membershipType string) (*PaymentSuccessResponse, error) {
	v.mu.Lock()
	if v.inFlight {
		v.mu.Unlock()
		return nil, ErrVerificationInFlight
	}
	if v.failed {
		v.mu.Unlock()
		return nil, ErrVerificationFailed
	}
	v.inFlight = true
	v.mu.Unlock()

	result, err := v.verify(ctx, sessionID, email, fullName, membershipType)

	v.mu.Lock()
	v.inFlight = false
	if err != nil {
		v.failed = true
	}
	v.mu.Unlock()
	return result, err
}

func (v *PaymentVerifier) verify(ctx context.Context, sessionID, email, fullName, membershipType string) (*PaymentSuccessResponse, error) {
	var lastErr error
	for attempt := 0; attempt <= v.maxRetries; attempt++ {
		result, err := v.client.PaymentSuccess(ctx, sessionID, email, fullName, membershipType)
		if err == nil {
			return result, nil
		}
		lastErr = err

		delay, retryable := retryDelay(err, v.incompleteDelay, v.networkDelay)
		if !retryable || attempt == v.maxRetries {
			break
		}
		if err := v.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

// retryDelay classifies an attempt failure. A 400 "payment not completed"
// means the provider has not settled yet; transport errors may be
// transient. Everything else is terminal.
func retryDelay(err error, incompleteDelay, networkDelay time.Duration) (time.Duration, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusBadRequest && apiErr.Message == "Payment not completed" {
			return incompleteDelay, true
		}
		return 0, false
	}
	return networkDelay, true
}
