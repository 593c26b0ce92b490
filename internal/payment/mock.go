package payment

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MockProvider is an in-memory payment backend for development and tests,
// selected with payment.type "mock". Sessions start unpaid; tests flip them
// with SetPaymentStatus.
type MockProvider struct {
	mu       sync.RWMutex
	sessions map[string]*CheckoutSession
}

func NewMockProvider() *MockProvider {
	return &MockProvider{sessions: make(map[string]*CheckoutSession)}
}

func (p *MockProvider) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	session := &CheckoutSession{
		ID:            "cs_mock_" + uuid.NewString(),
		PaymentStatus: StatusUnpaid,
		AmountCents:   params.AmountCents,
		Currency:      params.Currency,
		CustomerEmail: params.Email,
		Metadata: map[string]string{
			"email":          params.Email,
			"fullName":       params.FullName,
			"membershipType": params.MembershipType,
		},
	}
	session.URL = fmt.Sprintf("https://checkout.mock.local/pay/%s", session.ID)

	p.mu.Lock()
	p.sessions[session.ID] = session
	p.mu.Unlock()
	return p.copyOf(session), nil
}

func (p *MockProvider) GetSession(ctx context.Context, id string) (*CheckoutSession, error) {
	p.mu.RLock()
	session, ok := p.sessions[id]
	p.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return p.copyOf(session), nil
}

// SetPaymentStatus marks a stored session, simulating the shopper finishing
// or abandoning checkout.
func (p *MockProvider) SetPaymentStatus(id string, status Status) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	session, ok := p.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	session.PaymentStatus = status
	return nil
}

func (p *MockProvider) copyOf(s *CheckoutSession) *CheckoutSession {
	out := *s
	out.Metadata = make(map[string]string, len(s.Metadata))
	for k, v := range s.Metadata {
		out.Metadata[k] = v
	}
	return &out
}
