package payment

import (
	"context"
	"errors"
)

var ErrSessionNotFound = errors.New("checkout session not found")

// Status is the provider's view of a checkout session's payment.
type Status string

const (
	StatusPaid    Status = "paid"
	StatusUnpaid  Status = "unpaid"
	StatusPending Status = "pending"
)

// CheckoutParams describes a fixed-amount membership checkout.
type CheckoutParams struct {
	Email          string
	FullName       string
	MembershipType string
	AmountCents    int64
	Currency       string
	SuccessURL     string
	CancelURL      string
}

// CheckoutSession is the provider's record of a checkout.
type CheckoutSession struct {
	ID            string
	URL           string
	PaymentStatus Status
	AmountCents   int64
	Currency      string
	CustomerEmail string
	Metadata      map[string]string
}

// Provider is the external checkout/payment-status service.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	GetSession(ctx context.Context, id string) (*CheckoutSession, error)
}
