package domain

type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Membership is the financial record of a completed payment tied to a Member.
// PaymentSessionID is unique across records: a checkout session activates at
// most one membership.
type Membership struct {
	ID               int32         `json:"id"`
	MemberID         int32         `json:"member_id"`
	MembershipType   string        `json:"membership_type"`
	AmountCents      int64         `json:"amount_cents"`
	Currency         string        `json:"currency"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
	PaymentDate      string        `json:"payment_date"`
	PaymentSessionID string        `json:"payment_session_id"`
	CreatedAt        string        `json:"created_at"`
}
