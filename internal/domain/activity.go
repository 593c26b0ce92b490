package domain

// UserActivity is an append-only log row. Rows are never updated or deleted.
type UserActivity struct {
	ID           int32  `json:"id"`
	MemberID     int32  `json:"member_id"`
	ActivityType string `json:"activity_type"`
	Details      string `json:"details"`
	CreatedAt    string `json:"created_at"`
}

const (
	ActivityRegistered        = "registered"
	ActivityLoggedIn          = "logged_in"
	ActivityMembershipPaid    = "membership_paid"
	ActivityEventRegistration = "event_registration"
)
