package domain

type MembershipStatus string

const (
	MembershipStatusPending   MembershipStatus = "pending"
	MembershipStatusActive    MembershipStatus = "active"
	MembershipStatusInactive  MembershipStatus = "inactive"
	MembershipStatusSuspended MembershipStatus = "suspended"
)

type MemberRole string

const (
	MemberRoleMember MemberRole = "member"
	MemberRoleAdmin  MemberRole = "admin"
)

// Member is a registered participant. MemberID is assigned once at creation
// and never changes; MembershipStatus is the only field mutated afterwards.
type Member struct {
	ID                int32            `json:"id"`
	IdentityID        string           `json:"-"` // identity store user id, never exposed
	Email             string           `json:"email"`
	FullName          string           `json:"full_name"`
	Phone             string           `json:"phone,omitempty"`
	DateOfBirth       string           `json:"date_of_birth,omitempty"`
	Address           string           `json:"address,omitempty"`
	City              string           `json:"city,omitempty"`
	Province          string           `json:"province,omitempty"`
	PostalCode        string           `json:"postal_code,omitempty"`
	Occupation        string           `json:"occupation,omitempty"`
	EducationLevel    string           `json:"education_level,omitempty"`
	ContactPreference string           `json:"contact_preference,omitempty"`
	MemberID          string           `json:"member_id"`
	Role              MemberRole       `json:"role"`
	MembershipStatus  MembershipStatus `json:"membership_status"`
	CreatedAt         string           `json:"created_at"`
	UpdatedAt         string           `json:"updated_at,omitempty"`
}
