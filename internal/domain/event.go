package domain

type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusOngoing   EventStatus = "ongoing"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

type Event struct {
	ID                   int32       `json:"id"`
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	ShortDescription     string      `json:"short_description,omitempty"`
	StartDate            string      `json:"start_date"`
	EndDate              string      `json:"end_date"`
	Location             string      `json:"location"`
	MaxParticipants      *int32      `json:"max_participants,omitempty"`
	RegistrationRequired bool        `json:"registration_required"`
	RegistrationDeadline string      `json:"registration_deadline,omitempty"`
	Status               EventStatus `json:"status"`
	Featured             bool        `json:"featured"`
	CreatedAt            string      `json:"created_at"`
	UpdatedAt            string      `json:"updated_at,omitempty"`
}

type EventRegistration struct {
	ID               int32  `json:"id"`
	MemberID         int32  `json:"member_id"`
	EventID          int32  `json:"event_id"`
	Status           string `json:"status"`
	RegistrationDate string `json:"registration_date"`
}
