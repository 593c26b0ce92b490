package domain

// AdminStats aggregates the counters shown on the admin dashboard.
type AdminStats struct {
	TotalMembers      int32 `json:"total_members"`
	TotalNews         int32 `json:"total_news"`
	UpcomingEvents    int32 `json:"upcoming_events"`
	TotalRevenueCents int64 `json:"total_revenue_cents"`
}

// DashboardStats aggregates the counters shown on the member dashboard.
type DashboardStats struct {
	EventsAttended int32 `json:"events_attended"`
	TotalEvents    int32 `json:"total_events"`
	TotalNews      int32 `json:"total_news"`
}

// Dashboard is the member dashboard payload. List fields are never nil.
type Dashboard struct {
	Profile            *Member             `json:"profile"`
	Membership         *Membership         `json:"membership"`
	Stats              DashboardStats      `json:"stats"`
	UpcomingEvents     []Event             `json:"upcoming_events"`
	RecentNews         []NewsArticle       `json:"recent_news"`
	EventRegistrations []EventRegistration `json:"event_registrations"`
	UserActivities     []UserActivity      `json:"user_activities"`
}
