package service

import (
	"context"

	"anamola-backend/internal/domain"
	"anamola-backend/internal/payment"
)

// RegisterInput carries the registration form. Only Email, Password and
// FullName are required.
type RegisterInput struct {
	Email             string
	Password          string
	FullName          string
	Phone             string
	DateOfBirth       string
	Address           string
	City              string
	Province          string
	PostalCode        string
	Occupation        string
	EducationLevel    string
	ContactPreference string
}

// ActivationResult is the outcome of the membership activation workflow.
// Password is set only when a new account was provisioned by this call.
type ActivationResult struct {
	Member           *domain.Member
	Membership       *domain.Membership
	Password         string
	AlreadyProcessed bool
}

// AdminUser is a member joined with their membership records for the admin
// user list.
type AdminUser struct {
	domain.Member
	Memberships []domain.Membership `json:"memberships"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Member, error)
	Login(ctx context.Context, email, password string) (*domain.Member, string, error)
	Logout(ctx context.Context, token string) error
	CurrentMember(ctx context.Context, identityID string) (*domain.Member, error)
}

type ActivationService interface {
	CreateCheckout(ctx context.Context, email, fullName, membershipType string) (*payment.CheckoutSession, error)
	VerifyAndActivate(ctx context.Context, sessionID, email, fullName, membershipType string) (*ActivationResult, error)
}

type MemberService interface {
	Dashboard(ctx context.Context, memberID int32) (*domain.Dashboard, error)
	RegisterForEvent(ctx context.Context, memberID, eventID int32) (*domain.EventRegistration, error)
}

type NewsService interface {
	ListNews(ctx context.Context) ([]domain.NewsArticle, error)
	GetNews(ctx context.Context, id int32) (*domain.NewsArticle, error)
	CreateNews(ctx context.Context, n *domain.NewsArticle) error
	UpdateNews(ctx context.Context, n *domain.NewsArticle) error
	DeleteNews(ctx context.Context, id int32) error
}

type EventService interface {
	ListEvents(ctx context.Context) ([]domain.Event, error)
	GetEvent(ctx context.Context, id int32) (*domain.Event, error)
	CreateEvent(ctx context.Context, e *domain.Event) error
	UpdateEvent(ctx context.Context, e *domain.Event) error
	DeleteEvent(ctx context.Context, id int32) error
}

type AdminService interface {
	Stats(ctx context.Context) (*domain.AdminStats, error)
	ListUsers(ctx context.Context) ([]AdminUser, error)
	UpdateMemberStatus(ctx context.Context, memberID int32, status domain.MembershipStatus) (*domain.Member, error)
	ListActivities(ctx context.Context, limit int32) ([]domain.UserActivity, error)
}

type EmailService interface {
	SendWelcomeCredentials(ctx context.Context, email, name, memberID, password string) error
	SendRenewalReminder(ctx context.Context, email, name string) error
	SendAdminNotification(ctx context.Context, subject, message string) error
}
