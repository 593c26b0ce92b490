package repository

import (
	"context"
	"errors"

	"anamola-backend/internal/domain"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateSession is returned when a membership insert collides with
	// an existing payment session id.
	ErrDuplicateSession = errors.New("payment session already recorded")
)

type MemberRepository interface {
	Create(ctx context.Context, m *domain.Member) error
	GetByID(ctx context.Context, id int32) (*domain.Member, error)
	GetByIdentityID(ctx context.Context, identityID string) (*domain.Member, error)
	GetByEmail(ctx context.Context, email string) (*domain.Member, error)
	List(ctx context.Context) ([]domain.Member, error)
	UpdateStatus(ctx context.Context, id int32, status domain.MembershipStatus) error
	Count(ctx context.Context) (int32, error)
}

type MembershipRepository interface {
	Create(ctx context.Context, m *domain.Membership) error
	GetBySessionID(ctx context.Context, sessionID string) (*domain.Membership, error)
	LatestByMember(ctx context.Context, memberID int32) (*domain.Membership, error)
	ListByMember(ctx context.Context, memberID int32) ([]domain.Membership, error)
	CompletedRevenueCents(ctx context.Context) (int64, error)
}

type NewsRepository interface {
	Create(ctx context.Context, n *domain.NewsArticle) error
	GetByID(ctx context.Context, id int32) (*domain.NewsArticle, error)
	List(ctx context.Context) ([]domain.NewsArticle, error)
	ListRecent(ctx context.Context, limit int32) ([]domain.NewsArticle, error)
	Update(ctx context.Context, n *domain.NewsArticle) error
	Delete(ctx context.Context, id int32) error
	Count(ctx context.Context) (int32, error)
}

type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id int32) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	ListUpcoming(ctx context.Context, from string, limit int32) ([]domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error
	Delete(ctx context.Context, id int32) error
	CountUpcoming(ctx context.Context, from string) (int32, error)
	SweepStatuses(ctx context.Context, now string) (int64, error)
}

type EventRegistrationRepository interface {
	Create(ctx context.Context, r *domain.EventRegistration) error
	ListByMember(ctx context.Context, memberID int32) ([]domain.EventRegistration, error)
	CountByEvent(ctx context.Context, eventID int32) (int32, error)
	ExistsForMemberAndEvent(ctx context.Context, memberID, eventID int32) (bool, error)
}

type ActivityRepository interface {
	Create(ctx context.Context, a *domain.UserActivity) error
	ListByMember(ctx context.Context, memberID int32, limit int32) ([]domain.UserActivity, error)
	ListRecent(ctx context.Context, limit int32) ([]domain.UserActivity, error)
}
