package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"anamola-backend/internal/domain"
	"anamola-backend/internal/logger"
	"anamola-backend/internal/repository"
)

type memberService struct {
	memberRepo       repository.MemberRepository
	membershipRepo   repository.MembershipRepository
	newsRepo         repository.NewsRepository
	eventRepo        repository.EventRepository
	registrationRepo repository.EventRegistrationRepository
	activityRepo     repository.ActivityRepository
}

func NewMemberService(
	memberRepo repository.MemberRepository,
	membershipRepo repository.MembershipRepository,
	newsRepo repository.NewsRepository,
	eventRepo repository.EventRepository,
	registrationRepo repository.EventRegistrationRepository,
	activityRepo repository.ActivityRepository,
) MemberService {
	return &memberService{
		memberRepo:       memberRepo,
		membershipRepo:   membershipRepo,
		newsRepo:         newsRepo,
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		activityRepo:     activityRepo,
	}
}

func (s *memberService) Dashboard(ctx context.Context, memberID int32) (*domain.Dashboard, error) {
	profile, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	upcoming, err := s.eventRepo.ListUpcoming(ctx, now, 5)
	if err != nil {
		return nil, err
	}
	news, err := s.newsRepo.ListRecent(ctx, 5)
	if err != nil {
		return nil, err
	}

	membership, err := s.membershipRepo.LatestByMember(ctx, memberID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	registrations, err := s.registrationRepo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	activities, err := s.activityRepo.ListByMember(ctx, memberID, 10)
	if err != nil {
		return nil, err
	}

	// List fields default to empty, never null.
	if upcoming == nil {
		upcoming = []domain.Event{}
	}
	if news == nil {
		news = []domain.NewsArticle{}
	}
	if registrations == nil {
		registrations = []domain.EventRegistration{}
	}
	if activities == nil {
		activities = []domain.UserActivity{}
	}

	return &domain.Dashboard{
		Profile:    profile,
		Membership: membership,
		Stats: domain.DashboardStats{
			EventsAttended: int32(len(registrations)),
			TotalEvents:    int32(len(upcoming)),
			TotalNews:      int32(len(news)),
		},
		UpcomingEvents:     upcoming,
		RecentNews:         news,
		EventRegistrations: registrations,
		UserActivities:     activities,
	}, nil
}

func (s *memberService) RegisterForEvent(ctx context.Context, memberID, eventID int32) (*domain.EventRegistration, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if event.MaxParticipants != nil {
		count, err := s.registrationRepo.CountByEvent(ctx, eventID)
		if err != nil {
			return nil, err
		}
		if count >= *event.MaxParticipants {
			return nil, ErrEventFull
		}
	}

	registration := &domain.EventRegistration{
		MemberID: memberID,
		EventID:  eventID,
		Status:   "registered",
	}
	if err := s.registrationRepo.Create(ctx, registration); err != nil {
		return nil, err
	}

	s.logActivity(ctx, memberID, domain.ActivityEventRegistration, fmt.Sprintf("Registered for event: %s", event.Title))

	return registration, nil
}

// logActivity is best-effort bookkeeping; failures are logged, never fatal.
func (s *memberService) logActivity(ctx context.Context, memberID int32, activityType, details string) {
	err := s.activityRepo.Create(ctx, &domain.UserActivity{
		MemberID:     memberID,
		ActivityType: activityType,
		Details:      details,
	})
	if err != nil {
		logger.Error("Failed to record activity", "member_id", memberID, "activity_type", activityType, "error", err)
	}
}
