package service

import (
	"context"
	"time"

	"anamola-backend/internal/domain"
	"anamola-backend/internal/repository"
)

type adminService struct {
	memberRepo     repository.MemberRepository
	membershipRepo repository.MembershipRepository
	newsRepo       repository.NewsRepository
	eventRepo      repository.EventRepository
	activityRepo   repository.ActivityRepository
}

func NewAdminService(
	memberRepo repository.MemberRepository,
	membershipRepo repository.MembershipRepository,
	newsRepo repository.NewsRepository,
	eventRepo repository.EventRepository,
	activityRepo repository.ActivityRepository,
) AdminService {
	return &adminService{
		memberRepo:     memberRepo,
		membershipRepo: membershipRepo,
		newsRepo:       newsRepo,
		eventRepo:      eventRepo,
		activityRepo:   activityRepo,
	}
}

func (s *adminService) Stats(ctx context.Context) (*domain.AdminStats, error) {
	totalMembers, err := s.memberRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalNews, err := s.newsRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour).Format(time.RFC3339)
	upcomingEvents, err := s.eventRepo.CountUpcoming(ctx, today)
	if err != nil {
		return nil, err
	}

	revenue, err := s.membershipRepo.CompletedRevenueCents(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.AdminStats{
		TotalMembers:      totalMembers,
		TotalNews:         totalNews,
		UpcomingEvents:    upcomingEvents,
		TotalRevenueCents: revenue,
	}, nil
}

func (s *adminService) ListUsers(ctx context.Context) ([]AdminUser, error) {
	members, err := s.memberRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]AdminUser, 0, len(members))
	for _, m := range members {
		memberships, err := s.membershipRepo.ListByMember(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		if memberships == nil {
			memberships = []domain.Membership{}
		}
		users = append(users, AdminUser{Member: m, Memberships: memberships})
	}
	return users, nil
}

func (s *adminService) UpdateMemberStatus(ctx context.Context, memberID int32, status domain.MembershipStatus) (*domain.Member, error) {
	switch status {
	case domain.MembershipStatusPending, domain.MembershipStatusActive,
		domain.MembershipStatusInactive, domain.MembershipStatusSuspended:
	default:
		return nil, &ValidationError{Missing: []string{"membership_status"}}
	}

	if err := s.memberRepo.UpdateStatus(ctx, memberID, status); err != nil {
		return nil, err
	}
	return s.memberRepo.GetByID(ctx, memberID)
}

func (s *adminService) ListActivities(ctx context.Context, limit int32) ([]domain.UserActivity, error) {
	if limit <= 0 {
		limit = 50
	}
	activities, err := s.activityRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	if activities == nil {
		activities = []domain.UserActivity{}
	}
	return activities, nil
}
