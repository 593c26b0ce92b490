package service

import (
	"context"
	"errors"
	"fmt"

	"anamola-backend/internal/domain"
	"anamola-backend/internal/identity"
	"anamola-backend/internal/logger"
	"anamola-backend/internal/repository"
)

type authService struct {
	identity     identity.Store
	memberRepo   repository.MemberRepository
	activityRepo repository.ActivityRepository
}

func NewAuthService(ids identity.Store, memberRepo repository.MemberRepository, activityRepo repository.ActivityRepository) AuthService {
	return &authService{
		identity:     ids,
		memberRepo:   memberRepo,
		activityRepo: activityRepo,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*domain.Member, error) {
	if err := ValidateRequired(map[string]string{
		"email":    input.Email,
		"password": input.Password,
		"fullName": input.FullName,
	}, []string{"email", "password", "fullName"}); err != nil {
		return nil, err
	}
	if err := ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	// Reject duplicates before touching the identity store so a failed
	// registration leaves nothing behind.
	if _, err := s.memberRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	uid, err := s.identity.CreateUser(ctx, input.Email, input.Password, input.FullName)
	if err != nil {
		if errors.Is(err, identity.ErrEmailExists) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("%w: %v", ErrAccountCreation, err)
	}

	member := &domain.Member{
		IdentityID:        uid,
		Email:             input.Email,
		FullName:          input.FullName,
		Phone:             input.Phone,
		DateOfBirth:       input.DateOfBirth,
		Address:           input.Address,
		City:              input.City,
		Province:          input.Province,
		PostalCode:        input.PostalCode,
		Occupation:        input.Occupation,
		EducationLevel:    input.EducationLevel,
		ContactPreference: input.ContactPreference,
		MemberID:          GenerateMemberID(),
		Role:              domain.MemberRoleMember,
		MembershipStatus:  domain.MembershipStatusPending,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	s.logActivity(ctx, member.ID, domain.ActivityRegistered, "Account registered")
	return member, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.Member, string, error) {
	if err := ValidateRequired(map[string]string{
		"email":    email,
		"password": password,
	}, []string{"email", "password"}); err != nil {
		return nil, "", err
	}

	token, err := s.identity.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	member, err := s.memberRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	s.logActivity(ctx, member.ID, domain.ActivityLoggedIn, "Signed in")
	return member, token, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.identity.SignOut(ctx, token)
}

func (s *authService) CurrentMember(ctx context.Context, identityID string) (*domain.Member, error) {
	return s.memberRepo.GetByIdentityID(ctx, identityID)
}

// logActivity is best-effort bookkeeping; failures are logged, never fatal.
func (s *authService) logActivity(ctx context.Context, memberID int32, activityType, details string) {
	err := s.activityRepo.Create(ctx, &domain.UserActivity{
		MemberID:     memberID,
		ActivityType: activityType,
		Details:      details,
	})
	if err != nil {
		logger.Warn("Failed to record user activity", "member_id", memberID, "activity", activityType, "error", err)
	}
}
