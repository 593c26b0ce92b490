package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"anamola-backend/internal/config"
	"anamola-backend/internal/domain"
	"anamola-backend/internal/identity"
	"anamola-backend/internal/logger"
	"anamola-backend/internal/payment"
	"anamola-backend/internal/repository"
)

type activationService struct {
	provider       payment.Provider
	identity       identity.Store
	memberRepo     repository.MemberRepository
	membershipRepo repository.MembershipRepository
	activityRepo   repository.ActivityRepository
	email          EmailService
	cfg            config.PaymentConfig
	frontendURL    string
}

func NewActivationService(
	provider payment.Provider,
	ids identity.Store,
	memberRepo repository.MemberRepository,
	membershipRepo repository.MembershipRepository,
	activityRepo repository.ActivityRepository,
	email EmailService,
	cfg config.PaymentConfig,
	frontendURL string,
) ActivationService {
	return &activationService{
		provider:       provider,
		identity:       ids,
		memberRepo:     memberRepo,
		membershipRepo: membershipRepo,
		activityRepo:   activityRepo,
		email:          email,
		cfg:            cfg,
		frontendURL:    frontendURL,
	}
}

func (s *activationService) CreateCheckout(ctx context.Context, email, fullName, membershipType string) (*payment.CheckoutSession, error) {
	if err := ValidateRequired(map[string]string{
		"email":    email,
		"fullName": fullName,
	}, []string{"email", "fullName"}); err != nil {
		return nil, err
	}
	if membershipType == "" {
		membershipType = s.cfg.MembershipName
	}

	return s.provider.CreateCheckoutSession(ctx, payment.CheckoutParams{
		Email:          email,
		FullName:       fullName,
		MembershipType: membershipType,
		AmountCents:    s.cfg.AmountCents,
		Currency:       s.cfg.Currency,
		SuccessURL:     s.frontendURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:      s.frontendURL + "/register",
	})
}

// VerifyAndActivate converts a completed checkout session into an active
// member and a membership record, at most once per session id.
func (s *activationService) VerifyAndActivate(ctx context.Context, sessionID, email, fullName, membershipType string) (*ActivationResult, error) {
	if err := ValidateRequired(map[string]string{
		"sessionId": sessionID,
		"email":     email,
		"fullName":  fullName,
	}, []string{"sessionId", "email", "fullName"}); err != nil {
		return nil, err
	}
	if membershipType == "" {
		membershipType = s.cfg.MembershipName
	}

	session, err := s.provider.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve checkout session: %w", err)
	}
	if session.PaymentStatus != payment.StatusPaid {
		return nil, ErrPaymentIncomplete
	}

	// A session activates at most one membership. Concurrent duplicates are
	// caught again below by the unique index on the session id.
	if existing, err := s.membershipRepo.GetBySessionID(ctx, sessionID); err == nil {
		return s.alreadyProcessed(ctx, existing)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// The provider's own session record is the authority on who paid; the
	// request body is only a fallback.
	email, fullName, membershipType = s.reconcileIdentity(session, email, fullName, membershipType)

	memberID := GenerateMemberID()
	password := GenerateOneTimePassword()

	uid, err := s.identity.CreateUser(ctx, email, password, fullName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAccountCreation, err)
	}

	member := &domain.Member{
		IdentityID:       uid,
		Email:            email,
		FullName:         fullName,
		MemberID:         memberID,
		Role:             domain.MemberRoleMember,
		MembershipStatus: domain.MembershipStatusActive,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	amount := session.AmountCents
	if amount == 0 {
		amount = s.cfg.AmountCents
	}
	currency := session.Currency
	if currency == "" {
		currency = s.cfg.Currency
	}

	membership := &domain.Membership{
		MemberID:         member.ID,
		MembershipType:   membershipType,
		AmountCents:      amount,
		Currency:         currency,
		PaymentStatus:    domain.PaymentStatusCompleted,
		PaymentDate:      time.Now().UTC().Format(time.RFC3339),
		PaymentSessionID: sessionID,
	}
	if err := s.membershipRepo.Create(ctx, membership); err != nil {
		if errors.Is(err, repository.ErrDuplicateSession) {
			// Lost a race with an identical request. The account and member
			// row created above are orphans; surface the winner's result.
			logger.Warn("Concurrent activation detected, returning existing record",
				"session_id", sessionID, "orphan_member_id", member.ID)
			if existing, gerr := s.membershipRepo.GetBySessionID(ctx, sessionID); gerr == nil {
				return s.alreadyProcessed(ctx, existing)
			}
		}
		// Best-effort secondary write: the account exists and the payment is
		// real, so the request still succeeds. Operators reconcile from logs.
		logger.Error("Failed to create membership record", "session_id", sessionID, "member_id", member.ID, "error", err)
		membership = nil
	}

	s.logActivity(ctx, member.ID, domain.ActivityMembershipPaid, "Membership payment completed")
	s.sendWelcome(ctx, member, password)

	return &ActivationResult{
		Member:     member,
		Membership: membership,
		Password:   password,
	}, nil
}

func (s *activationService) alreadyProcessed(ctx context.Context, membership *domain.Membership) (*ActivationResult, error) {
	member, err := s.memberRepo.GetByID(ctx, membership.MemberID)
	if err != nil {
		return nil, err
	}
	return &ActivationResult{
		Member:           member,
		Membership:       membership,
		AlreadyProcessed: true,
	}, nil
}

func (s *activationService) reconcileIdentity(session *payment.CheckoutSession, email, fullName, membershipType string) (string, string, string) {
	sessionEmail := session.CustomerEmail
	if sessionEmail == "" && session.Metadata != nil {
		sessionEmail = session.Metadata["email"]
	}
	if sessionEmail != "" {
		if !strings.EqualFold(sessionEmail, email) {
			logger.Warn("Checkout session email differs from request body, using session value",
				"session_id", session.ID)
		}
		email = sessionEmail
	}
	if session.Metadata != nil {
		if v := session.Metadata["fullName"]; v != "" {
			fullName = v
		}
		if v := session.Metadata["membershipType"]; v != "" {
			membershipType = v
		}
	}
	return email, fullName, membershipType
}

func (s *activationService) logActivity(ctx context.Context, memberID int32, activityType, details string) {
	err := s.activityRepo.Create(ctx, &domain.UserActivity{
		MemberID:     memberID,
		ActivityType: activityType,
		Details:      details,
	})
	if err != nil {
		logger.Warn("Failed to record user activity", "member_id", memberID, "activity", activityType, "error", err)
	}
}

func (s *activationService) sendWelcome(ctx context.Context, member *domain.Member, password string) {
	if s.email == nil {
		return
	}
	if err := s.email.SendWelcomeCredentials(ctx, member.Email, member.FullName, member.MemberID, password); err != nil {
		logger.Warn("Failed to send welcome email", "member_id", member.ID, "error", err)
	}
}
