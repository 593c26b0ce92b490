package service

import (
	"context"
	"testing"

	"anamola-backend/internal/config"
	"anamola-backend/internal/domain"
	"anamola-backend/internal/payment"
	"anamola-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testPaymentConfig() config.PaymentConfig {
	return config.PaymentConfig{
		Currency:       "MZN",
		AmountCents:    10000,
		MembershipName: "Standard Membership",
	}
}

func newActivationFixture() (*MockPaymentProvider, *MockIdentityStore, *MockMemberRepo, *MockMembershipRepo, *MockActivityRepo, *MockEmailService, ActivationService) {
	provider := new(MockPaymentProvider)
	ids := new(MockIdentityStore)
	memberRepo := new(MockMemberRepo)
	membershipRepo := new(MockMembershipRepo)
	activityRepo := new(MockActivityRepo)
	emailSvc := new(MockEmailService)
	svc := NewActivationService(provider, ids, memberRepo, membershipRepo, activityRepo, emailSvc, testPaymentConfig(), "http://localhost:3002")
	return provider, ids, memberRepo, membershipRepo, activityRepo, emailSvc, svc
}

func TestActivationService_CreateCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		provider, _, _, _, _, _, svc := newActivationFixture()
		provider.On("CreateCheckoutSession", ctx, mock.MatchedBy(func(p payment.CheckoutParams) bool {
			return p.Email == "ana@example.com" &&
				p.AmountCents == 10000 &&
				p.Currency == "MZN" &&
				p.SuccessURL == "http://localhost:3002/payment-success?session_id={CHECKOUT_SESSION_ID}" &&
				p.CancelURL == "http://localhost:3002/register"
		})).Return(&payment.CheckoutSession{ID: "cs_1", URL: "https://pay.example/cs_1"}, nil)

		session, err := svc.CreateCheckout(ctx, "ana@example.com", "Ana Macamo", "")
		assert.NoError(t, err)
		assert.Equal(t, "cs_1", session.ID)
		provider.AssertExpectations(t)
	})

	t.Run("MissingFields", func(t *testing.T) {
		provider, _, _, _, _, _, svc := newActivationFixture()

		_, err := svc.CreateCheckout(ctx, "", "", "")
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, []string{"email", "fullName"}, validationErr.Missing)
		provider.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
	})
}

func TestActivationService_VerifyAndActivate(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingFields", func(t *testing.T) {
		provider, _, _, _, _, _, svc := newActivationFixture()

		_, err := svc.VerifyAndActivate(ctx, "", "ana@example.com", "", "")
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, []string{"sessionId", "fullName"}, validationErr.Missing)
		provider.AssertNotCalled(t, "GetSession", mock.Anything, mock.Anything)
	})

	t.Run("PaymentIncomplete", func(t *testing.T) {
		provider, ids, memberRepo, membershipRepo, _, _, svc := newActivationFixture()
		provider.On("GetSession", ctx, "cs_unpaid").Return(&payment.CheckoutSession{
			ID:            "cs_unpaid",
			PaymentStatus: payment.StatusUnpaid,
		}, nil)

		_, err := svc.VerifyAndActivate(ctx, "cs_unpaid", "ana@example.com", "Ana Macamo", "")
		assert.ErrorIs(t, err, ErrPaymentIncomplete)
		ids.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		memberRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		membershipRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("AlreadyProcessed", func(t *testing.T) {
		provider, ids, memberRepo, membershipRepo, _, _, svc := newActivationFixture()
		existing := &domain.Membership{ID: 7, MemberID: 3, PaymentSessionID: "cs_done"}
		provider.On("GetSession", ctx, "cs_done").Return(&payment.CheckoutSession{
			ID:            "cs_done",
			PaymentStatus: payment.StatusPaid,
		}, nil)
		membershipRepo.On("GetBySessionID", ctx, "cs_done").Return(existing, nil)
		memberRepo.On("GetByID", ctx, int32(3)).Return(&domain.Member{ID: 3, Email: "ana@example.com"}, nil)

		result, err := svc.VerifyAndActivate(ctx, "cs_done", "ana@example.com", "Ana Macamo", "")
		assert.NoError(t, err)
		assert.True(t, result.AlreadyProcessed)
		assert.Empty(t, result.Password)
		assert.Equal(t, int32(3), result.Member.ID)
		ids.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success", func(t *testing.T) {
		provider, ids, memberRepo, membershipRepo, activityRepo, emailSvc, svc := newActivationFixture()
		provider.On("GetSession", ctx, "cs_paid").Return(&payment.CheckoutSession{
			ID:            "cs_paid",
			PaymentStatus: payment.StatusPaid,
			AmountCents:   10000,
			Currency:      "MZN",
			CustomerEmail: "ana@example.com",
		}, nil)
		membershipRepo.On("GetBySessionID", ctx, "cs_paid").Return(nil, repository.ErrNotFound)
		ids.On("CreateUser", ctx, "ana@example.com", mock.Anything, "Ana Macamo").Return("uid-1", nil)
		memberRepo.On("Create", ctx, mock.AnythingOfType("*domain.Member")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Member).ID = 42
		}).Return(nil)
		membershipRepo.On("Create", ctx, mock.AnythingOfType("*domain.Membership")).Return(nil)
		activityRepo.On("Create", ctx, mock.AnythingOfType("*domain.UserActivity")).Return(nil)
		emailSvc.On("SendWelcomeCredentials", ctx, "ana@example.com", "Ana Macamo", mock.Anything, mock.Anything).Return(nil)

		result, err := svc.VerifyAndActivate(ctx, "cs_paid", "ana@example.com", "Ana Macamo", "")
		assert.NoError(t, err)
		assert.False(t, result.AlreadyProcessed)
		assert.Len(t, result.Password, 12)
		assert.Equal(t, domain.MembershipStatusActive, result.Member.MembershipStatus)
		assert.Regexp(t, `^MEMBER_\d+_[a-z0-9]{9}$`, result.Member.MemberID)
		assert.Equal(t, "cs_paid", result.Membership.PaymentSessionID)
		assert.Equal(t, domain.PaymentStatusCompleted, result.Membership.PaymentStatus)
		membershipRepo.AssertExpectations(t)
	})

	t.Run("SessionEmailOverridesBody", func(t *testing.T) {
		provider, ids, memberRepo, membershipRepo, activityRepo, emailSvc, svc := newActivationFixture()
		provider.On("GetSession", ctx, "cs_meta").Return(&payment.CheckoutSession{
			ID:            "cs_meta",
			PaymentStatus: payment.StatusPaid,
			CustomerEmail: "paid-by@example.com",
			Metadata: map[string]string{
				"fullName":       "Paid By",
				"membershipType": "Premium Membership",
			},
		}, nil)
		membershipRepo.On("GetBySessionID", ctx, "cs_meta").Return(nil, repository.ErrNotFound)
		ids.On("CreateUser", ctx, "paid-by@example.com", mock.Anything, "Paid By").Return("uid-2", nil)
		memberRepo.On("Create", ctx, mock.AnythingOfType("*domain.Member")).Return(nil)
		membershipRepo.On("Create", ctx, mock.MatchedBy(func(ms *domain.Membership) bool {
			return ms.MembershipType == "Premium Membership"
		})).Return(nil)
		activityRepo.On("Create", ctx, mock.Anything).Return(nil)
		emailSvc.On("SendWelcomeCredentials", ctx, "paid-by@example.com", "Paid By", mock.Anything, mock.Anything).Return(nil)

		result, err := svc.VerifyAndActivate(ctx, "cs_meta", "attacker@example.com", "Attacker", "")
		assert.NoError(t, err)
		assert.Equal(t, "paid-by@example.com", result.Member.Email)
		assert.Equal(t, "Paid By", result.Member.FullName)
	})

	t.Run("AccountCreationFails", func(t *testing.T) {
		provider, ids, memberRepo, membershipRepo, _, _, svc := newActivationFixture()
		provider.On("GetSession", ctx, "cs_fail").Return(&payment.CheckoutSession{
			ID:            "cs_fail",
			PaymentStatus: payment.StatusPaid,
		}, nil)
		membershipRepo.On("GetBySessionID", ctx, "cs_fail").Return(nil, repository.ErrNotFound)
		ids.On("CreateUser", ctx, mock.Anything, mock.Anything, mock.Anything).Return("", assert.AnError)

		_, err := svc.VerifyAndActivate(ctx, "cs_fail", "ana@example.com", "Ana Macamo", "")
		assert.ErrorIs(t, err, ErrAccountCreation)
		memberRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		membershipRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("ConcurrentDuplicateSession", func(t *testing.T) {
		provider, ids, memberRepo, membershipRepo, _, _, svc := newActivationFixture()
		winner := &domain.Membership{ID: 9, MemberID: 5, PaymentSessionID: "cs_race"}
		provider.On("GetSession", ctx, "cs_race").Return(&payment.CheckoutSession{
			ID:            "cs_race",
			PaymentStatus: payment.StatusPaid,
		}, nil)
		membershipRepo.On("GetBySessionID", ctx, "cs_race").Return(nil, repository.ErrNotFound).Once()
		ids.On("CreateUser", ctx, mock.Anything, mock.Anything, mock.Anything).Return("uid-3", nil)
		memberRepo.On("Create", ctx, mock.AnythingOfType("*domain.Member")).Return(nil)
		membershipRepo.On("Create", ctx, mock.AnythingOfType("*domain.Membership")).Return(repository.ErrDuplicateSession)
		membershipRepo.On("GetBySessionID", ctx, "cs_race").Return(winner, nil).Once()
		memberRepo.On("GetByID", ctx, int32(5)).Return(&domain.Member{ID: 5}, nil)

		result, err := svc.VerifyAndActivate(ctx, "cs_race", "ana@example.com", "Ana Macamo", "")
		assert.NoError(t, err)
		assert.True(t, result.AlreadyProcessed)
		assert.Equal(t, int32(5), result.Member.ID)
	})

	t.Run("MembershipInsertFailureIsNonFatal", func(t *testing.T) {
		provider, ids, memberRepo, membershipRepo, activityRepo, emailSvc, svc := newActivationFixture()
		provider.On("GetSession", ctx, "cs_half").Return(&payment.CheckoutSession{
			ID:            "cs_half",
			PaymentStatus: payment.StatusPaid,
		}, nil)
		membershipRepo.On("GetBySessionID", ctx, "cs_half").Return(nil, repository.ErrNotFound)
		ids.On("CreateUser", ctx, mock.Anything, mock.Anything, mock.Anything).Return("uid-4", nil)
		memberRepo.On("Create", ctx, mock.AnythingOfType("*domain.Member")).Return(nil)
		membershipRepo.On("Create", ctx, mock.AnythingOfType("*domain.Membership")).Return(assert.AnError)
		activityRepo.On("Create", ctx, mock.Anything).Return(nil)
		emailSvc.On("SendWelcomeCredentials", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		result, err := svc.VerifyAndActivate(ctx, "cs_half", "ana@example.com", "Ana Macamo", "")
		assert.NoError(t, err)
		assert.Nil(t, result.Membership)
		assert.NotEmpty(t, result.Password)
	})
}
