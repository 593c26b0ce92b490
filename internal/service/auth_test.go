package service

import (
	"context"
	"testing"

	"anamola-backend/internal/domain"
	"anamola-backend/internal/identity"
	"anamola-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		ids := new(MockIdentityStore)
		memberRepo := new(MockMemberRepo)
		activityRepo := new(MockActivityRepo)
		svc := NewAuthService(ids, memberRepo, activityRepo)

		memberRepo.On("GetByEmail", ctx, "ana@example.com").Return(nil, repository.ErrNotFound)
		ids.On("CreateUser", ctx, "ana@example.com", "secret123", "Ana Macamo").Return("uid-1", nil)
		memberRepo.On("Create", ctx, mock.AnythingOfType("*domain.Member")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Member).ID = 1
		}).Return(nil)
		activityRepo.On("Create", ctx, mock.AnythingOfType("*domain.UserActivity")).Return(nil)

		member, err := svc.Register(ctx, RegisterInput{
			Email:    "ana@example.com",
			Password: "secret123",
			FullName: "Ana Macamo",
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.MembershipStatusPending, member.MembershipStatus)
		assert.Equal(t, domain.MemberRoleMember, member.Role)
		assert.Regexp(t, `^MEMBER_\d+_[a-z0-9]{9}$`, member.MemberID)
		memberRepo.AssertExpectations(t)
	})

	t.Run("MissingFields", func(t *testing.T) {
		ids := new(MockIdentityStore)
		memberRepo := new(MockMemberRepo)
		svc := NewAuthService(ids, memberRepo, new(MockActivityRepo))

		_, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com"})
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, []string{"password", "fullName"}, validationErr.Missing)
		ids.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		svc := NewAuthService(new(MockIdentityStore), new(MockMemberRepo), new(MockActivityRepo))

		_, err := svc.Register(ctx, RegisterInput{
			Email:    "not-an-email",
			Password: "secret123",
			FullName: "Ana Macamo",
		})
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		ids := new(MockIdentityStore)
		memberRepo := new(MockMemberRepo)
		svc := NewAuthService(ids, memberRepo, new(MockActivityRepo))

		memberRepo.On("GetByEmail", ctx, "taken@example.com").Return(&domain.Member{ID: 2}, nil)

		_, err := svc.Register(ctx, RegisterInput{
			Email:    "taken@example.com",
			Password: "secret123",
			FullName: "Ana Macamo",
		})
		assert.ErrorIs(t, err, ErrUserExists)
		ids.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("IdentityEmailExists", func(t *testing.T) {
		ids := new(MockIdentityStore)
		memberRepo := new(MockMemberRepo)
		svc := NewAuthService(ids, memberRepo, new(MockActivityRepo))

		memberRepo.On("GetByEmail", ctx, "ana@example.com").Return(nil, repository.ErrNotFound)
		ids.On("CreateUser", ctx, mock.Anything, mock.Anything, mock.Anything).Return("", identity.ErrEmailExists)

		_, err := svc.Register(ctx, RegisterInput{
			Email:    "ana@example.com",
			Password: "secret123",
			FullName: "Ana Macamo",
		})
		assert.ErrorIs(t, err, ErrUserExists)
		memberRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		ids := new(MockIdentityStore)
		memberRepo := new(MockMemberRepo)
		activityRepo := new(MockActivityRepo)
		svc := NewAuthService(ids, memberRepo, activityRepo)

		ids.On("SignIn", ctx, "ana@example.com", "secret123").Return("token-1", nil)
		memberRepo.On("GetByEmail", ctx, "ana@example.com").Return(&domain.Member{ID: 1, Email: "ana@example.com"}, nil)
		activityRepo.On("Create", ctx, mock.AnythingOfType("*domain.UserActivity")).Return(nil)

		member, token, err := svc.Login(ctx, "ana@example.com", "secret123")
		assert.NoError(t, err)
		assert.Equal(t, "token-1", token)
		assert.Equal(t, int32(1), member.ID)
	})

	t.Run("InvalidCredentials", func(t *testing.T) {
		ids := new(MockIdentityStore)
		svc := NewAuthService(ids, new(MockMemberRepo), new(MockActivityRepo))

		ids.On("SignIn", ctx, "ana@example.com", "wrong").Return("", identity.ErrInvalidCredentials)

		_, _, err := svc.Login(ctx, "ana@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("MissingFields", func(t *testing.T) {
		svc := NewAuthService(new(MockIdentityStore), new(MockMemberRepo), new(MockActivityRepo))

		_, _, err := svc.Login(ctx, "", "")
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, []string{"email", "password"}, validationErr.Missing)
	})

	t.Run("ActivityLogFailureDoesNotBlock", func(t *testing.T) {
		ids := new(MockIdentityStore)
		memberRepo := new(MockMemberRepo)
		activityRepo := new(MockActivityRepo)
		svc := NewAuthService(ids, memberRepo, activityRepo)

		ids.On("SignIn", ctx, "ana@example.com", "secret123").Return("token-2", nil)
		memberRepo.On("GetByEmail", ctx, "ana@example.com").Return(&domain.Member{ID: 1}, nil)
		activityRepo.On("Create", ctx, mock.Anything).Return(assert.AnError)

		_, token, err := svc.Login(ctx, "ana@example.com", "secret123")
		assert.NoError(t, err)
		assert.Equal(t, "token-2", token)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	ids := new(MockIdentityStore)
	svc := NewAuthService(ids, new(MockMemberRepo), new(MockActivityRepo))

	ids.On("SignOut", ctx, "token-1").Return(nil)
	assert.NoError(t, svc.Logout(ctx, "token-1"))
	ids.AssertExpectations(t)
}
