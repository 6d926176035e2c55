package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/erp-backend/internal/core/domain"
	apperrors "github.com/lorrc/erp-backend/internal/core/errors"
	"github.com/lorrc/erp-backend/internal/core/mocks"
)

func validRegistrationParams() domain.UserRegistrationParams {
	return domain.UserRegistrationParams{
		FullName: "Jo Field",
		Email:    "jo@acme.test",
		Password: "Sup3rSecret",
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Run("creates user and announces it", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		broadcaster := mocks.NewMockEventBroadcaster()
		svc := NewAuthService(userRepo, broadcaster, 1)

		userRepo.On("GetByEmail", mock.Anything, "jo@acme.test").Return(nil, apperrors.ErrUserNotFound)
		created := &domain.User{ID: 3, OrganizationID: 7, FullName: "Jo Field", Email: "jo@acme.test", Role: "member"}
		userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(created, nil)
		broadcaster.On("Emit", domain.CategoryUser, domain.EventCreated, int64(3), mock.Anything, mock.Anything).Return()

		user, err := svc.Register(context.Background(), validRegistrationParams(), 7)

		require.NoError(t, err)
		assert.Equal(t, int64(3), user.ID)
		userRepo.AssertExpectations(t)
		broadcaster.AssertExpectations(t)
	})

	t.Run("falls back to default org", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		broadcaster := mocks.NewMockEventBroadcaster()
		svc := NewAuthService(userRepo, broadcaster, 1)

		userRepo.On("GetByEmail", mock.Anything, "jo@acme.test").Return(nil, apperrors.ErrUserNotFound)
		userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.OrganizationID == 1
		})).Return(&domain.User{ID: 3, OrganizationID: 1}, nil)
		broadcaster.On("Emit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

		_, err := svc.Register(context.Background(), validRegistrationParams(), 0)

		require.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		broadcaster := mocks.NewMockEventBroadcaster()
		svc := NewAuthService(userRepo, broadcaster, 1)

		userRepo.On("GetByEmail", mock.Anything, "jo@acme.test").Return(&domain.User{ID: 3}, nil)

		_, err := svc.Register(context.Background(), validRegistrationParams(), 7)

		assert.ErrorIs(t, err, apperrors.ErrUserExists)
		userRepo.AssertNotCalled(t, "Create")
		broadcaster.AssertNotCalled(t, "Emit")
	})

	t.Run("rejects invalid params before touching the repo", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		broadcaster := mocks.NewMockEventBroadcaster()
		svc := NewAuthService(userRepo, broadcaster, 1)

		params := validRegistrationParams()
		params.Password = "weak"

		_, err := svc.Register(context.Background(), params, 7)

		assert.Error(t, err)
		userRepo.AssertNotCalled(t, "GetByEmail")
	})
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := domain.HashPassword("Sup3rSecret")
	require.NoError(t, err)
	existing := &domain.User{ID: 3, OrganizationID: 7, Email: "jo@acme.test", HashedPassword: hashed}

	t.Run("succeeds with correct credentials", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		svc := NewAuthService(userRepo, mocks.NewMockEventBroadcaster(), 1)

		userRepo.On("GetByEmail", mock.Anything, "jo@acme.test").Return(existing, nil)

		user, err := svc.Login(context.Background(), "jo@acme.test", "Sup3rSecret")
		require.NoError(t, err)
		assert.Equal(t, int64(3), user.ID)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		svc := NewAuthService(userRepo, mocks.NewMockEventBroadcaster(), 1)

		userRepo.On("GetByEmail", mock.Anything, "jo@acme.test").Return(existing, nil)

		_, err := svc.Login(context.Background(), "jo@acme.test", "wrong")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("hides whether the email exists", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		svc := NewAuthService(userRepo, mocks.NewMockEventBroadcaster(), 1)

		userRepo.On("GetByEmail", mock.Anything, "ghost@acme.test").Return(nil, apperrors.ErrUserNotFound)

		_, err := svc.Login(context.Background(), "ghost@acme.test", "Sup3rSecret")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("requires email and password", func(t *testing.T) {
		svc := NewAuthService(mocks.NewMockUserRepository(), mocks.NewMockEventBroadcaster(), 1)

		_, err := svc.Login(context.Background(), "", "Sup3rSecret")
		assert.ErrorIs(t, err, apperrors.ErrEmailRequired)

		_, err = svc.Login(context.Background(), "jo@acme.test", "")
		assert.ErrorIs(t, err, apperrors.ErrPasswordRequired)
	})
}
