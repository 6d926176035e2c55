package services

import (
	"context"
	"errors"

	"github.com/lorrc/erp-backend/internal/core/domain"
	apperrors "github.com/lorrc/erp-backend/internal/core/errors"
	"github.com/lorrc/erp-backend/internal/core/ports"
)

// AuthService implements authentication business logic
type AuthService struct {
	userRepo     ports.UserRepository
	broadcaster  ports.EventBroadcaster
	defaultOrgID int64
}

var _ ports.AuthService = (*AuthService)(nil)

// NewAuthService creates a new authentication service
func NewAuthService(userRepo ports.UserRepository, broadcaster ports.EventBroadcaster, defaultOrgID int64) ports.AuthService {
	return &AuthService{
		userRepo:     userRepo,
		broadcaster:  broadcaster,
		defaultOrgID: defaultOrgID,
	}
}

// Register creates a new user account with validated credentials
func (s *AuthService) Register(ctx context.Context, params domain.UserRegistrationParams, orgID int64) (*domain.User, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	// Check if user already exists
	_, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err == nil {
		return nil, apperrors.ErrUserExists
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err // An actual DB error occurred
	}

	// Determine organization ID
	targetOrgID := orgID
	if targetOrgID == 0 {
		targetOrgID = s.defaultOrgID
	}

	// Create user with validated params
	user, err := domain.NewUser(params, targetOrgID)
	if err != nil {
		return nil, err
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.broadcaster.Emit(domain.CategoryUser, domain.EventCreated, created.ID, created.Snapshot(),
		&domain.EventMetadata{OrgID: created.OrganizationID})

	return created, nil
}

// Login authenticates a user with email and password
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	// Basic validation
	if email == "" {
		return nil, apperrors.ErrEmailRequired
	}
	if password == "" {
		return nil, apperrors.ErrPasswordRequired
	}

	// Find user by email
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Don't reveal whether email exists
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	// Verify password
	if !user.CheckPassword(password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}
