package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/dhruvywuvy/advocare-demo-day/internal/domain"
	"github.com/dhruvywuvy/advocare-demo-day/internal/repository"
	"github.com/dhruvywuvy/advocare-demo-day/internal/store"
	"github.com/dhruvywuvy/advocare-demo-day/internal/validate"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sessionKeyPrefix = "session:"

// ErrInvalidCredentials wrong email/password pair. One message for both
// cases so the login form can't be used to probe registered emails.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrSessionExpired missing or expired session token.
var ErrSessionExpired = errors.New("session expired")

// AuthService 注册/登录/会话管理.
// password_hash should only depend on the password itself.
type AuthService struct {
	users      repository.UsersRepository
	sessions   store.KV
	sessionTTL time.Duration
	logger     *zap.Logger
}

func NewAuthService(users repository.UsersRepository, sessions store.KV, sessionTTL time.Duration, logger *zap.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// HashPassword SHA-256 of the password.
func HashPassword(password string) []byte {
	h := sha256.Sum256([]byte(password))
	return h[:]
}

// SignUp creates the auth user plus profile row; advocate accounts also
// get their empty advocates row.
func (s *AuthService) SignUp(ctx context.Context, email, password, userType, fullName, phoneNumber string) (*domain.UserProfile, error) {
	if err := validate.Email(email); err != nil {
		return nil, err
	}
	if len(password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}
	if userType != domain.UserTypePatient && userType != domain.UserTypeAdvocate {
		return nil, fmt.Errorf("invalid user_type: %s", userType)
	}

	profile := &domain.UserProfile{
		ID:          uuid.NewString(),
		Email:       email,
		UserType:    userType,
		FullName:    fullName,
		PhoneNumber: phoneNumber,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, profile, HashPassword(password)); err != nil {
		return nil, fmt.Errorf("failed to sign up: %w", err)
	}

	s.logger.Info("user signed up",
		zap.String("user_id", profile.ID),
		zap.String("user_type", userType),
	)
	return profile, nil
}

// SignIn verifies the password hash and mints a session token.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, *domain.UserProfile, error) {
	profile, storedHash, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !bytes.Equal(storedHash, HashPassword(password)) {
		return "", nil, ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := s.sessions.Set(ctx, sessionKeyPrefix+token, profile.ID, s.sessionTTL); err != nil {
		return "", nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("user signed in", zap.String("user_id", profile.ID))
	return token, profile, nil
}

// Session resolves a token to the current user and, for advocates, the
// advocate profile.
func (s *AuthService) Session(ctx context.Context, token string) (*domain.UserProfile, *domain.AdvocateProfile, error) {
	if token == "" {
		return nil, nil, ErrSessionExpired
	}
	userID, err := s.sessions.Get(ctx, sessionKeyPrefix+token)
	if err != nil {
		if errors.Is(err, store.ErrMiss) {
			return nil, nil, ErrSessionExpired
		}
		return nil, nil, fmt.Errorf("failed to check session: %w", err)
	}

	profile, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load profile: %w", err)
	}

	var advocate *domain.AdvocateProfile
	if profile.UserType == domain.UserTypeAdvocate {
		advocate, err = s.users.GetAdvocateProfile(ctx, userID)
		if err != nil {
			// Profile row is optional detail; the session itself is valid.
			s.logger.Warn("failed to load advocate profile", zap.Error(err))
		}
	}
	return profile, advocate, nil
}

// SignOut invalidates the token. Signing out an unknown token is not an
// error.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Del(ctx, sessionKeyPrefix+token); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	return nil
}
