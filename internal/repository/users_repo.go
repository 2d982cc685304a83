package repository

import (
	"context"

	"github.com/dhruvywuvy/advocare-demo-day/internal/domain"
)

// UsersRepository users + advocates 表的存取接口
type UsersRepository interface {
	// CreateUser inserts the auth row and profile in one transaction.
	// For advocate accounts the empty advocate profile row is created in
	// the same transaction.
	CreateUser(ctx context.Context, profile *domain.UserProfile, passwordHash []byte) error

	// GetUserByEmail returns the profile and stored password hash.
	GetUserByEmail(ctx context.Context, email string) (*domain.UserProfile, []byte, error)

	// GetUserByID returns the profile for a session check.
	GetUserByID(ctx context.Context, userID string) (*domain.UserProfile, error)

	// GetAdvocateProfile returns the advocate extension row, or nil when
	// the user is not an advocate.
	GetAdvocateProfile(ctx context.Context, userID string) (*domain.AdvocateProfile, error)
}
