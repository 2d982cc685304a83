package repository

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/dhruvywuvy/advocare-demo-day/internal/domain"
)

// MemoryUsersRepo supports signup/signin when DB is disabled.
type MemoryUsersRepo struct {
	mu        sync.RWMutex
	byEmail   map[string]*memoryUser
	byID      map[string]*memoryUser
	advocates map[string]*domain.AdvocateProfile
}

type memoryUser struct {
	profile      domain.UserProfile
	passwordHash []byte
}

func NewMemoryUsersRepo() *MemoryUsersRepo {
	return &MemoryUsersRepo{
		byEmail:   map[string]*memoryUser{},
		byID:      map[string]*memoryUser{},
		advocates: map[string]*domain.AdvocateProfile{},
	}
}

var _ UsersRepository = (*MemoryUsersRepo)(nil)

func (r *MemoryUsersRepo) CreateUser(_ context.Context, profile *domain.UserProfile, passwordHash []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[profile.Email]; exists {
		return fmt.Errorf("user already registered: %s", profile.Email)
	}
	u := &memoryUser{
		profile:      *profile,
		passwordHash: bytes.Clone(passwordHash),
	}
	r.byEmail[profile.Email] = u
	r.byID[profile.ID] = u

	if profile.UserType == domain.UserTypeAdvocate {
		r.advocates[profile.ID] = &domain.AdvocateProfile{
			UserID:          profile.ID,
			Specializations: []string{},
		}
	}
	return nil
}

func (r *MemoryUsersRepo) GetUserByEmail(_ context.Context, email string) (*domain.UserProfile, []byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil, fmt.Errorf("user not found")
	}
	profile := u.profile
	return &profile, bytes.Clone(u.passwordHash), nil
}

func (r *MemoryUsersRepo) GetUserByID(_ context.Context, userID string) (*domain.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[userID]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	profile := u.profile
	return &profile, nil
}

func (r *MemoryUsersRepo) GetAdvocateProfile(_ context.Context, userID string) (*domain.AdvocateProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.advocates[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
