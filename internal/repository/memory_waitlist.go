package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dhruvywuvy/advocare-demo-day/internal/domain"

	"github.com/google/uuid"
)

// MemoryWaitlistRepo supports the waitlist form when DB is disabled.
type MemoryWaitlistRepo struct {
	mu      sync.RWMutex
	entries map[string]domain.WaitlistEntry // email -> entry
}

func NewMemoryWaitlistRepo() *MemoryWaitlistRepo {
	return &MemoryWaitlistRepo{
		entries: map[string]domain.WaitlistEntry{},
	}
}

var _ WaitlistRepository = (*MemoryWaitlistRepo)(nil)

func (r *MemoryWaitlistRepo) AddEmail(_ context.Context, email string) (*domain.WaitlistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[email]; ok {
		return &existing, nil
	}
	entry := domain.WaitlistEntry{
		ID:        uuid.NewString(),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	r.entries[email] = entry
	return &entry, nil
}

func (r *MemoryWaitlistRepo) ListEntries(_ context.Context) ([]domain.WaitlistEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]domain.WaitlistEntry, 0, len(r.entries))
	for _, e := range r.entries {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}
