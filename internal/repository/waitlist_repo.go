package repository

import (
	"context"

	"github.com/dhruvywuvy/advocare-demo-day/internal/domain"
)

// WaitlistRepository waitlist 表的存取接口
type WaitlistRepository interface {
	// AddEmail records an interested email. Adding an email that is
	// already present is not an error (the form can be submitted twice).
	AddEmail(ctx context.Context, email string) (*domain.WaitlistEntry, error)

	// ListEntries returns all waitlist entries, newest first.
	ListEntries(ctx context.Context) ([]domain.WaitlistEntry, error)
}
