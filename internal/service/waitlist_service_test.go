package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/dhruvywuvy/advocare-demo-day/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func TestWaitlist_Join(t *testing.T) {
	repo := repository.NewMemoryWaitlistRepo()
	svc := NewWaitlistService(repo, zap.NewNop())
	ctx := context.Background()

	entry, err := svc.Join(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", entry.Email)

	// Joining twice is not an error.
	again, err := svc.Join(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, entry.ID, again.ID)
}

func TestWaitlist_JoinRejectsBadEmail(t *testing.T) {
	svc := NewWaitlistService(repository.NewMemoryWaitlistRepo(), zap.NewNop())

	_, err := svc.Join(context.Background(), "nope")
	assert.Error(t, err)
}

func TestWaitlist_Export(t *testing.T) {
	repo := repository.NewMemoryWaitlistRepo()
	svc := NewWaitlistService(repo, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Join(ctx, "a@example.com")
	require.NoError(t, err)
	_, err = svc.Join(ctx, "b@example.com")
	require.NoError(t, err)

	data, err := svc.Export(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Waitlist")
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 entries
	assert.Equal(t, []string{"Email", "Created At"}, rows[0])
}
