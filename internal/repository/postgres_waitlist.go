package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dhruvywuvy/advocare-demo-day/internal/domain"
)

// PostgresWaitlistRepository waitlist Repository 实现
type PostgresWaitlistRepository struct {
	db *sql.DB
}

func NewPostgresWaitlistRepository(db *sql.DB) *PostgresWaitlistRepository {
	return &PostgresWaitlistRepository{db: db}
}

// 确保实现了接口
var _ WaitlistRepository = (*PostgresWaitlistRepository)(nil)

// AddEmail 写入 waitlist (email, created_at)
func (r *PostgresWaitlistRepository) AddEmail(ctx context.Context, email string) (*domain.WaitlistEntry, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	query := `
		INSERT INTO waitlist (email, created_at)
		VALUES ($1, NOW())
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id::text, email, created_at
	`

	var entry domain.WaitlistEntry
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&entry.ID,
		&entry.Email,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add waitlist email: %w", err)
	}
	return &entry, nil
}

// ListEntries 按创建时间倒序返回全部 waitlist 记录
func (r *PostgresWaitlistRepository) ListEntries(ctx context.Context) ([]domain.WaitlistEntry, error) {
	query := `
		SELECT id::text, email, created_at
		FROM waitlist
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list waitlist: %w", err)
	}
	defer rows.Close()

	var entries []domain.WaitlistEntry
	for rows.Next() {
		var entry domain.WaitlistEntry
		if err := rows.Scan(&entry.ID, &entry.Email, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan waitlist entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate waitlist: %w", err)
	}
	return entries, nil
}
