package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dhruvywuvy/advocare-demo-day/internal/domain"

	"github.com/lib/pq"
)

// PostgresUsersRepository users/advocates Repository 实现
type PostgresUsersRepository struct {
	db *sql.DB
}

func NewPostgresUsersRepository(db *sql.DB) *PostgresUsersRepository {
	return &PostgresUsersRepository{db: db}
}

var _ UsersRepository = (*PostgresUsersRepository)(nil)

// CreateUser 创建用户资料（advocate 同事务创建空的 advocates 行）
func (r *PostgresUsersRepository) CreateUser(ctx context.Context, profile *domain.UserProfile, passwordHash []byte) error {
	if profile.Email == "" {
		return fmt.Errorf("email is required")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, user_type, full_name, phone_number, created_at)
		 VALUES ($1::uuid, $2, $3, $4, $5, $6, NOW())`,
		profile.ID, profile.Email, passwordHash, profile.UserType, profile.FullName, profile.PhoneNumber,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	if profile.UserType == domain.UserTypeAdvocate {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO advocates (user_id, credentials, years_of_experience, specializations,
			        success_rate, total_savings_achieved, active_cases_count)
			 VALUES ($1::uuid, '', 0, '{}', 0, 0, 0)`,
			profile.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert advocate profile: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user creation: %w", err)
	}
	return nil
}

// GetUserByEmail 登录查询（返回资料 + 密码 hash）
func (r *PostgresUsersRepository) GetUserByEmail(ctx context.Context, email string) (*domain.UserProfile, []byte, error) {
	if email == "" {
		return nil, nil, fmt.Errorf("email is required")
	}

	query := `
		SELECT
			id::text,
			email,
			password_hash,
			COALESCE(user_type, 'patient') as user_type,
			COALESCE(full_name, '') as full_name,
			COALESCE(phone_number, '') as phone_number,
			created_at
		FROM users
		WHERE email = $1
	`

	var profile domain.UserProfile
	var passwordHash []byte
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&profile.ID,
		&profile.Email,
		&passwordHash,
		&profile.UserType,
		&profile.FullName,
		&profile.PhoneNumber,
		&profile.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, fmt.Errorf("user not found: %w", err)
		}
		return nil, nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &profile, passwordHash, nil
}

// GetUserByID 会话检查查询
func (r *PostgresUsersRepository) GetUserByID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	query := `
		SELECT
			id::text,
			email,
			COALESCE(user_type, 'patient') as user_type,
			COALESCE(full_name, '') as full_name,
			COALESCE(phone_number, '') as phone_number,
			created_at
		FROM users
		WHERE id = $1::uuid
	`

	var profile domain.UserProfile
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID,
		&profile.Email,
		&profile.UserType,
		&profile.FullName,
		&profile.PhoneNumber,
		&profile.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &profile, nil
}

// GetAdvocateProfile advocates 扩展资料（非 advocate 返回 nil）
func (r *PostgresUsersRepository) GetAdvocateProfile(ctx context.Context, userID string) (*domain.AdvocateProfile, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	query := `
		SELECT
			user_id::text,
			COALESCE(credentials, '') as credentials,
			COALESCE(years_of_experience, 0) as years_of_experience,
			COALESCE(specializations, '{}') as specializations,
			COALESCE(success_rate, 0) as success_rate,
			COALESCE(total_savings_achieved, 0) as total_savings_achieved,
			COALESCE(active_cases_count, 0) as active_cases_count
		FROM advocates
		WHERE user_id = $1::uuid
	`

	var profile domain.AdvocateProfile
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Credentials,
		&profile.YearsOfExperience,
		pq.Array(&profile.Specializations),
		&profile.SuccessRate,
		&profile.TotalSavingsAchieved,
		&profile.ActiveCasesCount,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get advocate profile: %w", err)
	}
	return &profile, nil
}
