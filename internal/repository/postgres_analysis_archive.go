package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PostgresAnalysisArchiveRepository temp_analysis_results Repository 实现
type PostgresAnalysisArchiveRepository struct {
	db *sql.DB
}

func NewPostgresAnalysisArchiveRepository(db *sql.DB) *PostgresAnalysisArchiveRepository {
	return &PostgresAnalysisArchiveRepository{db: db}
}

var _ AnalysisArchiveRepository = (*PostgresAnalysisArchiveRepository)(nil)

// SaveResult 归档一次分析结果
func (r *PostgresAnalysisArchiveRepository) SaveResult(ctx context.Context, email string, analysis json.RawMessage) (string, error) {
	if len(analysis) == 0 {
		return "", fmt.Errorf("analysis payload is required")
	}

	query := `
		INSERT INTO temp_analysis_results (email, analysis_result, created_at)
		VALUES (NULLIF($1, ''), $2::jsonb, NOW())
		RETURNING id::text
	`

	var id string
	if err := r.db.QueryRowContext(ctx, query, email, []byte(analysis)).Scan(&id); err != nil {
		return "", fmt.Errorf("failed to archive analysis result: %w", err)
	}
	return id, nil
}

// CountResults 归档总数
func (r *PostgresAnalysisArchiveRepository) CountResults(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM temp_analysis_results`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count archived results: %w", err)
	}
	return count, nil
}
