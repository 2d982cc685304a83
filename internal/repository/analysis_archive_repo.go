package repository

import (
	"context"
	"encoding/json"
)

// AnalysisArchiveRepository temp_analysis_results 表的存取接口。
// The archive is bookkeeping only: the submission pipeline writes to it
// best-effort after a result has already been delivered to the user.
type AnalysisArchiveRepository interface {
	// SaveResult stores one analysis payload, keyed by the submitter's
	// email when known (email may be empty for the older form variant).
	SaveResult(ctx context.Context, email string, analysis json.RawMessage) (string, error)

	// CountResults returns the number of archived results (ops visibility).
	CountResults(ctx context.Context) (int, error)
}
