package repository

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// MemoryAnalysisArchiveRepo archive fallback when DB is disabled.
type MemoryAnalysisArchiveRepo struct {
	mu      sync.RWMutex
	results map[string]json.RawMessage // id -> payload
}

func NewMemoryAnalysisArchiveRepo() *MemoryAnalysisArchiveRepo {
	return &MemoryAnalysisArchiveRepo{
		results: map[string]json.RawMessage{},
	}
}

var _ AnalysisArchiveRepository = (*MemoryAnalysisArchiveRepo)(nil)

func (r *MemoryAnalysisArchiveRepo) SaveResult(_ context.Context, _ string, analysis json.RawMessage) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	cp := make(json.RawMessage, len(analysis))
	copy(cp, analysis)
	r.results[id] = cp
	return id, nil
}

func (r *MemoryAnalysisArchiveRepo) CountResults(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.results), nil
}
