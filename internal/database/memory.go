package database

import (
	"context"
	"sync"

	"github.com/kmmndr/motion_analyzer/internal/models"
)

// MemoryRepository keeps analyses in process memory, in insertion order.
type MemoryRepository struct {
	mu       sync.RWMutex
	analyses []models.Analysis
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Add(ctx context.Context, values models.AnalysisCreate) (models.Analysis, error) {
	analysis, err := newAnalysis(values)
	if err != nil {
		return models.Analysis{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.analyses = append(r.analyses, analysis)
	return analysis, nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (*models.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.analyses {
		if a.ID == id {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) FindAll(ctx context.Context, filter models.AnalysisFilter, skip, limit int) ([]models.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []models.Analysis{}
	for _, a := range r.analyses {
		if !filter.Match(a) {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		matched = append(matched, a)
		if limit > 0 && len(matched) == limit {
			break
		}
	}
	return matched, nil
}

func (r *MemoryRepository) Count(ctx context.Context, filter models.AnalysisFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, a := range r.analyses {
		if filter.Match(a) {
			count++
		}
	}
	return count, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, a := range r.analyses {
		if a.ID == id {
			r.analyses = append(r.analyses[:i], r.analyses[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *MemoryRepository) Close() {}
