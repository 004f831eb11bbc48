package database

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/kmmndr/motion_analyzer/internal/models"
)

// Repository stores analysis results.
type Repository interface {
	Add(ctx context.Context, values models.AnalysisCreate) (models.Analysis, error)
	// FindByID returns nil and no error when the analysis does not exist.
	FindByID(ctx context.Context, id string) (*models.Analysis, error)
	// FindAll lists analyses oldest first. A limit of 0 means no limit.
	FindAll(ctx context.Context, filter models.AnalysisFilter, skip, limit int) ([]models.Analysis, error)
	Count(ctx context.Context, filter models.AnalysisFilter) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	Close()
}

func newAnalysis(values models.AnalysisCreate) (models.Analysis, error) {
	if err := values.Validate(); err != nil {
		return models.Analysis{}, err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return models.Analysis{}, err
	}

	return models.Analysis{
		ID:               id.String(),
		Filename:         values.Filename,
		ProcessingTime:   values.ProcessingTime,
		MovementDetected: values.MovementDetected,
		Error:            values.Error,
		CreatedAt:        time.Now().UTC().Truncate(time.Microsecond),
	}, nil
}

func validID(id string) bool {
	_, err := uuid.FromString(id)
	return err == nil
}
