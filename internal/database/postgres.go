package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/kmmndr/motion_analyzer/internal/models"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// PostgresRepository stores analyses in the video_analysis table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository connects to dsn and applies pending migrations.
func NewPostgresRepository(ctx context.Context, dsn string) (*PostgresRepository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresRepository{pool: pool}, nil
}

func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Add(ctx context.Context, values models.AnalysisCreate) (models.Analysis, error) {
	analysis, err := newAnalysis(values)
	if err != nil {
		return models.Analysis{}, err
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO video_analysis (id, filename, processing_time, movement_detected, error, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		analysis.ID, analysis.Filename, analysis.ProcessingTime, analysis.MovementDetected, analysis.Error, analysis.CreatedAt)
	if err != nil {
		return models.Analysis{}, fmt.Errorf("failed to insert analysis: %w", err)
	}

	return analysis, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Analysis, error) {
	if !validID(id) {
		return nil, nil
	}

	row := r.pool.QueryRow(ctx,
		`SELECT id::text, filename, processing_time, movement_detected, error, created_at
		 FROM video_analysis WHERE id = $1`, id)

	analysis, err := scanAnalysis(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find analysis %s: %w", id, err)
	}
	return &analysis, nil
}

func (r *PostgresRepository) FindAll(ctx context.Context, filter models.AnalysisFilter, skip, limit int) ([]models.Analysis, error) {
	where, args := whereClause(filter)
	query := `SELECT id::text, filename, processing_time, movement_detected, error, created_at
		FROM video_analysis` + where + ` ORDER BY created_at, id`

	if skip > 0 {
		args = append(args, skip)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	analyses := []models.Analysis{}
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		analyses = append(analyses, analysis)
	}
	return analyses, rows.Err()
}

func (r *PostgresRepository) Count(ctx context.Context, filter models.AnalysisFilter) (int64, error) {
	where, args := whereClause(filter)

	var count int64
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM video_analysis"+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count analyses: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (int64, error) {
	if !validID(id) {
		return 0, nil
	}

	tag, err := r.pool.Exec(ctx, "DELETE FROM video_analysis WHERE id = $1", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete analysis %s: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

func (r *PostgresRepository) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

func whereClause(filter models.AnalysisFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.Filename != "" {
		args = append(args, filter.Filename)
		conditions = append(conditions, fmt.Sprintf("filename = $%d", len(args)))
	}
	if filter.MovementDetected != nil {
		args = append(args, *filter.MovementDetected)
		conditions = append(conditions, fmt.Sprintf("movement_detected = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func scanAnalysis(row pgx.Row) (models.Analysis, error) {
	var a models.Analysis
	err := row.Scan(&a.ID, &a.Filename, &a.ProcessingTime, &a.MovementDetected, &a.Error, &a.CreatedAt)
	return a, err
}
