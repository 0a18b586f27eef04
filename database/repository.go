package database

import (
	"context"
	"fmt"
	"time"

	"exoplanet-explorer/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultListLimit = 50

// Repository stores the analysis and batch-run history.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) SaveAnalysis(ctx context.Context, a *models.Analysis) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// RecentAnalyses lists the newest analyses, optionally filtered by status.
func (r *Repository) RecentAnalyses(ctx context.Context, status string, limit int) ([]models.Analysis, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}

	query := r.db.WithContext(ctx).Model(&models.Analysis{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var analyses []models.Analysis
	if err := query.Order("created_at DESC").Limit(limit).Find(&analyses).Error; err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return analyses, nil
}

func (r *Repository) SaveBatchRun(ctx context.Context, run *models.BatchRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to save batch run: %w", err)
	}
	return nil
}

func (r *Repository) RecentBatchRuns(ctx context.Context, limit int) ([]models.BatchRun, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	var runs []models.BatchRun
	if err := r.db.WithContext(ctx).Order("started_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list batch runs: %w", err)
	}
	return runs, nil
}

// Stats aggregates the history. Each count starts from a fresh query so
// conditions don't leak between them.
func (r *Repository) Stats(ctx context.Context) (*models.HistoryStats, error) {
	db := r.db.WithContext(ctx)
	analyses := func() *gorm.DB { return db.Model(&models.Analysis{}) }

	var stats models.HistoryStats
	steps := []*gorm.DB{
		analyses().Count(&stats.Total),
		analyses().Where("status = ?", string(models.StatusConfirmed)).Count(&stats.Confirmed),
		analyses().Where("status = ?", string(models.StatusFalsePositive)).Count(&stats.FalsePositives),
		analyses().Select("COALESCE(AVG(confidence), 0)").Scan(&stats.AvgConfidence),
		db.Model(&models.BatchRun{}).Count(&stats.BatchRuns),
		db.Model(&models.BatchRun{}).Select("COALESCE(SUM(total), 0)").Scan(&stats.BatchRows),
	}
	for _, step := range steps {
		if step.Error != nil {
			return nil, fmt.Errorf("failed to load stats: %w", step.Error)
		}
	}
	return &stats, nil
}
