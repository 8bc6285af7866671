package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/codebuddy1234/Kisan-Sahay1/internal/models"
)

// IndexJobRepository queues ingested documents for background indexing into
// the vector store.
type IndexJobRepository interface {
	Create(job *models.IndexJob) error
	FindByID(id uuid.UUID) (*models.IndexJob, error)
	UpdateStatus(id uuid.UUID, status models.IndexJobStatus) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.IndexJob, error)
}

type indexJobRepository struct {
	db *gorm.DB
}

func NewIndexJobRepository(db *gorm.DB) IndexJobRepository {
	return &indexJobRepository{db: db}
}

func (r *indexJobRepository) Create(job *models.IndexJob) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create index job: %w", err)
	}
	return nil
}

func (r *indexJobRepository) FindByID(id uuid.UUID) (*models.IndexJob, error) {
	var job models.IndexJob
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("index job not found")
		}
		return nil, fmt.Errorf("failed to find index job: %w", err)
	}
	return &job, nil
}

func (r *indexJobRepository) UpdateStatus(id uuid.UUID, status models.IndexJobStatus) error {
	result := r.db.Model(&models.IndexJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("index job not found")
	}
	return nil
}

func (r *indexJobRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.IndexJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.IndexStatusFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("index job not found")
	}
	return nil
}

func (r *indexJobRepository) FindPendingJobs(limit int) ([]models.IndexJob, error) {
	var jobs []models.IndexJob
	err := r.db.
		Where("status = ?", models.IndexStatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&jobs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}
	return jobs, nil
}
