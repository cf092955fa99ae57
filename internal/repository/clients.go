package repository

import (
	"gorm.io/gorm"

	"inspection-back/internal/models"
)

// NewClientRepo lists clients most recent first.
func NewClientRepo(db *gorm.DB) *Scoped[models.Client, *models.Client] {
	return NewScoped[models.Client, *models.Client](db, "id DESC")
}

// NewJobRepo lists jobs by descending name. Deleting a job drops its report
// associations but never the reports.
func NewJobRepo(db *gorm.DB) *Scoped[models.Job, *models.Job] {
	s := NewScoped[models.Job, *models.Job](db, "name DESC")
	s.detach = func(tx *gorm.DB, job *models.Job) error {
		return tx.Exec("DELETE FROM report_jobs WHERE job_id = ?", job.ID).Error
	}
	return s
}
