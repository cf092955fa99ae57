package repository

import (
	"gorm.io/gorm"

	"inspection-back/internal/models"
)

// JobSet is the job collection of one report, bound to a transaction.
type JobSet struct {
	tx     *gorm.DB
	report *models.Report
}

// Add associates job with the report.
func (s JobSet) Add(job *models.Job) error {
	return s.tx.Exec("INSERT INTO report_jobs (report_id, job_id) VALUES (?, ?)", s.report.ID, job.ID).Error
}

// Clear removes every association of the report.
func (s JobSet) Clear() error {
	return s.tx.Exec("DELETE FROM report_jobs WHERE report_id = ?", s.report.ID).Error
}

// Contains reports whether job jobID is associated with the report.
func (s JobSet) Contains(jobID uint) (bool, error) {
	var n int64
	err := s.tx.Table("report_jobs").
		Where("report_id = ? AND job_id = ?", s.report.ID, jobID).
		Count(&n).Error
	return n > 0, err
}

// Reconcile finds or creates a job per name owned by userID and associates
// it. Names match exactly; repeated names attach one job.
func (s JobSet) Reconcile(userID uint, names []string) error {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		job, err := findOrCreateJob(s.tx, userID, name)
		if err != nil {
			return err
		}
		ok, err := s.Contains(job.ID)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		if err := s.Add(job); err != nil {
			return err
		}
	}
	return nil
}

// findOrCreateJob is keyed on (user_id, name). Concurrent creators of the
// same pair may both insert; the schema does not forbid duplicates.
func findOrCreateJob(tx *gorm.DB, userID uint, name string) (*models.Job, error) {
	job := models.Job{UserID: userID, Name: name}
	err := tx.Where("user_id = ? AND name = ?", userID, name).
		FirstOrCreate(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}
