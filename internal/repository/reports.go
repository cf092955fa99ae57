package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"inspection-back/internal/errs"
	"inspection-back/internal/models"
)

// ReportRepo stores reports together with their job associations.
type ReportRepo struct {
	*Scoped[models.Report, *models.Report]
}

// NewReportRepo lists reports most recent first with their jobs preloaded.
func NewReportRepo(db *gorm.DB) *ReportRepo {
	s := NewScoped[models.Report, *models.Report](db, "id DESC")
	s.preload = func(q *gorm.DB) *gorm.DB {
		return q.Preload("Jobs", func(db *gorm.DB) *gorm.DB { return db.Order("jobs.id") })
	}
	s.detach = func(tx *gorm.DB, report *models.Report) error {
		return JobSet{tx: tx, report: report}.Clear()
	}
	return &ReportRepo{Scoped: s}
}

// CreateWithJobs inserts report owned by userID and attaches the named jobs
// in the same transaction.
func (r *ReportRepo) CreateWithJobs(ctx context.Context, userID uint, report *models.Report, jobs []string) error {
	report.SetOwner(userID)
	report.Jobs = nil
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(report).Error; err != nil {
			return err
		}
		return JobSet{tx: tx, report: report}.Reconcile(userID, jobs)
	})
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	return nil
}

// SaveWithJobs writes every column of report. When replaceJobs is set the
// job set is cleared and rebuilt from jobs; otherwise it is left untouched.
// Both steps share one transaction so a failure never leaves the report
// without its previous jobs.
func (r *ReportRepo) SaveWithJobs(ctx context.Context, userID uint, report *models.Report, jobs []string, replaceJobs bool) error {
	report.SetOwner(userID)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateAll(tx, userID, report); err != nil {
			return err
		}
		if !replaceJobs {
			return nil
		}
		set := JobSet{tx: tx, report: report}
		if err := set.Clear(); err != nil {
			return err
		}
		return set.Reconcile(userID, jobs)
	})
	if err != nil {
		return fmt.Errorf("save report %d: %w", report.ID, err)
	}
	return nil
}

// SetImage updates only the image key of an owned report. A report that is
// gone or foreign yields errs.ErrNotFound.
func (r *ReportRepo) SetImage(ctx context.Context, userID, id uint, key string) error {
	res := r.db.WithContext(ctx).Model(&models.Report{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("image", key)
	if res.Error != nil {
		return fmt.Errorf("set image %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}
