package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"

	"go.uber.org/zap"

	"inspection-back/internal/errs"
	"inspection-back/internal/models"
	"inspection-back/internal/repository"
	"inspection-back/internal/schema"
	"inspection-back/internal/storage"
	"inspection-back/pkg/imaging"
)

// ReportService manages reports, their job sets and their images.
type ReportService struct {
	reports   *repository.ReportRepo
	blobs     storage.Store
	maxUpload int64
	log       *zap.Logger
}

func NewReportService(reports *repository.ReportRepo, blobs storage.Store, maxUpload int64, log *zap.Logger) *ReportService {
	return &ReportService{reports: reports, blobs: blobs, maxUpload: maxUpload, log: log}
}

func (s *ReportService) List(ctx context.Context, userID uint) ([]models.Report, error) {
	return s.reports.List(ctx, userID)
}

func (s *ReportService) Get(ctx context.Context, userID, id uint) (*models.Report, error) {
	return s.reports.Get(ctx, userID, id)
}

// Create validates a full payload, stores the report and attaches the
// described jobs.
func (s *ReportService) Create(ctx context.Context, userID uint, raw []byte) (*models.Report, error) {
	p, err := schema.ReportSchema.Parse(raw, false)
	if err != nil {
		return nil, err
	}
	report := &models.Report{}
	schema.ReportSchema.Apply(p, report)
	if err := s.reports.CreateWithJobs(ctx, userID, report, p.JobNames()); err != nil {
		return nil, err
	}
	return s.reports.Get(ctx, userID, report.ID)
}

// Update replaces the job set only when the payload carries a "jobs" key.
func (s *ReportService) Update(ctx context.Context, userID, id uint, raw []byte, partial bool) (*models.Report, error) {
	report, err := s.reports.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	p, err := schema.ReportSchema.Parse(raw, partial)
	if err != nil {
		return nil, err
	}
	schema.ReportSchema.Apply(p, report)
	if err := s.reports.SaveWithJobs(ctx, userID, report, p.JobNames(), p.HasJobs); err != nil {
		return nil, err
	}
	return s.reports.Get(ctx, userID, id)
}

// Delete removes the report and then its image.
func (s *ReportService) Delete(ctx context.Context, userID, id uint) error {
	report, err := s.reports.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	s.dropBlob(ctx, report.Image)
	return nil
}

// UploadImage validates r as an image, stores it and points the report at
// it. A previous image is removed once the new key is committed.
func (s *ReportService) UploadImage(ctx context.Context, userID, id uint, r io.Reader) (*models.Report, error) {
	report, err := s.reports.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	data, format, err := imaging.ValidateImage(r, s.maxUpload)
	switch {
	case errors.Is(err, imaging.ErrNotImage), errors.Is(err, imaging.ErrTooLarge), errors.Is(err, imaging.ErrEmpty):
		return nil, schema.Invalid("image", err.Error())
	case err != nil:
		return nil, err
	}

	key := storage.ObjectName(userID, "reports", imaging.Extension(format))
	if err := s.blobs.Put(ctx, key, bytes.NewReader(data), int64(len(data)), imaging.ContentType(format)); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}
	if err := s.reports.SetImage(ctx, userID, id, key); err != nil {
		s.dropBlob(ctx, key)
		return nil, err
	}
	if report.Image != "" && report.Image != key {
		s.dropBlob(ctx, report.Image)
	}

	s.log.Info("report image stored",
		zap.Uint("user_id", userID),
		zap.Uint("report_id", id),
		zap.String("key", key),
		zap.Int("bytes", len(data)))
	return s.reports.Get(ctx, userID, id)
}

// OpenImage returns the stored image of an owned report and its content type.
func (s *ReportService) OpenImage(ctx context.Context, userID, id uint) (io.ReadCloser, string, error) {
	report, err := s.reports.Get(ctx, userID, id)
	if err != nil {
		return nil, "", err
	}
	if report.Image == "" {
		return nil, "", errs.ErrNotFound
	}
	rc, err := s.blobs.Open(ctx, report.Image)
	if err != nil {
		return nil, "", err
	}
	contentType := mime.TypeByExtension(path.Ext(report.Image))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return rc, contentType, nil
}

// ImageURL returns a link to the report image, or nil when there is none.
func (s *ReportService) ImageURL(ctx context.Context, report *models.Report) (*string, error) {
	if report.Image == "" {
		return nil, nil
	}
	url, err := s.blobs.URL(ctx, report.Image)
	if err != nil {
		return nil, err
	}
	return &url, nil
}

func (s *ReportService) dropBlob(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.blobs.Delete(ctx, key); err != nil {
		s.log.Warn("failed to delete image", zap.String("key", key), zap.Error(err))
	}
}
