package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"inspection-back/internal/middleware"
	"inspection-back/internal/models"
	"inspection-back/internal/schema"
	"inspection-back/internal/service"
)

// ReportView renders a report with its jobs and a link to its image.
func ReportView(svc *service.ReportService) View[models.Report] {
	return func(c *gin.Context, r *models.Report) (schema.Object, error) {
		jobs := make([]schema.Object, 0, len(r.Jobs))
		for i := range r.Jobs {
			jobs = append(jobs, schema.JobSchema.Render(r.Jobs[i].ID, &r.Jobs[i]))
		}
		url, err := svc.ImageURL(c.Request.Context(), r)
		if err != nil {
			return nil, err
		}
		return schema.ReportSchema.Render(r.ID, r,
			schema.Pair{Key: schema.JobsKey, Value: jobs},
			schema.Pair{Key: "image", Value: url},
		), nil
	}
}

// UploadReportImage stores the multipart "image" file on an owned report.
func UploadReportImage(svc *service.ReportService, view View[models.Report], log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := pathID(c)
		if !ok {
			return
		}
		// resolve ownership before looking at the payload
		if _, err := svc.Get(c.Request.Context(), user.ID, id); err != nil {
			respondError(c, log, err)
			return
		}

		header, err := c.FormFile("image")
		if err != nil {
			respondError(c, log, schema.Invalid("image", "No file was submitted."))
			return
		}
		file, err := header.Open()
		if err != nil {
			respondError(c, log, err)
			return
		}
		defer file.Close()

		report, err := svc.UploadImage(c.Request.Context(), user.ID, id, file)
		if err != nil {
			respondError(c, log, err)
			return
		}
		obj, err := view(c, report)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, obj)
	}
}

// DownloadReportImage streams the stored image of an owned report.
func DownloadReportImage(svc *service.ReportService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := pathID(c)
		if !ok {
			return
		}
		rc, contentType, err := svc.OpenImage(c.Request.Context(), user.ID, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		defer rc.Close()
		c.DataFromReader(http.StatusOK, -1, contentType, rc, nil)
	}
}
