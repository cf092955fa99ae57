// Package router assembles the HTTP API.
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"inspection-back/internal/auth"
	"inspection-back/internal/config"
	"inspection-back/internal/handlers"
	"inspection-back/internal/middleware"
	"inspection-back/internal/models"
	"inspection-back/internal/repository"
	"inspection-back/internal/schema"
	"inspection-back/internal/service"
	"inspection-back/internal/storage"
)

type Deps struct {
	Config *config.Config
	Log    *zap.Logger
	DB     *gorm.DB
	Blobs  storage.Store
}

// NewRouter wires repositories, services and handlers into a gin engine.
func NewRouter(d Deps) *gin.Engine {
	tokens := auth.NewTokenManager(d.Config.JWTSecret, d.Config.TokenTTL)
	users := service.NewUserService(repository.NewUserRepo(d.DB), tokens, d.Log)
	clients := service.NewResource[models.Client](repository.NewClientRepo(d.DB), schema.ClientSchema)
	jobs := service.NewResource[models.Job](repository.NewJobRepo(d.DB), schema.JobSchema)
	reports := service.NewReportService(repository.NewReportRepo(d.DB), d.Blobs, d.Config.MaxUploadBytes, d.Log)

	r := gin.New()
	r.MaxMultipartMemory = d.Config.MaxUploadBytes
	r.Use(middleware.Recovery(d.Log), middleware.RequestLogger(d.Log))
	r.Use(cors.New(corsConfig(d.Config.Origins())))

	if local, ok := d.Blobs.(*storage.Local); ok && d.Config.Storage.MediaURL != "" {
		r.Static(d.Config.Storage.MediaURL, local.Root())
	}

	api := r.Group("/api")
	api.GET("/health", handlers.Health(d.DB))

	user := api.Group("/user")
	{
		user.POST("/create/", handlers.CreateUser(users, d.Log))
		user.POST("/token/", handlers.CreateToken(users, handlers.CookieOptions{TTL: d.Config.TokenTTL, Secure: !d.Config.Debug}, d.Log))
		user.POST("/logout/", handlers.Logout)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(users, d.Log))
	{
		protected.GET("/user/me/", handlers.GetMe)
		protected.PUT("/user/me/", handlers.UpdateMe(users, false, d.Log))
		protected.PATCH("/user/me/", handlers.UpdateMe(users, true, d.Log))

		clientViews := handlers.Views[models.Client]{
			Detail: handlers.TableView(schema.ClientSchema, func(c *models.Client) uint { return c.ID }),
		}
		handlers.NewResource[models.Client](clients, clientViews, d.Log).Register(protected.Group("/clients"))

		jobViews := handlers.Views[models.Job]{
			Detail: handlers.TableView(schema.JobSchema, func(j *models.Job) uint { return j.ID }),
		}
		handlers.NewResource[models.Job](jobs, jobViews, d.Log).Register(protected.Group("/jobs"))

		reportView := handlers.ReportView(reports)
		reportGroup := protected.Group("/reports")
		handlers.NewResource[models.Report](reports, handlers.Views[models.Report]{Detail: reportView}, d.Log).Register(reportGroup)
		reportGroup.POST("/:id/upload-image/", handlers.UploadReportImage(reports, reportView, d.Log))
		reportGroup.GET("/:id/image/", handlers.DownloadReportImage(reports, d.Log))
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
