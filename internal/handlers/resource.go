package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"inspection-back/internal/middleware"
	"inspection-back/internal/schema"
)

// Service is the owner-scoped CRUD surface a Resource exposes over HTTP.
type Service[T any] interface {
	List(ctx context.Context, userID uint) ([]T, error)
	Get(ctx context.Context, userID, id uint) (*T, error)
	Create(ctx context.Context, userID uint, raw []byte) (*T, error)
	Update(ctx context.Context, userID, id uint, raw []byte, partial bool) (*T, error)
	Delete(ctx context.Context, userID, id uint) error
}

// View renders one record for a response.
type View[T any] func(c *gin.Context, row *T) (schema.Object, error)

// Views maps each operation to the view rendering its result. Unset
// operations fall back to Detail.
type Views[T any] struct {
	List   View[T]
	Detail View[T]
	Create View[T]
	Update View[T]
}

func (v Views[T]) resolve() Views[T] {
	if v.Detail == nil {
		panic("handlers: Views.Detail is required")
	}
	if v.List == nil {
		v.List = v.Detail
	}
	if v.Create == nil {
		v.Create = v.Detail
	}
	if v.Update == nil {
		v.Update = v.Detail
	}
	return v
}

// TableView renders id plus the table fields of T.
func TableView[T any](s *schema.Schema[T], id func(*T) uint) View[T] {
	return func(_ *gin.Context, row *T) (schema.Object, error) {
		return s.Render(id(row), row), nil
	}
}

// Resource serves list/create/retrieve/update/delete for one entity.
type Resource[T any] struct {
	svc   Service[T]
	views Views[T]
	log   *zap.Logger
}

// NewResource fixes the operation to view mapping.
func NewResource[T any](svc Service[T], views Views[T], log *zap.Logger) *Resource[T] {
	return &Resource[T]{svc: svc, views: views.resolve(), log: log}
}

// Register mounts the collection and item routes on g.
func (h *Resource[T]) Register(g *gin.RouterGroup) {
	g.GET("/", h.List())
	g.POST("/", h.Create())
	g.GET("/:id/", h.Retrieve())
	g.PUT("/:id/", h.Update(false))
	g.PATCH("/:id/", h.Update(true))
	g.DELETE("/:id/", h.Delete())
}

func (h *Resource[T]) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		rows, err := h.svc.List(c.Request.Context(), user.ID)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		out := make([]schema.Object, 0, len(rows))
		for i := range rows {
			obj, err := h.views.List(c, &rows[i])
			if err != nil {
				respondError(c, h.log, err)
				return
			}
			out = append(out, obj)
		}
		c.JSON(http.StatusOK, out)
	}
}

func (h *Resource[T]) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		raw, err := c.GetRawData()
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		row, err := h.svc.Create(c.Request.Context(), user.ID, raw)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		h.render(c, http.StatusCreated, h.views.Create, row)
	}
}

func (h *Resource[T]) Retrieve() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := pathID(c)
		if !ok {
			return
		}
		row, err := h.svc.Get(c.Request.Context(), user.ID, id)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		h.render(c, http.StatusOK, h.views.Detail, row)
	}
}

// Update handles PUT (every field required) and PATCH (any subset).
func (h *Resource[T]) Update(partial bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := pathID(c)
		if !ok {
			return
		}
		raw, err := c.GetRawData()
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		row, err := h.svc.Update(c.Request.Context(), user.ID, id, raw, partial)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		h.render(c, http.StatusOK, h.views.Update, row)
	}
}

func (h *Resource[T]) Delete() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := h.svc.Delete(c.Request.Context(), user.ID, id); err != nil {
			respondError(c, h.log, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func (h *Resource[T]) render(c *gin.Context, status int, view View[T], row *T) {
	obj, err := view(c, row)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(status, obj)
}
