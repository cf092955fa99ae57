package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"inspection-back/internal/errs"
	"inspection-back/internal/models"
)

type fakeAuthn map[string]*models.User

func (f fakeAuthn) Authenticate(_ context.Context, token string) (*models.User, error) {
	if token == "broken" {
		return nil, errors.New("db down")
	}
	if u, ok := f[token]; ok {
		return u, nil
	}
	return nil, errs.ErrUnauthorized
}

func newEngine(log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(log), RequestLogger(log))
	authed := r.Group("/", AuthMiddleware(fakeAuthn{"good": {ID: 7}}, log))
	authed.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentUser(c).ID})
	})
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := newEngine(zap.NewNop())

	cases := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{"missing", "", "", http.StatusUnauthorized},
		{"bearer", "Bearer good", "", http.StatusOK},
		{"token scheme", "Token good", "", http.StatusOK},
		{"bad scheme", "Basic good", "", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", "", http.StatusUnauthorized},
		{"invalid", "Bearer nope", "", http.StatusUnauthorized},
		{"cookie", "", "good", http.StatusOK},
		{"header wins over cookie", "Bearer nope", "good", http.StatusUnauthorized},
		{"store failure", "Bearer broken", "", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: TokenCookie, Value: tc.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
			if tc.want == http.StatusOK {
				assert.JSONEq(t, `{"id":7}`, w.Body.String())
			}
		})
	}
}

func TestRecoveryAndLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newEngine(zap.New(core))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	r.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("request").All()
	if assert.NotEmpty(t, entries) {
		last := entries[len(entries)-1].ContextMap()
		assert.Equal(t, "/me", last["path"])
		assert.Equal(t, int64(http.StatusOK), last["status"])
		assert.Equal(t, uint64(7), last["user_id"])
	}
}
