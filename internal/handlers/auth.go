package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"inspection-back/internal/middleware"
	"inspection-back/internal/models"
	"inspection-back/internal/service"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type UserResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func userResponse(u *models.User) UserResponse {
	return UserResponse{Email: u.Email, Name: u.Name}
}

// CookieOptions controls the auth_token cookie set at login.
type CookieOptions struct {
	TTL    time.Duration
	Secure bool
}

func CreateUser(users *service.UserService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.GetRawData()
		if err != nil {
			respondError(c, log, err)
			return
		}
		user, err := users.Register(c.Request.Context(), raw)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, userResponse(user))
	}
}

func CreateToken(users *service.UserService, cookie CookieOptions, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		token, err := users.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, log, err)
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.TokenCookie, token, int(cookie.TTL.Seconds()), "/", "", cookie.Secure, true)
		c.JSON(http.StatusOK, TokenResponse{Token: token})
	}
}

func Logout(c *gin.Context) {
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

func GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, userResponse(middleware.CurrentUser(c)))
}

// UpdateMe handles PUT (email, password and name required) and PATCH.
func UpdateMe(users *service.UserService, partial bool, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.GetRawData()
		if err != nil {
			respondError(c, log, err)
			return
		}
		user, err := users.UpdateMe(c.Request.Context(), middleware.CurrentUser(c), raw, partial)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, userResponse(user))
	}
}
