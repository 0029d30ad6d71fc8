package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/summitworks/eventreg/internal/application"
	"github.com/summitworks/eventreg/internal/interface/middleware"
	"github.com/summitworks/eventreg/pkg/apierror"
	"github.com/summitworks/eventreg/pkg/validation"
)

// AuthHandler serves registration, login, and logout. Register and login
// both end with the session carrying the user id; the middleware takes care
// of minting the token and the cookie.
type AuthHandler struct {
	Auth   *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(auth *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Logger: logger}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Name     string `json:"name" binding:"omitempty,max=120"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.Write(c, apierror.BadRequest(validation.Message(err)))
		return
	}

	u, err := h.Auth.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.FromContext(c).SetUserID(u.ID)
	h.Logger.WithField("user_id", u.ID).Info("user registered")
	c.JSON(http.StatusOK, gin.H{"user": u.Public()})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.Write(c, apierror.BadRequest(validation.Message(err)))
		return
	}

	u, err := h.Auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.FromContext(c).SetUserID(u.ID)
	c.JSON(http.StatusOK, gin.H{"user": u.Public()})
}

// Logout POST /api/auth/logout. Idempotent: logging out without a live
// session is still a 200.
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.FromContext(c).Destroy()
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
