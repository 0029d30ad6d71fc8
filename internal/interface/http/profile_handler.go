package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/summitworks/eventreg/internal/application"
	"github.com/summitworks/eventreg/pkg/apierror"
	"github.com/summitworks/eventreg/pkg/validation"
)

// avatar uploads are small images; anything bigger is a client error
const maxAvatarBytes = 5 << 20

// ProfileHandler serves the authenticated user's own account. All routes
// sit behind RequireAuth, so userID is always present.
type ProfileHandler struct {
	Auth   *application.AuthService
	Logger *logrus.Logger
}

func NewProfileHandler(auth *application.AuthService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Auth: auth, Logger: logger}
}

// Get GET /api/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	u, err := h.Auth.GetProfile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u.Public()})
}

type updateProfileRequest struct {
	Name      string `json:"name" binding:"omitempty,max=120"`
	AvatarURL string `json:"avatarUrl" binding:"omitempty,url"`
}

// Update PUT /api/profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.Write(c, apierror.BadRequest(validation.Message(err)))
		return
	}

	u, err := h.Auth.UpdateProfile(c.Request.Context(), c.GetString("userID"), application.UpdateProfileInput{
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u.Public()})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,pwd"`
}

// ChangePassword PUT /api/profile/password. The current password must
// verify first; a miss is the same 401 a bad login gets.
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.Write(c, apierror.BadRequest(validation.Message(err)))
		return
	}

	uid := c.GetString("userID")
	if err := h.Auth.ChangePassword(c.Request.Context(), uid, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(c, err)
		return
	}
	h.Logger.WithField("user_id", uid).Info("password changed")
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// UploadAvatar PUT /api/profile/avatar (multipart field "avatar")
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	fh, err := c.FormFile("avatar")
	if err != nil {
		apierror.Write(c, apierror.BadRequest("avatar file is required"))
		return
	}
	if fh.Size > maxAvatarBytes {
		apierror.Write(c, apierror.BadRequest("avatar must be 5MB or smaller"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		apierror.Write(c, apierror.BadRequest("avatar file is unreadable"))
		return
	}
	defer func() { _ = f.Close() }()

	contentType := fh.Header.Get("Content-Type")
	u, err := h.Auth.UploadAvatar(c.Request.Context(), c.GetString("userID"), f, fh.Filename, contentType)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u.Public()})
}
