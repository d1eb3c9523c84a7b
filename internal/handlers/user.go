package handlers

import (
	"errors"
	"net/http"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"social_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

const profilePicField = "profilePic"

type updateUserRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	DateOfBirth string `json:"dateOfBirth" binding:"required"`
}

// @Summary      Get the authenticated user's profile
// @Tags         user
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /user [get]
// @Security     BearerAuth
func (h *Handler) getUser(c *gin.Context) {
	u, err := h.services.Users.Get(c.Request.Context(), userIDFrom(c))
	if errors.Is(err, service.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		h.internalError(c, "Error fetching user details", "user_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary      Update the authenticated user's profile
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body  updateUserRequest  true  "Profile fields"
// @Success      200   {object}  models.User
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /user [put]
// @Security     BearerAuth
func (h *Handler) updateUser(c *gin.Context) {
	var input updateUserRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	u, err := h.services.Users.UpdateProfile(c.Request.Context(), userIDFrom(c), input.FullName, input.DateOfBirth)
	if errors.Is(err, service.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		h.internalError(c, "Error updating user details", "user_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary      Upload a profile picture
// @Description  Multipart field `profilePic`. No type or size validation; a replaced picture's old file is left on disk.
// @Tags         user
// @Accept       multipart/form-data
// @Produce      json
// @Param        profilePic  formData  file  true  "Image file"
// @Success      200  {object}  models.User
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /upload-profile-pic [post]
// @Security     BearerAuth
func (h *Handler) uploadProfilePic(c *gin.Context) {
	file, err := c.FormFile(profilePicField)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
		return
	}

	// Millisecond timestamp plus the original extension, stored flat in the
	// uploads dir. The DB records the slash-separated relative path that the
	// static route serves.
	name := strconv.FormatInt(time.Now().UnixMilli(), 10) + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadsDir, name)); err != nil {
		h.internalError(c, "Error uploading profile picture", "upload_save_failed", err)
		return
	}

	u, err := h.services.Users.SetProfilePic(c.Request.Context(), userIDFrom(c), path.Join("uploads", name))
	if errors.Is(err, service.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		// The file is already on disk with no matching DB row; it stays
		// orphaned, matching the no-cleanup policy.
		h.internalError(c, "Error uploading profile picture", "upload_record_failed", err)
		return
	}
	c.JSON(http.StatusOK, u)
}
