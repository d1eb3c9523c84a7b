package handlers

import (
	"errors"
	"net/http"

	"social_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	FullName    string `json:"fullName" binding:"required"`
	DateOfBirth string `json:"dateOfBirth" binding:"required"`
}

type loginRequest struct {
	Login    string `json:"login" binding:"required"` // username or email
	Password string `json:"password" binding:"required"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body: " + err.Error()})
		return false
	}
	return true
}

// internalError logs the failure and reports it with the raw error text, the
// way the original API does. No retries; the failure is terminal for this
// request.
func (h *Handler) internalError(c *gin.Context, userMsg, logKey string, err error) {
	if h.log != nil && err != nil {
		h.log.Errorw(logKey, "err", err)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": userMsg, "error": err.Error()})
}

// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  registerRequest  true  "Registration payload"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /register [post]
func (h *Handler) register(c *gin.Context) {
	var input registerRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	// Duplicate username/email surfaces as a store error here → generic 500.
	if _, err := h.services.SignUp(c.Request.Context(), service.SignUpInput{
		Username:    input.Username,
		Email:       input.Email,
		Password:    input.Password,
		FullName:    input.FullName,
		DateOfBirth: input.DateOfBirth,
	}); err != nil {
		h.internalError(c, "Error registering user", "register_failed", err)
		return
	}

	// No auto-login on registration.
	c.JSON(http.StatusCreated, gin.H{"message": "User created"})
}

// @Summary      Log in with username or email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  loginRequest  true  "Login payload"
// @Success      200   {object}  map[string]string  "token, username"
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	res, err := h.services.SignIn(c.Request.Context(), input.Login, input.Password)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	case errors.Is(err, service.ErrInvalidPassword):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	case err != nil:
		h.internalError(c, "Error logging in", "login_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": res.Token, "username": res.Username})
}
