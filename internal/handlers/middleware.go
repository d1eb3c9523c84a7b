package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const ctxUserID = "userId"

// All authentication failures get the same status and body; callers cannot
// tell a missing header from a bad signature or an expired token.
const msgPleaseAuthenticate = "Please authenticate"

// authMiddleware is the gate in front of every protected endpoint: it
// extracts the Bearer token, verifies signature and expiry, and stores the
// embedded user id in the request context.
func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgPleaseAuthenticate})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgPleaseAuthenticate})
		return
	}

	userID, err := h.services.ParseToken(parts[1])
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_token_rejected", "err", err)
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgPleaseAuthenticate})
		return
	}

	c.Set(ctxUserID, userID)
	c.Next()
}

// userIDFrom returns the authenticated user id stored by authMiddleware.
func userIDFrom(c *gin.Context) int {
	return c.GetInt(ctxUserID)
}
