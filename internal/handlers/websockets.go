package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// checkWSOrigin mirrors the HTTP CORS policy for websocket upgrades. An
// absent Origin header (non-browser clients, tests) is allowed through.
func (h *Handler) checkWSOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// wsConnect upgrades the request and hands the connection to the hub. The
// channel is deliberately unauthenticated: connected clients receive every
// dataUpdated broadcast regardless of record ownership, and may inject
// updateData events that are relayed verbatim to all peers.
func (h *Handler) wsConnect(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	h.hub.ServeConn(conn)
}
