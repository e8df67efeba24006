package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetVAPIDPublicKey exposes the public key browser clients need to create
// a push subscription.
func (h *Handler) GetVAPIDPublicKey(c *gin.Context) {
	if h.cfg.Push.PublicKey == "" {
		fail(c, http.StatusNotFound, "Web push is not configured")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "publicKey": h.cfg.Push.PublicKey})
}
