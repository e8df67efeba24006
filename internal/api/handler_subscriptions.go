package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-complaint-backend/internal/model"
	"campus-complaint-backend/internal/mw"
)

type putSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required,url"`
	P256DH   string `json:"p256dh" binding:"required"`
	Auth     string `json:"auth" binding:"required"`
}

// PutSubscription registers or refreshes a browser push subscription for
// the calling student.
func (h *Handler) PutSubscription(c *gin.Context) {
	var req putSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	p := mw.PrincipalFrom(c)
	sub := model.PushSubscription{
		Endpoint:  req.Endpoint,
		P256DH:    req.P256DH,
		Auth:      req.Auth,
		StudentID: p.Student.ID,
	}
	if err := h.store.UpsertSubscription(c.Request.Context(), &sub); err != nil {
		failInternal(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Subscription saved"})
}

type deleteSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

// DeleteSubscription removes one of the caller's push subscriptions.
func (h *Handler) DeleteSubscription(c *gin.Context) {
	var req deleteSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	p := mw.PrincipalFrom(c)
	if err := h.store.DeleteSubscription(c.Request.Context(), req.Endpoint, p.Student.ID); err != nil {
		failInternal(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
