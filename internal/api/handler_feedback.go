package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"campus-complaint-backend/internal/model"
	"campus-complaint-backend/internal/mw"
)

type createFeedbackRequest struct {
	ComplaintToken string `json:"complaintToken" binding:"required"`
	Rating         int    `json:"rating" binding:"required,min=1,max=5"`
	Comments       string `json:"comments" binding:"omitempty,max=500"`
}

// CreateFeedback records a student's rating of one of their complaints.
func (h *Handler) CreateFeedback(c *gin.Context) {
	var req createFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	complaint, err := h.store.ComplaintByToken(ctx, req.ComplaintToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, "Complaint not found")
			return
		}
		failInternal(c, err)
		return
	}

	p := mw.PrincipalFrom(c)
	if complaint.StudentID != p.Student.ID {
		fail(c, http.StatusForbidden, "Feedback can only be left on your own complaints")
		return
	}

	feedback := model.Feedback{
		StudentID:   p.Student.ID,
		ComplaintID: complaint.ID,
		Rating:      req.Rating,
		Comments:    req.Comments,
	}
	if err := h.store.CreateFeedback(ctx, &feedback); err != nil {
		failInternal(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Feedback submitted"})
}

// AllFeedback lists every feedback record with the running average rating.
func (h *Handler) AllFeedback(c *gin.Context) {
	feedback, avg, err := h.store.AllFeedback(c.Request.Context())
	if err != nil {
		failInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"averageRating": avg,
		"feedback":      feedbackViewsOf(feedback),
	})
}

// StudentFeedback lists the caller's own feedback records.
func (h *Handler) StudentFeedback(c *gin.Context) {
	p := mw.PrincipalFrom(c)
	feedback, err := h.store.StudentFeedback(c.Request.Context(), p.Student.ID)
	if err != nil {
		failInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "feedback": feedbackViewsOf(feedback)})
}
