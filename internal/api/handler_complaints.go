package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"campus-complaint-backend/internal/auth"
	"campus-complaint-backend/internal/metrics"
	"campus-complaint-backend/internal/model"
	"campus-complaint-backend/internal/mw"
	"campus-complaint-backend/internal/store"
)

type createComplaintRequest struct {
	Type        model.ComplaintType `json:"type" binding:"required,oneof=Hostel College Network"`
	SubType     string              `json:"subType" binding:"required,oneof=Electrical Plumbing Furniture Internet Network Cleanliness Fan Socket Bulb 'Window Glass' Chair Other"`
	Description string              `json:"description" binding:"required,max=500"`
	HostelNo    *int                `json:"hostelNo" binding:"omitempty,min=1,max=13"`
	RoomNo      string              `json:"roomNo" binding:"omitempty,max=16"`
}

// CreateComplaint files a complaint for the calling student and assigns it
// to the responsible authority when one exists.
func (h *Handler) CreateComplaint(c *gin.Context) {
	var req createComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if model.NetworkRelated(req.Type, req.SubType) {
		if req.HostelNo != nil || req.RoomNo != "" {
			fail(c, http.StatusBadRequest, "Network complaints must not carry hostel or room fields")
			return
		}
	} else if req.Type == model.TypeHostel {
		if req.HostelNo == nil || req.RoomNo == "" {
			fail(c, http.StatusBadRequest, "Hostel complaints require hostelNo and roomNo")
			return
		}
	}

	p := mw.PrincipalFrom(c)
	complaint := model.Complaint{
		StudentID:   p.Student.ID,
		Type:        req.Type,
		SubType:     req.SubType,
		Description: req.Description,
		HostelNo:    req.HostelNo,
		RoomNo:      req.RoomNo,
		Status:      model.StatusPending,
	}

	ctx := c.Request.Context()
	if err := h.store.CreateComplaint(ctx, &complaint); err != nil {
		failInternal(c, err)
		return
	}
	metrics.ComplaintsFiled.Inc()

	// Re-read so the response carries the owner and assignee summaries.
	created, err := h.store.ComplaintByID(ctx, complaint.ID)
	if err != nil {
		failInternal(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Complaint registered",
		"complaint": viewOf(created),
	})
}

// StudentComplaints lists the caller's own complaints, newest first.
func (h *Handler) StudentComplaints(c *gin.Context) {
	p := mw.PrincipalFrom(c)
	complaints, err := h.store.StudentComplaints(c.Request.Context(), p.Student.ID)
	if err != nil {
		failInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "complaints": viewsOf(complaints)})
}

// AuthorityComplaints lists the caller's queue: complaints assigned to it
// plus the slice of the backlog its routing scope covers.
func (h *Handler) AuthorityComplaints(c *gin.Context) {
	p := mw.PrincipalFrom(c)
	complaints, err := h.store.AuthorityComplaints(c.Request.Context(), p.Authority)
	if err != nil {
		failInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "complaints": viewsOf(complaints)})
}

// AdminComplaints lists every complaint, with optional equality filters.
func (h *Handler) AdminComplaints(c *gin.Context) {
	var filter store.AdminComplaintFilter
	filter.Type = c.Query("type")
	filter.Status = c.Query("status")

	if raw := c.Query("hostelNo"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 13 {
			fail(c, http.StatusBadRequest, "hostelNo must be a number between 1 and 13")
			return
		}
		filter.HostelNo = &n
	}
	if raw := c.Query("assigned"); raw != "" {
		assigned, err := strconv.ParseBool(raw)
		if err != nil {
			fail(c, http.StatusBadRequest, "assigned must be true or false")
			return
		}
		filter.Assigned = &assigned
	}

	complaints, err := h.store.AdminComplaints(c.Request.Context(), filter)
	if err != nil {
		failInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "complaints": viewsOf(complaints)})
}

// ComplaintByToken fetches a single complaint by its shareable token.
// Students may only look up their own.
func (h *Handler) ComplaintByToken(c *gin.Context) {
	complaint, err := h.store.ComplaintByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, "Complaint not found")
			return
		}
		failInternal(c, err)
		return
	}

	p := mw.PrincipalFrom(c)
	if p.Role == auth.RoleStudent && complaint.StudentID != p.Student.ID {
		fail(c, http.StatusForbidden, "Not authorized to view this complaint")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "complaint": viewOf(complaint)})
}

type updateStatusRequest struct {
	Status  model.ComplaintStatus `json:"status" binding:"required,oneof=Pending 'In Progress' Resolved Rejected"`
	Remarks string                `json:"remarks" binding:"omitempty,max=200"`
}

// UpdateStatus moves a complaint to a new workflow state. A move to
// Resolved enqueues the resolution notification after the write commits.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid complaint id")
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	p := mw.PrincipalFrom(c)
	var actingAuthorityID *uint
	if p.Role == auth.RoleAuthority {
		actingAuthorityID = &p.Authority.ID
	}

	updated, err := h.store.UpdateComplaintStatus(c.Request.Context(), uint(id), req.Status, req.Remarks, actingAuthorityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, "Complaint not found")
			return
		}
		failInternal(c, err)
		return
	}

	if req.Status == model.StatusResolved {
		metrics.ComplaintsResolved.Inc()
		h.pool.Dispatch(updated.ID)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Complaint updated",
		"complaint": viewOf(updated),
	})
}
