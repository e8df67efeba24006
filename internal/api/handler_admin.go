package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SystemStats returns the aggregate counts for the admin dashboard.
func (h *Handler) SystemStats(c *gin.Context) {
	stats, err := h.store.SystemStats(c.Request.Context())
	if err != nil {
		failInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

// AllUsers lists every student and authority account.
func (h *Handler) AllUsers(c *gin.Context) {
	students, authorities, err := h.store.AllUsers(c.Request.Context())
	if err != nil {
		failInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"students":    students,
		"authorities": authorities,
	})
}

type adminUpdateUserRequest struct {
	Name     string `json:"name" binding:"omitempty,max=50"`
	Mobile   string `json:"mobile" binding:"omitempty,inmobile"`
	HostelNo *int   `json:"hostelNo" binding:"omitempty,min=1,max=13"`
	RoomNo   string `json:"roomNo" binding:"omitempty,max=16"`
}

// UpdateUser patches mutable fields of a student or authority account. The
// id is tried as a student first, then as an authority.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req adminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	if student, err := h.store.StudentByID(ctx, uint(id)); err == nil {
		if req.Name != "" {
			student.Name = req.Name
		}
		if req.Mobile != "" {
			student.Mobile = req.Mobile
		}
		if req.HostelNo != nil {
			student.HostelNo = req.HostelNo
		}
		if req.RoomNo != "" {
			student.RoomNo = req.RoomNo
		}
		if err := h.store.SaveStudent(ctx, student); err != nil {
			failInternal(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "User updated", "user": student})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		failInternal(c, err)
		return
	}

	authority, err := h.store.AuthorityByID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, "User not found")
			return
		}
		failInternal(c, err)
		return
	}
	if req.Name != "" {
		authority.Name = req.Name
	}
	if req.Mobile != "" {
		authority.Mobile = req.Mobile
	}
	if err := h.store.SaveAuthority(ctx, authority); err != nil {
		failInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User updated", "user": authority})
}

// DeleteUser removes a student or authority account. Deleting a student
// cascades to its complaints, feedback and push subscriptions.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.StudentByID(ctx, uint(id)); err == nil {
		if err := h.store.DeleteStudentCascade(ctx, uint(id)); err != nil {
			failInternal(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		failInternal(c, err)
		return
	}

	if _, err := h.store.AuthorityByID(ctx, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, "User not found")
			return
		}
		failInternal(c, err)
		return
	}
	if err := h.store.DeleteAuthority(ctx, uint(id)); err != nil {
		failInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted"})
}
