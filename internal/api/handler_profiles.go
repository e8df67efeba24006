package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-complaint-backend/internal/auth"
	"campus-complaint-backend/internal/mw"
)

// StudentProfile returns the calling student's account record.
func (h *Handler) StudentProfile(c *gin.Context) {
	p := mw.PrincipalFrom(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": p.Student})
}

type updateStudentProfileRequest struct {
	Name     string `json:"name" binding:"omitempty,max=50"`
	Mobile   string `json:"mobile" binding:"omitempty,inmobile"`
	HostelNo *int   `json:"hostelNo" binding:"omitempty,min=1,max=13"`
	RoomNo   string `json:"roomNo" binding:"omitempty,max=16"`
}

// UpdateStudentProfile patches the caller's mutable profile fields.
// Identity fields (email, roll number, session) are fixed after signup.
func (h *Handler) UpdateStudentProfile(c *gin.Context) {
	var req updateStudentProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	p := mw.PrincipalFrom(c)
	student := p.Student
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

	if err := h.store.SaveStudent(c.Request.Context(), student); err != nil {
		failInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated", "user": student})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6,max=72"`
}

// ChangeStudentPassword rotates the caller's password after checking the
// current one.
func (h *Handler) ChangeStudentPassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	p := mw.PrincipalFrom(c)
	if !auth.CheckPassword(p.Student.PasswordHash, req.CurrentPassword) {
		fail(c, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		failInternal(c, err)
		return
	}
	p.Student.PasswordHash = hash

	if err := h.store.SaveStudent(c.Request.Context(), p.Student); err != nil {
		failInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed"})
}

// AuthorityProfile returns the calling authority's account record.
func (h *Handler) AuthorityProfile(c *gin.Context) {
	p := mw.PrincipalFrom(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": p.Authority})
}

type updateAuthorityProfileRequest struct {
	Name   string `json:"name" binding:"omitempty,max=50"`
	Mobile string `json:"mobile" binding:"omitempty,inmobile"`
}

// UpdateAuthorityProfile patches the caller's name and mobile. The routing
// key fields (designation, department, hostel) are fixed after signup.
func (h *Handler) UpdateAuthorityProfile(c *gin.Context) {
	var req updateAuthorityProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	p := mw.PrincipalFrom(c)
	authority := p.Authority
	if req.Name != "" {
		authority.Name = req.Name
	}
	if req.Mobile != "" {
		authority.Mobile = req.Mobile
	}

	if err := h.store.SaveAuthority(c.Request.Context(), authority); err != nil {
		failInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated", "user": authority})
}
