package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"campus-complaint-backend/internal/auth"
	"campus-complaint-backend/internal/model"
	"campus-complaint-backend/internal/mw"
)

type studentSignupRequest struct {
	Name       string `json:"name" binding:"required,max=50"`
	RollNo     string `json:"rollNo" binding:"required,max=20"`
	Email      string `json:"email" binding:"required,email,campusmail"`
	Mobile     string `json:"mobile" binding:"required,inmobile"`
	Session    string `json:"session" binding:"required,acadsession"`
	Department string `json:"department" binding:"required,max=32"`
	Password   string `json:"password" binding:"required,min=6,max=72"`
	HostelNo   *int   `json:"hostelNo" binding:"omitempty,min=1,max=13"`
	RoomNo     string `json:"roomNo" binding:"omitempty,max=16"`
}

// StudentSignup registers an unverified student account and mails the
// verification code.
func (h *Handler) StudentSignup(c *gin.Context) {
	var req studentSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	exists, err := h.store.StudentExists(ctx, req.Email, req.RollNo)
	if err != nil {
		failInternal(c, err)
		return
	}
	if exists {
		fail(c, http.StatusBadRequest, "A student with this email or roll number is already registered")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		failInternal(c, err)
		return
	}
	otp, err := auth.NewOTP()
	if err != nil {
		failInternal(c, err)
		return
	}

	student := model.Student{
		Name:         req.Name,
		RollNo:       req.RollNo,
		Email:        req.Email,
		Mobile:       req.Mobile,
		Session:      req.Session,
		Department:   req.Department,
		PasswordHash: hash,
		HostelNo:     req.HostelNo,
		RoomNo:       req.RoomNo,
	}
	student.Verification.Set(otp, time.Now(), h.cfg.Auth.OTPTTL)

	if err := h.store.CreateStudent(ctx, &student); err != nil {
		failInternal(c, err)
		return
	}
	h.sendOTP(student.Email, otp)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Signup successful. An OTP has been sent to your email",
	})
}

type verifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6"`
}

// VerifyEmail confirms a student's mailbox and logs the account in.
func (h *Handler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	student, err := h.store.StudentByEmail(ctx, req.Email)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid or expired OTP")
		return
	}
	if !student.Verification.Matches(req.OTP, time.Now()) {
		fail(c, http.StatusBadRequest, "Invalid or expired OTP")
		return
	}

	student.IsVerified = true
	student.Verification.Clear()
	if err := h.store.SaveStudent(ctx, student); err != nil {
		failInternal(c, err)
		return
	}

	h.respondWithStudentToken(c, student, "Email verified")
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// StudentLogin authenticates a verified student.
func (h *Handler) StudentLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	student, err := h.store.StudentByEmail(c.Request.Context(), req.Email)
	if err != nil || !auth.CheckPassword(student.PasswordHash, req.Password) {
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !student.IsVerified {
		fail(c, http.StatusUnauthorized, "Email is not verified")
		return
	}

	h.respondWithStudentToken(c, student, "Login successful")
}

func (h *Handler) respondWithStudentToken(c *gin.Context, student *model.Student, message string) {
	token, err := h.tokens.IssueStudent(student)
	if err != nil {
		failInternal(c, err)
		return
	}
	h.setAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"token":   token,
		"role":    auth.RoleStudent,
		"user":    student,
	})
}

type authoritySignupRequest struct {
	Name        string            `json:"name" binding:"required,max=50"`
	Email       string            `json:"email" binding:"required,email"`
	Mobile      string            `json:"mobile" binding:"required,inmobile"`
	Designation model.Designation `json:"designation" binding:"required,oneof='Hostel Clerk' Warden 'Network Department' Other"`
	HostelNo    *int              `json:"hostelNo" binding:"omitempty,min=1,max=13"`
	Password    string            `json:"password" binding:"required,min=6,max=72"`
}

// AuthoritySignup registers an unverified authority account. The routing
// key must be unambiguous: hostel-scoped designations need a free hostel,
// and only one Network Department account may exist.
func (h *Handler) AuthoritySignup(c *gin.Context) {
	var req authoritySignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.Designation.HostelScoped() && req.HostelNo == nil {
		fail(c, http.StatusBadRequest, "hostelNo is required for this designation")
		return
	}
	if req.Designation == model.DesignationNetworkDept && req.HostelNo != nil {
		fail(c, http.StatusBadRequest, "hostelNo is not allowed for the Network Department")
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.AuthorityByEmail(ctx, req.Email); err == nil {
		fail(c, http.StatusBadRequest, "An authority with this email is already registered")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		failInternal(c, err)
		return
	}

	// The assignment resolver expects at most one account per routing key.
	switch {
	case req.Designation == model.DesignationNetworkDept:
		if _, err := h.store.NetworkAuthority(ctx); err == nil {
			fail(c, http.StatusBadRequest, "A Network Department authority is already registered")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			failInternal(c, err)
			return
		}
	case req.Designation == model.DesignationHostelClerk:
		if _, err := h.store.HostelClerk(ctx, *req.HostelNo); err == nil {
			fail(c, http.StatusBadRequest, "A clerk for this hostel is already registered")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			failInternal(c, err)
			return
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		failInternal(c, err)
		return
	}
	otp, err := auth.NewOTP()
	if err != nil {
		failInternal(c, err)
		return
	}

	authority := model.Authority{
		Name:         req.Name,
		Email:        req.Email,
		Mobile:       req.Mobile,
		Designation:  req.Designation,
		HostelNo:     req.HostelNo,
		PasswordHash: hash,
	}
	authority.Verification.Set(otp, time.Now(), h.cfg.Auth.OTPTTL)

	if err := h.store.CreateAuthority(ctx, &authority); err != nil {
		failInternal(c, err)
		return
	}
	h.sendOTP(authority.Email, otp)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Signup successful. An OTP has been sent to your email",
	})
}

// VerifyAuthorityEmail confirms an authority's mailbox and logs it in.
func (h *Handler) VerifyAuthorityEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	authority, err := h.store.AuthorityByEmail(ctx, req.Email)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid or expired OTP")
		return
	}
	if !authority.Verification.Matches(req.OTP, time.Now()) {
		fail(c, http.StatusBadRequest, "Invalid or expired OTP")
		return
	}

	authority.IsVerified = true
	authority.Verification.Clear()
	if err := h.store.SaveAuthority(ctx, authority); err != nil {
		failInternal(c, err)
		return
	}

	h.respondWithAuthorityToken(c, authority, "Email verified")
}

// AuthorityLogin authenticates a verified authority.
func (h *Handler) AuthorityLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	authority, err := h.store.AuthorityByEmail(c.Request.Context(), req.Email)
	if err != nil || !auth.CheckPassword(authority.PasswordHash, req.Password) {
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !authority.IsVerified {
		fail(c, http.StatusUnauthorized, "Email is not verified")
		return
	}

	h.respondWithAuthorityToken(c, authority, "Login successful")
}

func (h *Handler) respondWithAuthorityToken(c *gin.Context, authority *model.Authority, message string) {
	token, err := h.tokens.IssueAuthority(authority)
	if err != nil {
		failInternal(c, err)
		return
	}
	h.setAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"token":   token,
		"role":    auth.RoleAuthority,
		"user":    authority,
	})
}

// AdminLogin authenticates an admin. Admin accounts are seeded, not signed
// up, so there is no verification gate.
func (h *Handler) AdminLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	admin, err := h.store.AdminByEmail(c.Request.Context(), req.Email)
	if err != nil || !auth.CheckPassword(admin.PasswordHash, req.Password) {
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.tokens.IssueAdmin(admin)
	if err != nil {
		failInternal(c, err)
		return
	}
	h.setAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"role":    auth.RoleAdmin,
		"user":    admin,
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=student authority admin"`
}

// ForgotPassword stamps a reset OTP on the account and mails it.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	otp, err := auth.NewOTP()
	if err != nil {
		failInternal(c, err)
		return
	}
	now := time.Now()

	switch req.Role {
	case auth.RoleStudent:
		student, err := h.store.StudentByEmail(ctx, req.Email)
		if err != nil {
			fail(c, http.StatusNotFound, "User not found")
			return
		}
		student.PasswordReset.Set(otp, now, h.cfg.Auth.OTPTTL)
		if err := h.store.SaveStudent(ctx, student); err != nil {
			failInternal(c, err)
			return
		}
	case auth.RoleAuthority:
		authority, err := h.store.AuthorityByEmail(ctx, req.Email)
		if err != nil {
			fail(c, http.StatusNotFound, "User not found")
			return
		}
		authority.PasswordReset.Set(otp, now, h.cfg.Auth.OTPTTL)
		if err := h.store.SaveAuthority(ctx, authority); err != nil {
			failInternal(c, err)
			return
		}
	case auth.RoleAdmin:
		admin, err := h.store.AdminByEmail(ctx, req.Email)
		if err != nil {
			fail(c, http.StatusNotFound, "User not found")
			return
		}
		admin.PasswordReset.Set(otp, now, h.cfg.Auth.OTPTTL)
		if err := h.store.SaveAdmin(ctx, admin); err != nil {
			failInternal(c, err)
			return
		}
	}

	h.sendOTP(req.Email, otp)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "An OTP has been sent to your email",
	})
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Role        string `json:"role" binding:"required,oneof=student authority admin"`
	OTP         string `json:"otp" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=6,max=72"`
}

// ResetPassword exchanges a valid reset OTP for a new password.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		failInternal(c, err)
		return
	}

	ctx := c.Request.Context()
	now := time.Now()

	switch req.Role {
	case auth.RoleStudent:
		student, err := h.store.StudentByEmail(ctx, req.Email)
		if err != nil || !student.PasswordReset.Matches(req.OTP, now) {
			fail(c, http.StatusBadRequest, "Invalid or expired OTP")
			return
		}
		student.PasswordHash = hash
		student.PasswordReset.Clear()
		if err := h.store.SaveStudent(ctx, student); err != nil {
			failInternal(c, err)
			return
		}
	case auth.RoleAuthority:
		authority, err := h.store.AuthorityByEmail(ctx, req.Email)
		if err != nil || !authority.PasswordReset.Matches(req.OTP, now) {
			fail(c, http.StatusBadRequest, "Invalid or expired OTP")
			return
		}
		authority.PasswordHash = hash
		authority.PasswordReset.Clear()
		if err := h.store.SaveAuthority(ctx, authority); err != nil {
			failInternal(c, err)
			return
		}
	case auth.RoleAdmin:
		admin, err := h.store.AdminByEmail(ctx, req.Email)
		if err != nil || !admin.PasswordReset.Matches(req.OTP, now) {
			fail(c, http.StatusBadRequest, "Invalid or expired OTP")
			return
		}
		admin.PasswordHash = hash
		admin.PasswordReset.Clear()
		if err := h.store.SaveAdmin(ctx, admin); err != nil {
			failInternal(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password has been reset",
	})
}

// Logout clears the auth cookie. Bearer tokens simply expire.
func (h *Handler) Logout(c *gin.Context) {
	clearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
}

// CheckAuth returns the fresh account snapshot for the presented token.
func (h *Handler) CheckAuth(c *gin.Context) {
	p := mw.PrincipalFrom(c)

	var user any
	switch p.Role {
	case auth.RoleStudent:
		user = p.Student
	case auth.RoleAuthority:
		user = p.Authority
	case auth.RoleAdmin:
		user = p.Admin
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"role":    p.Role,
		"user":    user,
	})
}
