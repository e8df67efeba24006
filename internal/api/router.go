package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"campus-complaint-backend/config"
	"campus-complaint-backend/internal/auth"
	"campus-complaint-backend/internal/mailer"
	"campus-complaint-backend/internal/mw"
	"campus-complaint-backend/internal/notification"
	"campus-complaint-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, tokens *auth.TokenIssuer, mail mailer.Sender, pool *notification.WorkerPool, webpushOptions *webpush.Options) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	handler := NewHandler(s, tokens, mail, pool, webpushOptions, cfg)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	// Stored notice attachments are served as static files.
	r.Static("/uploads", cfg.Uploads.Dir)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(rateLimiter)

	anyRole := mw.Auth(s, tokens)
	student := mw.Auth(s, tokens, auth.RoleStudent)
	authority := mw.Auth(s, tokens, auth.RoleAuthority)
	admin := mw.Auth(s, tokens, auth.RoleAdmin)
	staff := mw.Auth(s, tokens, auth.RoleAuthority, auth.RoleAdmin)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/student-signup", handler.StudentSignup)
		authGroup.POST("/verify-email", handler.VerifyEmail)
		authGroup.POST("/student-login", handler.StudentLogin)
		authGroup.POST("/authority-signup", handler.AuthoritySignup)
		authGroup.POST("/verify-authority-email", handler.VerifyAuthorityEmail)
		authGroup.POST("/authority-login", handler.AuthorityLogin)
		authGroup.POST("/admin-login", handler.AdminLogin)
		authGroup.POST("/forgot-password", handler.ForgotPassword)
		authGroup.POST("/reset-password", handler.ResetPassword)
		authGroup.POST("/logout", handler.Logout)
		authGroup.GET("/check-auth", anyRole, handler.CheckAuth)
	}

	complaints := api.Group("/complaints")
	{
		complaints.POST("", student, handler.CreateComplaint)
		complaints.GET("/student", student, handler.StudentComplaints)
		complaints.GET("/authority", authority, handler.AuthorityComplaints)
		complaints.GET("/admin/all", admin, handler.AdminComplaints)
		complaints.GET("/:token", anyRole, handler.ComplaintByToken)
		complaints.PUT("/:id", staff, handler.UpdateStatus)
	}

	feedback := api.Group("/feedback")
	{
		feedback.POST("", student, handler.CreateFeedback)
		feedback.GET("", admin, handler.AllFeedback)
		feedback.GET("/student", student, handler.StudentFeedback)
	}

	notifications := api.Group("/notifications")
	{
		notifications.POST("", staff, handler.CreateNotice)
		notifications.GET("/:hostel", anyRole, caching, handler.NoticesForHostel)
		notifications.DELETE("/:id", staff, handler.DeleteNotice)
	}

	adminGroup := api.Group("/admin", admin)
	{
		adminGroup.GET("/stats", handler.SystemStats)
		adminGroup.GET("/users", handler.AllUsers)
		adminGroup.PUT("/users/:id", handler.UpdateUser)
		adminGroup.DELETE("/users/:id", handler.DeleteUser)
	}

	students := api.Group("/students", student)
	{
		students.GET("/profile", handler.StudentProfile)
		students.PUT("/profile", handler.UpdateStudentProfile)
		students.PUT("/change-password", handler.ChangeStudentPassword)
	}

	authorityGroup := api.Group("/authority", authority)
	{
		authorityGroup.GET("/profile", handler.AuthorityProfile)
		authorityGroup.PUT("/profile", handler.UpdateAuthorityProfile)
	}

	api.PUT("/subscriptions", student, handler.PutSubscription)
	api.DELETE("/subscriptions", student, handler.DeleteSubscription)
	api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)

	return r
}
