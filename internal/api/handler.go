package api

import (
	"log"
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"

	"campus-complaint-backend/config"
	"campus-complaint-backend/internal/auth"
	"campus-complaint-backend/internal/mailer"
	"campus-complaint-backend/internal/model"
	"campus-complaint-backend/internal/mw"
	"campus-complaint-backend/internal/notification"
	"campus-complaint-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	tokens  *auth.TokenIssuer
	mail    mailer.Sender
	pool    *notification.WorkerPool
	webpush *webpush.Options
	cfg     *config.Config
}

// NewHandler creates a new API handler. mail may be nil when SMTP is
// disabled; OTP codes are then only logged.
func NewHandler(s store.Store, tokens *auth.TokenIssuer, mail mailer.Sender, pool *notification.WorkerPool, webpushOptions *webpush.Options, cfg *config.Config) *Handler {
	return &Handler{
		store:   s,
		tokens:  tokens,
		mail:    mail,
		pool:    pool,
		webpush: webpushOptions,
		cfg:     cfg,
	}
}

// fail writes the error envelope shared by every endpoint.
func fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "message": message})
}

// failInternal logs the underlying error and returns a generic message.
func failInternal(c *gin.Context, err error) {
	log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	fail(c, http.StatusInternalServerError, "Something went wrong")
}

// sendOTP mails a one-time code, or logs it when mail is disabled so local
// development still works end to end.
func (h *Handler) sendOTP(email, otp string) {
	if h.mail == nil {
		log.Printf("SMTP disabled, OTP for %s: %s", email, otp)
		return
	}
	go func() {
		if err := h.mail.Send(email, "Your verification code", mailer.OTPBody(otp, h.cfg.Auth.OTPTTLMinutes)); err != nil {
			log.Printf("error mailing OTP to %s: %v", email, err)
		}
	}()
}

// setAuthCookie mirrors the token into an HTTP-only cookie so browser
// clients do not have to manage the Authorization header.
func (h *Handler) setAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(mw.CookieName, token, int(h.cfg.Auth.TokenTTL.Seconds()), "/", "", false, true)
}

func clearAuthCookie(c *gin.Context) {
	c.SetCookie(mw.CookieName, "", -1, "/", "", false, true)
}

// studentSummary is the owner block embedded in complaint listings.
type studentSummary struct {
	Name   string `json:"name"`
	RollNo string `json:"rollNo"`
	RoomNo string `json:"roomNo,omitempty"`
}

// assigneeSummary is the handler block embedded in complaint listings.
type assigneeSummary struct {
	Name        string            `json:"name"`
	Designation model.Designation `json:"designation"`
}

// complaintView is the wire shape of a complaint: the record itself plus
// owner and assignee summaries in place of raw ids.
type complaintView struct {
	ID uint `json:"id"`
	model.Complaint
	Student    *studentSummary  `json:"student,omitempty"`
	AssignedTo *assigneeSummary `json:"assignedTo,omitempty"`
}

func viewOf(c *model.Complaint) complaintView {
	v := complaintView{ID: c.ID, Complaint: *c}
	if c.Student.ID != 0 {
		v.Student = &studentSummary{Name: c.Student.Name, RollNo: c.Student.RollNo, RoomNo: c.Student.RoomNo}
	}
	if c.AssignedTo != nil {
		v.AssignedTo = &assigneeSummary{Name: c.AssignedTo.Name, Designation: c.AssignedTo.Designation}
	}
	return v
}

func viewsOf(cs []model.Complaint) []complaintView {
	views := make([]complaintView, 0, len(cs))
	for i := range cs {
		views = append(views, viewOf(&cs[i]))
	}
	return views
}

// feedbackView is the wire shape of a feedback record.
type feedbackView struct {
	ID             uint      `json:"id"`
	ComplaintToken string    `json:"complaintToken,omitempty"`
	Student        string    `json:"student,omitempty"`
	RollNo         string    `json:"rollNo,omitempty"`
	Rating         int       `json:"rating"`
	Comments       string    `json:"comments,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

func feedbackViewsOf(fs []model.Feedback) []feedbackView {
	views := make([]feedbackView, 0, len(fs))
	for _, f := range fs {
		views = append(views, feedbackView{
			ID:             f.ID,
			ComplaintToken: f.Complaint.Token,
			Student:        f.Student.Name,
			RollNo:         f.Student.RollNo,
			Rating:         f.Rating,
			Comments:       f.Comments,
			CreatedAt:      f.CreatedAt,
		})
	}
	return views
}
