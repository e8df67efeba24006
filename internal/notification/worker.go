package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"campus-complaint-backend/internal/mailer"
	"campus-complaint-backend/internal/metrics"
	"campus-complaint-backend/internal/model"
)

// PushSender defines the interface for sending a web push notification.
type PushSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is the real PushSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool consumes complaint-resolution jobs and fans the notice out to
// the owning student over email and web push. Delivery is best effort and
// decoupled from the request that triggered it.
type WorkerPool struct {
	size    int
	jobs    chan uint
	db      *gorm.DB
	webpush *webpush.Options
	mail    mailer.Sender
	push    PushSender
}

// NewWorkerPool creates a new worker pool. mail may be nil when SMTP is
// disabled; webpushOptions may be nil when no VAPID keys are configured.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options, mail mailer.Sender) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan uint, size*4),
		db:      db,
		webpush: webpushOptions,
		mail:    mail,
		push:    &WebPushSender{},
	}
}

// SetPushSender replaces the push transport. Used by tests.
func (wp *WorkerPool) SetPushSender(p PushSender) {
	wp.push = p
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("notification worker %d started", id)
	for {
		select {
		case complaintID := <-wp.jobs:
			wp.notifyResolution(ctx, complaintID)
		case <-ctx.Done():
			log.Printf("notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch enqueues a resolution job. It never blocks the caller: if the
// queue is full the job is dropped and logged, since the status change
// itself has already been persisted.
func (wp *WorkerPool) Dispatch(complaintID uint) {
	select {
	case wp.jobs <- complaintID:
	default:
		metrics.NotificationsFailed.Inc()
		log.Printf("notification queue full, dropping job for complaint %d", complaintID)
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan uint {
	return wp.jobs
}

func (wp *WorkerPool) notifyResolution(ctx context.Context, complaintID uint) {
	var c model.Complaint
	if err := wp.db.WithContext(ctx).Preload("Student").First(&c, complaintID).Error; err != nil {
		log.Printf("error fetching complaint %d for notification: %v", complaintID, err)
		return
	}

	if wp.mail != nil {
		subject := fmt.Sprintf("Your Complaint %s has been resolved", c.Token)
		if err := wp.mail.Send(c.Student.Email, subject, mailer.ResolutionBody(c.Token, c.Remarks)); err != nil {
			metrics.NotificationsFailed.Inc()
			log.Printf("error mailing resolution of %s to %s: %v", c.Token, c.Student.Email, err)
		} else {
			metrics.NotificationsSent.Inc()
		}
	}

	if wp.webpush == nil {
		return
	}

	var subs []model.PushSubscription
	if err := wp.db.WithContext(ctx).Where("student_id = ?", c.StudentID).Find(&subs).Error; err != nil {
		log.Printf("error fetching subscriptions for student %d: %v", c.StudentID, err)
		return
	}

	payload := []byte(fmt.Sprintf("Complaint %s has been resolved.", c.Token))
	for _, sub := range subs {
		wp.sendPush(ctx, sub, payload)
	}
}

func (wp *WorkerPool) sendPush(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.push.Send(payload, wpSub, wp.webpush)
	if err != nil {
		metrics.NotificationsFailed.Inc()
		log.Printf("error sending push to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()
	metrics.NotificationsSent.Inc()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		log.Printf("subscription %s is expired, deleting", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
