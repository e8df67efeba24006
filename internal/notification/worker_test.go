package notification

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"campus-complaint-backend/internal/db"
	"campus-complaint-backend/internal/model"
)

type capturingMailer struct {
	mu   sync.Mutex
	sent []string
	to   []string
	fail bool
}

func (m *capturingMailer) Send(to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return assert.AnError
	}
	m.to = append(m.to, to)
	m.sent = append(m.sent, subject+" "+htmlBody)
	return nil
}

type stubPushSender struct {
	mu       sync.Mutex
	payloads []string
	status   int
	err      error
}

func (s *stubPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.payloads = append(s.payloads, string(payload))
	status := s.status
	if status == 0 {
		status = http.StatusCreated
	}
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(""))}, nil
}

func newWorkerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func seedResolved(t *testing.T, gdb *gorm.DB) model.Complaint {
	t.Helper()
	student := model.Student{
		Name:       "Test Student",
		RollNo:     "BTECH/10001/21",
		Email:      "student@bitmesra.ac.in",
		Mobile:     "9876543210",
		Session:    "2021-25",
		IsVerified: true,
	}
	require.NoError(t, gdb.Create(&student).Error)

	c := model.Complaint{
		StudentID:   student.ID,
		Type:        model.TypeCollege,
		SubType:     "Academic",
		Description: "projector broken in LH-2",
		Status:      model.StatusResolved,
		Remarks:     "replaced the projector",
	}
	require.NoError(t, gdb.Create(&c).Error)
	return c
}

func TestWorkerSendsResolutionMail(t *testing.T) {
	gdb := newWorkerTestDB(t)
	c := seedResolved(t, gdb)

	mail := &capturingMailer{}
	wp := NewWorkerPool(1, gdb, nil, mail)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	wp.Dispatch(c.ID)

	assert.Eventually(t, func() bool {
		mail.mu.Lock()
		defer mail.mu.Unlock()
		return len(mail.to) == 1
	}, 2*time.Second, 10*time.Millisecond)

	mail.mu.Lock()
	defer mail.mu.Unlock()
	assert.Equal(t, "student@bitmesra.ac.in", mail.to[0])
	assert.Contains(t, mail.sent[0], c.Token)
	assert.Contains(t, mail.sent[0], "replaced the projector")
}

func TestWorkerSendsPushToAllSubscriptions(t *testing.T) {
	gdb := newWorkerTestDB(t)
	c := seedResolved(t, gdb)

	subs := []model.PushSubscription{
		{Endpoint: "https://push.example/a", P256DH: "k1", Auth: "a1", StudentID: c.StudentID},
		{Endpoint: "https://push.example/b", P256DH: "k2", Auth: "a2", StudentID: c.StudentID},
	}
	for _, s := range subs {
		require.NoError(t, gdb.Create(&s).Error)
	}

	push := &stubPushSender{}
	wp := NewWorkerPool(1, gdb, &webpush.Options{Subscriber: "mailto:admin@bitmesra.ac.in"}, nil)
	wp.SetPushSender(push)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	wp.Dispatch(c.ID)

	assert.Eventually(t, func() bool {
		push.mu.Lock()
		defer push.mu.Unlock()
		return len(push.payloads) == 2
	}, 2*time.Second, 10*time.Millisecond)

	push.mu.Lock()
	defer push.mu.Unlock()
	for _, p := range push.payloads {
		assert.Contains(t, p, c.Token)
	}
}

func TestWorkerDeletesExpiredSubscription(t *testing.T) {
	gdb := newWorkerTestDB(t)
	c := seedResolved(t, gdb)

	sub := model.PushSubscription{Endpoint: "https://push.example/gone", P256DH: "k", Auth: "a", StudentID: c.StudentID}
	require.NoError(t, gdb.Create(&sub).Error)

	push := &stubPushSender{status: http.StatusGone}
	wp := NewWorkerPool(1, gdb, &webpush.Options{}, nil)
	wp.SetPushSender(push)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	wp.Dispatch(c.ID)

	assert.Eventually(t, func() bool {
		var count int64
		gdb.Model(&model.PushSubscription{}).Count(&count)
		return count == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDispatchDoesNotBlockWhenQueueFull(t *testing.T) {
	gdb := newWorkerTestDB(t)
	wp := NewWorkerPool(1, gdb, nil, nil)

	// Pool never started, so the buffer fills and further dispatches drop.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			wp.Dispatch(uint(i))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatch blocked on a full queue")
	}
}
