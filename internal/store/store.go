package store

import (
	"context"

	"gorm.io/gorm"

	"campus-complaint-backend/internal/model"
)

// AdminComplaintFilter holds the optional ad hoc filters for the admin
// complaint listing. Nil/empty fields are not applied.
type AdminComplaintFilter struct {
	Type     string
	HostelNo *int
	Status   string
	Assigned *bool
}

// Stats is the aggregate snapshot shown on the admin dashboard.
type Stats struct {
	Students    int64 `json:"totalStudents"`
	Authorities int64 `json:"totalAuthorities"`
	Complaints  int64 `json:"totalComplaints"`
	Pending     int64 `json:"pendingComplaints"`
	Resolved    int64 `json:"resolvedComplaints"`
	Feedback    int64 `json:"totalFeedback"`
}

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	// Students
	CreateStudent(ctx context.Context, s *model.Student) error
	StudentByEmail(ctx context.Context, email string) (*model.Student, error)
	StudentByID(ctx context.Context, id uint) (*model.Student, error)
	StudentExists(ctx context.Context, email, rollNo string) (bool, error)
	SaveStudent(ctx context.Context, s *model.Student) error
	DeleteStudentCascade(ctx context.Context, id uint) error

	// Authorities
	CreateAuthority(ctx context.Context, a *model.Authority) error
	AuthorityByEmail(ctx context.Context, email string) (*model.Authority, error)
	AuthorityByID(ctx context.Context, id uint) (*model.Authority, error)
	SaveAuthority(ctx context.Context, a *model.Authority) error
	DeleteAuthority(ctx context.Context, id uint) error
	NetworkAuthority(ctx context.Context) (*model.Authority, error)
	HostelClerk(ctx context.Context, hostelNo int) (*model.Authority, error)

	// Admins
	AdminByEmail(ctx context.Context, email string) (*model.Admin, error)
	AdminByID(ctx context.Context, id uint) (*model.Admin, error)
	SaveAdmin(ctx context.Context, a *model.Admin) error

	// Complaints
	CreateComplaint(ctx context.Context, c *model.Complaint) error
	ComplaintByToken(ctx context.Context, token string) (*model.Complaint, error)
	ComplaintByID(ctx context.Context, id uint) (*model.Complaint, error)
	StudentComplaints(ctx context.Context, studentID uint) ([]model.Complaint, error)
	AuthorityComplaints(ctx context.Context, a *model.Authority) ([]model.Complaint, error)
	AdminComplaints(ctx context.Context, f AdminComplaintFilter) ([]model.Complaint, error)
	UpdateComplaintStatus(ctx context.Context, id uint, status model.ComplaintStatus, remarks string, actingAuthorityID *uint) (*model.Complaint, error)

	// Feedback
	CreateFeedback(ctx context.Context, f *model.Feedback) error
	AllFeedback(ctx context.Context) ([]model.Feedback, float64, error)
	StudentFeedback(ctx context.Context, studentID uint) ([]model.Feedback, error)

	// Notices
	CreateNotice(ctx context.Context, n *model.Notice) error
	NoticesForHostel(ctx context.Context, hostel string) ([]model.Notice, error)
	NoticeByID(ctx context.Context, id uint) (*model.Notice, error)
	DeleteNotice(ctx context.Context, id uint) error

	// Push subscriptions
	UpsertSubscription(ctx context.Context, sub *model.PushSubscription) error
	DeleteSubscription(ctx context.Context, endpoint string, studentID uint) error
	StudentSubscriptions(ctx context.Context, studentID uint) ([]model.PushSubscription, error)

	// Admin oversight
	SystemStats(ctx context.Context) (*Stats, error)
	AllUsers(ctx context.Context) ([]model.Student, []model.Authority, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying connection for components that manage their own
// queries, such as the notification worker pool.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}
