package store

import (
	"context"

	"gorm.io/gorm/clause"

	"campus-complaint-backend/internal/model"
)

func (s *gormStore) CreateNotice(ctx context.Context, n *model.Notice) error {
	return s.db.WithContext(ctx).Create(n).Error
}

// NoticesForHostel lists notices addressed to the given hostel or to "all",
// newest first.
func (s *gormStore) NoticesForHostel(ctx context.Context, hostel string) ([]model.Notice, error) {
	var notices []model.Notice
	err := s.db.WithContext(ctx).
		Where("hostel = ? OR hostel = ?", hostel, model.NoticeScopeAll).
		Order("created_at DESC").
		Find(&notices).Error
	return notices, err
}

func (s *gormStore) NoticeByID(ctx context.Context, id uint) (*model.Notice, error) {
	var n model.Notice
	if err := s.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *gormStore) DeleteNotice(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&model.Notice{}, id).Error
}

// UpsertSubscription creates or replaces a push subscription keyed by its
// endpoint, rebinding it to the calling student.
func (s *gormStore) UpsertSubscription(ctx context.Context, sub *model.PushSubscription) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth", "student_id"}),
	}).Create(sub).Error
}

func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string, studentID uint) error {
	return s.db.WithContext(ctx).
		Where("endpoint = ? AND student_id = ?", endpoint, studentID).
		Delete(&model.PushSubscription{}).Error
}

func (s *gormStore) StudentSubscriptions(ctx context.Context, studentID uint) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	err := s.db.WithContext(ctx).Where("student_id = ?", studentID).Find(&subs).Error
	return subs, err
}
