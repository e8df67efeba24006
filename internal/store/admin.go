package store

import (
	"context"

	"campus-complaint-backend/internal/model"
)

// SystemStats aggregates the counters for the admin dashboard.
func (s *gormStore) SystemStats(ctx context.Context) (*Stats, error) {
	db := s.db.WithContext(ctx)
	var stats Stats

	counts := []func() error{
		func() error { return db.Model(&model.Student{}).Count(&stats.Students).Error },
		func() error { return db.Model(&model.Authority{}).Count(&stats.Authorities).Error },
		func() error { return db.Model(&model.Complaint{}).Count(&stats.Complaints).Error },
		func() error {
			return db.Model(&model.Complaint{}).Where("status = ?", model.StatusPending).Count(&stats.Pending).Error
		},
		func() error {
			return db.Model(&model.Complaint{}).Where("status = ?", model.StatusResolved).Count(&stats.Resolved).Error
		},
		func() error { return db.Model(&model.Feedback{}).Count(&stats.Feedback).Error },
	}
	for _, count := range counts {
		if err := count(); err != nil {
			return nil, err
		}
	}
	return &stats, nil
}

// AllUsers returns every student and authority account.
func (s *gormStore) AllUsers(ctx context.Context) ([]model.Student, []model.Authority, error) {
	var students []model.Student
	if err := s.db.WithContext(ctx).Find(&students).Error; err != nil {
		return nil, nil, err
	}
	var authorities []model.Authority
	if err := s.db.WithContext(ctx).Find(&authorities).Error; err != nil {
		return nil, nil, err
	}
	return students, authorities, nil
}
