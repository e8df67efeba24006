package store

import (
	"context"
	"math"

	"campus-complaint-backend/internal/model"
)

func (s *gormStore) CreateFeedback(ctx context.Context, f *model.Feedback) error {
	return s.db.WithContext(ctx).Create(f).Error
}

// AllFeedback returns every feedback record newest first, plus the average
// rating rounded to one decimal (0 when there is no feedback yet).
func (s *gormStore) AllFeedback(ctx context.Context) ([]model.Feedback, float64, error) {
	var feedback []model.Feedback
	err := s.db.WithContext(ctx).
		Preload("Student").Preload("Complaint").
		Order("created_at DESC").
		Find(&feedback).Error
	if err != nil {
		return nil, 0, err
	}

	var sum int
	for _, f := range feedback {
		sum += f.Rating
	}
	var avg float64
	if len(feedback) > 0 {
		avg = math.Round(float64(sum)/float64(len(feedback))*10) / 10
	}
	return feedback, avg, nil
}

func (s *gormStore) StudentFeedback(ctx context.Context, studentID uint) ([]model.Feedback, error) {
	var feedback []model.Feedback
	err := s.db.WithContext(ctx).
		Preload("Complaint").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&feedback).Error
	return feedback, err
}
