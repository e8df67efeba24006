package store

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"campus-complaint-backend/internal/model"
)

func (s *gormStore) CreateStudent(ctx context.Context, st *model.Student) error {
	return s.db.WithContext(ctx).Create(st).Error
}

func (s *gormStore) StudentByEmail(ctx context.Context, email string) (*model.Student, error) {
	var st model.Student
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&st).Error
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *gormStore) StudentByID(ctx context.Context, id uint) (*model.Student, error) {
	var st model.Student
	if err := s.db.WithContext(ctx).First(&st, id).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *gormStore) StudentExists(ctx context.Context, email, rollNo string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Student{}).
		Where("email = ? OR roll_no = ?", strings.ToLower(email), strings.ToUpper(rollNo)).
		Count(&count).Error
	return count > 0, err
}

func (s *gormStore) SaveStudent(ctx context.Context, st *model.Student) error {
	return s.db.WithContext(ctx).Save(st).Error
}

// DeleteStudentCascade removes a student together with everything the
// account owns: complaints, feedback and push subscriptions.
func (s *gormStore) DeleteStudentCascade(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", id).Delete(&model.Feedback{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).Delete(&model.Complaint{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).Delete(&model.PushSubscription{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Student{}, id).Error
	})
}

func (s *gormStore) CreateAuthority(ctx context.Context, a *model.Authority) error {
	return s.db.WithContext(ctx).Create(a).Error
}

func (s *gormStore) AuthorityByEmail(ctx context.Context, email string) (*model.Authority, error) {
	var a model.Authority
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *gormStore) AuthorityByID(ctx context.Context, id uint) (*model.Authority, error) {
	var a model.Authority
	if err := s.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *gormStore) SaveAuthority(ctx context.Context, a *model.Authority) error {
	return s.db.WithContext(ctx).Save(a).Error
}

func (s *gormStore) DeleteAuthority(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&model.Authority{}, id).Error
}

// NetworkAuthority returns the network department account. Ordered by
// creation so the result is deterministic if duplicates ever exist.
func (s *gormStore) NetworkAuthority(ctx context.Context) (*model.Authority, error) {
	var a model.Authority
	err := s.db.WithContext(ctx).
		Where("department = ?", model.DepartmentNetwork).
		Order("created_at ASC, id ASC").
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// HostelClerk returns the clerk responsible for the given hostel, with the
// same earliest-created tie-break as NetworkAuthority.
func (s *gormStore) HostelClerk(ctx context.Context, hostelNo int) (*model.Authority, error) {
	var a model.Authority
	err := s.db.WithContext(ctx).
		Where("designation = ? AND hostel_no = ?", model.DesignationHostelClerk, hostelNo).
		Order("created_at ASC, id ASC").
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *gormStore) AdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var a model.Admin
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *gormStore) AdminByID(ctx context.Context, id uint) (*model.Admin, error) {
	var a model.Admin
	if err := s.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *gormStore) SaveAdmin(ctx context.Context, a *model.Admin) error {
	return s.db.WithContext(ctx).Save(a).Error
}
