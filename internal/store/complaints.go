package store

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"campus-complaint-backend/internal/model"
	"campus-complaint-backend/internal/routing"
)

// CreateComplaint resolves the routing key and persists the complaint. A
// missing match is not an error: the complaint is stored unassigned and
// awaits manual triage.
func (s *gormStore) CreateComplaint(ctx context.Context, c *model.Complaint) error {
	switch d := routing.Resolve(c.Type, c.SubType, c.HostelNo); d.Target {
	case routing.TargetNetworkDept:
		a, err := s.NetworkAuthority(ctx)
		switch {
		case err == nil:
			c.AssignedToID = &a.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			log.Printf("no network authority registered; complaint stays unassigned")
		default:
			return err
		}
	case routing.TargetHostelClerk:
		a, err := s.HostelClerk(ctx, d.HostelNo)
		switch {
		case err == nil:
			c.AssignedToID = &a.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			log.Printf("no clerk registered for hostel %d; complaint stays unassigned", d.HostelNo)
		default:
			return err
		}
	}

	return s.db.WithContext(ctx).Create(c).Error
}

func (s *gormStore) ComplaintByToken(ctx context.Context, token string) (*model.Complaint, error) {
	var c model.Complaint
	err := s.db.WithContext(ctx).
		Preload("Student").Preload("AssignedTo").
		Where("token = ?", token).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *gormStore) ComplaintByID(ctx context.Context, id uint) (*model.Complaint, error) {
	var c model.Complaint
	err := s.db.WithContext(ctx).
		Preload("Student").Preload("AssignedTo").
		First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// StudentComplaints lists a student's own complaints, newest first.
func (s *gormStore) StudentComplaints(ctx context.Context, studentID uint) ([]model.Complaint, error) {
	var complaints []model.Complaint
	err := s.db.WithContext(ctx).
		Preload("Student").Preload("AssignedTo").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&complaints).Error
	return complaints, err
}

// AuthorityComplaints lists the calling authority's queue. The base scope
// is "assigned to me"; network department and hostel staff additionally
// narrow by complaint kind. Ordered by workflow stage, newest first within
// each stage.
func (s *gormStore) AuthorityComplaints(ctx context.Context, a *model.Authority) ([]model.Complaint, error) {
	q := s.db.WithContext(ctx).
		Preload("Student").Preload("AssignedTo").
		Where("assigned_to_id = ?", a.ID)

	switch {
	case a.Department == model.DepartmentNetwork:
		q = q.Where("type = ? OR sub_type IN ?", model.TypeNetwork, []string{"Network", "Internet"})
	case a.Designation.HostelScoped():
		q = q.Where("type = ?", model.TypeHostel)
	}

	var complaints []model.Complaint
	err := q.Order("status ASC, created_at DESC").Find(&complaints).Error
	return complaints, err
}

// AdminComplaints lists all complaints with optional equality filters. A
// Network type filter also matches complaints carrying the Network
// sub-type.
func (s *gormStore) AdminComplaints(ctx context.Context, f AdminComplaintFilter) ([]model.Complaint, error) {
	q := s.db.WithContext(ctx).Preload("Student").Preload("AssignedTo")

	if f.Type != "" {
		if f.Type == string(model.TypeNetwork) {
			q = q.Where("type = ? OR sub_type = ?", model.TypeNetwork, "Network")
		} else {
			q = q.Where("type = ?", f.Type)
		}
	}
	if f.HostelNo != nil {
		q = q.Where("hostel_no = ?", *f.HostelNo)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Assigned != nil {
		if *f.Assigned {
			q = q.Where("assigned_to_id IS NOT NULL")
		} else {
			q = q.Where("assigned_to_id IS NULL")
		}
	}

	var complaints []model.Complaint
	err := q.Order("status ASC, created_at DESC").Find(&complaints).Error
	return complaints, err
}

// UpdateComplaintStatus persists a status transition. Any status is
// reachable from any state; resolved complaints can be reopened (the
// workflow deliberately has no terminal lock). When the actor is an
// authority, ownership transfers to them.
func (s *gormStore) UpdateComplaintStatus(ctx context.Context, id uint, status model.ComplaintStatus, remarks string, actingAuthorityID *uint) (*model.Complaint, error) {
	var c model.Complaint
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}

	c.Status = status
	c.Remarks = remarks
	if actingAuthorityID != nil {
		c.AssignedToID = actingAuthorityID
	}
	if err := s.db.WithContext(ctx).Save(&c).Error; err != nil {
		return nil, err
	}

	return s.ComplaintByID(ctx, id)
}
