package model

import "time"

// Feedback is a student's one-time rating of a resolved complaint. Records
// are never mutated after creation.
type Feedback struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	StudentID   uint   `gorm:"index;not null" json:"-"`
	ComplaintID uint   `gorm:"index;not null" json:"-"`
	Rating      int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comments    string `gorm:"size:500" json:"comments,omitempty"`

	CreatedAt time.Time `json:"createdAt"`

	// Associations
	Student   Student   `json:"-"`
	Complaint Complaint `json:"-"`
}
