package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Student is an account that files complaints.
type Student struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:50;not null" json:"name"`
	RollNo       string `gorm:"size:20;uniqueIndex;not null" json:"rollNo"`
	Email        string `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Mobile       string `gorm:"size:16;not null" json:"mobile"`
	Session      string `gorm:"size:8;not null" json:"session"`
	Department   string `gorm:"size:32;not null" json:"department"`
	PasswordHash string `gorm:"size:60;not null" json:"-"`
	HostelNo     *int   `json:"hostelNo,omitempty"`
	RoomNo       string `gorm:"size:16" json:"roomNo,omitempty"`
	IsVerified   bool   `gorm:"not null;default:false" json:"isVerified"`

	Verification  OTPState `gorm:"embedded;embeddedPrefix:verification_" json:"-"`
	PasswordReset OTPState `gorm:"embedded;embeddedPrefix:reset_" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeSave normalizes the identifying fields the way they are matched on.
func (s *Student) BeforeSave(tx *gorm.DB) error {
	s.RollNo = strings.ToUpper(strings.TrimSpace(s.RollNo))
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))
	return nil
}
