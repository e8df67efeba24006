package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Admin is an oversight account. Admins are seeded, not signed up, so there
// is no verification state.
type Admin struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"size:254;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:60;not null" json:"-"`

	PasswordReset OTPState `gorm:"embedded;embeddedPrefix:reset_" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Admin) BeforeSave(tx *gorm.DB) error {
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	return nil
}
