package model

import "time"

// PushSubscription holds a browser push subscription registered by a
// student. Resolution notices fan out to every subscription of the owning
// student.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey" json:"endpoint"`
	P256DH    string    `gorm:"column:p256dh;not null" json:"p256dh"`
	Auth      string    `gorm:"not null" json:"auth"`
	StudentID uint      `gorm:"index;not null" json:"-"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`

	// Associations
	Student Student `json:"-"`
}
