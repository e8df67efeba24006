package model

import "time"

// NoticeScopeAll addresses a notice to every hostel.
const NoticeScopeAll = "all"

// Notice is a broadcast announcement, scoped to one hostel or to "all",
// optionally carrying a stored PDF attachment.
type Notice struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"size:100;not null" json:"title"`
	Message string `gorm:"size:1000;not null" json:"message"`
	Hostel  string `gorm:"size:8;index;not null" json:"hostel"`
	PDFURL  string `gorm:"size:128" json:"pdfUrl,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
