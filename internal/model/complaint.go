package model

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ComplaintType classifies what a complaint is about.
type ComplaintType string

const (
	TypeHostel  ComplaintType = "Hostel"
	TypeCollege ComplaintType = "College"
	TypeNetwork ComplaintType = "Network"
)

// ComplaintStatus is the workflow state of a complaint.
type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "Pending"
	StatusInProgress ComplaintStatus = "In Progress"
	StatusResolved   ComplaintStatus = "Resolved"
	StatusRejected   ComplaintStatus = "Rejected"
)

// SubTypes is the bounded set of problem categories. The set overlaps
// across complaint types; Network/Internet sub-types route to the network
// department regardless of the declared type.
var SubTypes = []string{
	"Electrical", "Plumbing", "Furniture", "Internet", "Network",
	"Cleanliness", "Fan", "Socket", "Bulb", "Window Glass", "Chair", "Other",
}

// Complaint is the central record. Token is the human-shareable identifier,
// distinct from the storage ID, generated once at first persistence.
type Complaint struct {
	ID           uint            `gorm:"primaryKey" json:"-"`
	Token        string          `gorm:"size:32;uniqueIndex;not null" json:"token"`
	StudentID    uint            `gorm:"index;not null" json:"-"`
	Type         ComplaintType   `gorm:"size:16;not null" json:"type"`
	HostelNo     *int            `json:"hostelNo,omitempty"`
	RoomNo       string          `gorm:"size:16" json:"roomNo,omitempty"`
	SubType      string          `gorm:"size:32;not null" json:"subType"`
	Description  string          `gorm:"size:500;not null" json:"description"`
	Status       ComplaintStatus `gorm:"size:16;not null;default:Pending" json:"status"`
	AssignedToID *uint           `gorm:"index" json:"-"`
	Remarks      string          `gorm:"size:200" json:"remarks,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Associations
	Student    Student    `json:"-"`
	AssignedTo *Authority `gorm:"foreignKey:AssignedToID" json:"-"`
}

// NetworkRelated reports whether the request belongs to the network
// department: either by declared type or by sub-type.
func NetworkRelated(t ComplaintType, subType string) bool {
	return t == TypeNetwork || subType == "Network" || subType == "Internet"
}

// NetworkRelated reports whether this complaint routes to the network
// department.
func (c *Complaint) NetworkRelated() bool {
	return NetworkRelated(c.Type, c.SubType)
}

// BeforeCreate stamps the token on first persistence.
func (c *Complaint) BeforeCreate(tx *gorm.DB) error {
	if c.Token == "" {
		c.Token = NewComplaintToken(time.Now())
	}
	return nil
}

// BeforeSave enforces the field-consistency invariant at the persistence
// boundary: network complaints never carry hostel or room information,
// whatever was submitted. Validation rejects such input earlier; this is
// the second enforcement point.
func (c *Complaint) BeforeSave(tx *gorm.DB) error {
	if c.NetworkRelated() {
		c.HostelNo = nil
		c.RoomNo = ""
	}
	return nil
}

// NewComplaintToken builds a token of the form CMP-<time>-<rand>: a base36
// millisecond timestamp plus three random bytes, unique in practice without
// any coordination.
func NewComplaintToken(now time.Time) string {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand only fails if the OS entropy source is broken.
		panic(fmt.Sprintf("complaint token randomness unavailable: %v", err))
	}
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	return fmt.Sprintf("CMP-%s-%s", ts, strings.ToUpper(hex.EncodeToString(b)))
}
