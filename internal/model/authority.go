package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Designation is an authority's role title. It determines which complaints
// the account is routed and shown.
type Designation string

const (
	DesignationHostelClerk Designation = "Hostel Clerk"
	DesignationWarden      Designation = "Warden"
	DesignationNetworkDept Designation = "Network Department"
	DesignationOther       Designation = "Other"
)

// DepartmentNetwork is the only department value in use. It is derived from
// the designation, never supplied by the client.
const DepartmentNetwork = "Network"

// Authority is an account that triages and resolves complaints. Its routing
// scope is fully determined by (Designation, Department, HostelNo).
type Authority struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Name         string      `gorm:"size:50;not null" json:"name"`
	Email        string      `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Mobile       string      `gorm:"size:16;not null" json:"mobile"`
	Designation  Designation `gorm:"size:32;not null" json:"designation"`
	Department   string      `gorm:"size:16" json:"department,omitempty"`
	HostelNo     *int        `json:"hostelNo,omitempty"`
	PasswordHash string      `gorm:"size:60;not null" json:"-"`
	IsVerified   bool        `gorm:"not null;default:false" json:"isVerified"`

	Verification  OTPState `gorm:"embedded;embeddedPrefix:verification_" json:"-"`
	PasswordReset OTPState `gorm:"embedded;embeddedPrefix:reset_" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HostelScoped reports whether the designation carries a hostel assignment.
func (d Designation) HostelScoped() bool {
	return d == DesignationHostelClerk || d == DesignationWarden
}

// BeforeSave derives the department from the designation and keeps the
// hostel assignment consistent with it: Network Department accounts never
// carry a hostel number.
func (a *Authority) BeforeSave(tx *gorm.DB) error {
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	if a.Designation == DesignationNetworkDept {
		a.Department = DepartmentNetwork
		a.HostelNo = nil
	} else {
		a.Department = ""
	}
	return nil
}
