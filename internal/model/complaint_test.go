package model

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Student{}, &Authority{}, &Complaint{}))
	return db
}

func TestNewComplaintToken_Format(t *testing.T) {
	tok := NewComplaintToken(time.Now())
	assert.Regexp(t, `^CMP-[0-9A-Z]+-[0-9A-F]{6}$`, tok)
}

func TestNewComplaintToken_Unique(t *testing.T) {
	now := time.Now()
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		tok := NewComplaintToken(now)
		_, dup := seen[tok]
		require.False(t, dup, "duplicate token %s after %d generations", tok, i)
		seen[tok] = struct{}{}
	}
}

func TestComplaint_TokenGeneratedOnce(t *testing.T) {
	db := newTestDB(t)

	c := Complaint{StudentID: 1, Type: TypeCollege, SubType: "Other", Description: "broken chair"}
	require.NoError(t, db.Create(&c).Error)
	require.NotEmpty(t, c.Token)

	first := c.Token
	c.Status = StatusResolved
	require.NoError(t, db.Save(&c).Error)
	assert.Equal(t, first, c.Token)
}

func TestComplaint_NetworkFieldsCleared(t *testing.T) {
	db := newTestDB(t)
	four := 4

	testCases := []struct {
		name    string
		ctype   ComplaintType
		subType string
	}{
		{"network type", TypeNetwork, "Other"},
		{"network sub-type", TypeCollege, "Network"},
		{"internet sub-type", TypeHostel, "Internet"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := Complaint{
				StudentID:   1,
				Type:        tc.ctype,
				SubType:     tc.subType,
				Description: "no connectivity",
				HostelNo:    &four,
				RoomNo:      "12",
			}
			require.NoError(t, db.Create(&c).Error)

			var got Complaint
			require.NoError(t, db.First(&got, c.ID).Error)
			assert.Nil(t, got.HostelNo)
			assert.Empty(t, got.RoomNo)
		})
	}
}

func TestAuthority_DepartmentDerived(t *testing.T) {
	db := newTestDB(t)

	five := 5
	network := Authority{
		Name: "N", Email: "net@bitmesra.ac.in", Mobile: "9876543210",
		Designation: DesignationNetworkDept, HostelNo: &five,
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&network).Error)
	assert.Equal(t, DepartmentNetwork, network.Department)
	assert.Nil(t, network.HostelNo, "network department must not keep a hostel assignment")

	clerk := Authority{
		Name: "C", Email: "clerk@bitmesra.ac.in", Mobile: "9876543211",
		Designation: DesignationHostelClerk, HostelNo: &five,
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&clerk).Error)
	assert.Empty(t, clerk.Department)
	require.NotNil(t, clerk.HostelNo)
	assert.Equal(t, 5, *clerk.HostelNo)
}
