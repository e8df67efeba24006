// Package routing decides which authority a new complaint is assigned to.
// The decision is pure; the store performs the actual account lookup.
package routing

import "campus-complaint-backend/internal/model"

// Target identifies the kind of authority a complaint routes to.
type Target int

const (
	// TargetNone leaves the complaint unassigned, awaiting manual triage.
	TargetNone Target = iota
	// TargetNetworkDept routes to the network department authority.
	TargetNetworkDept
	// TargetHostelClerk routes to the hostel clerk of Decision.HostelNo.
	TargetHostelClerk
)

// Decision is the outcome of resolving a complaint's routing key.
type Decision struct {
	Target   Target
	HostelNo int
}

// Resolve maps a validated complaint's (type, subType, hostelNo) to a
// routing decision. Evaluated in fixed priority order, first match wins:
//
//  1. network-related complaints go to the network department,
//  2. hostel complaints with a hostel number go to that hostel's clerk,
//  3. everything else stays unassigned.
func Resolve(t model.ComplaintType, subType string, hostelNo *int) Decision {
	switch {
	case model.NetworkRelated(t, subType):
		return Decision{Target: TargetNetworkDept}
	case t == model.TypeHostel && hostelNo != nil:
		return Decision{Target: TargetHostelClerk, HostelNo: *hostelNo}
	default:
		return Decision{Target: TargetNone}
	}
}
