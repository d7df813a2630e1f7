package domain

import "time"

// ShiftType is the working shift an assignment covers.
type ShiftType string

const (
	ShiftDay      ShiftType = "DAY"
	ShiftNight    ShiftType = "NIGHT"
	ShiftRotating ShiftType = "ROTATING"
)

// IsValid reports whether the shift type is known.
func (s ShiftType) IsValid() bool {
	switch s {
	case ShiftDay, ShiftNight, ShiftRotating:
		return true
	}
	return false
}

// AssignmentType qualifies the nature of the posting.
type AssignmentType string

const (
	AssignmentPermanent AssignmentType = "PERMANENT"
	AssignmentTemporary AssignmentType = "TEMPORARY"
	AssignmentRelief    AssignmentType = "RELIEF"
)

// IsValid reports whether the assignment type is known.
func (t AssignmentType) IsValid() bool {
	switch t {
	case AssignmentPermanent, AssignmentTemporary, AssignmentRelief:
		return true
	}
	return false
}

// AssignmentStatus is the lifecycle state of an assignment.
type AssignmentStatus string

const (
	AssignmentActive      AssignmentStatus = "ACTIVE"
	AssignmentEnded       AssignmentStatus = "ENDED"
	AssignmentTransferred AssignmentStatus = "TRANSFERRED"
)

// IsTerminal reports whether the assignment can no longer change state.
func (s AssignmentStatus) IsTerminal() bool {
	return s == AssignmentEnded || s == AssignmentTransferred
}

// Assignment binds one operator to one beat under one supervisor.
// An operator holds at most one ACTIVE assignment at any time; the location
// is always derived from the beat, never supplied by the caller.
type Assignment struct {
	AssignmentID   string           `json:"assignmentID"` // Primary Key (UUID)
	OperatorID     string           `json:"operatorID"`   // FK -> accounts.account_id (role OPERATOR)
	BeatID         string           `json:"beatID"`       // FK -> beats.beat_id
	SupervisorID   string           `json:"supervisorID"` // FK -> supervisor_records.supervisor_record_id
	LocationID     string           `json:"locationID"`   // Always equals the beat's location
	ShiftType      ShiftType        `json:"shiftType"`
	AssignmentType AssignmentType   `json:"assignmentType"`
	Status         AssignmentStatus `json:"status"`
	StartDate      time.Time        `json:"startDate"`
	EndedAt        *time.Time       `json:"endedAt,omitempty"`
	AuditFields
}
