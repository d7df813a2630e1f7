package dto

import (
	"time"

	"github.com/SecuForce/guard_workforce_app/internal/core/domain"
)

// CreateAssignmentRequest carries a new operator posting. LocationID is never
// part of the request; it is always derived from the beat.
type CreateAssignmentRequest struct {
	OperatorID     string    `json:"operatorID" binding:"required"`
	BeatID         string    `json:"beatID" binding:"required"`
	SupervisorID   string    `json:"supervisorID" binding:"required"`
	ShiftType      string    `json:"shiftType" binding:"required,oneof=DAY NIGHT ROTATING"`
	AssignmentType string    `json:"assignmentType" binding:"required,oneof=PERMANENT TEMPORARY RELIEF"`
	StartDate      time.Time `json:"startDate" binding:"required"`
}

// ChangeAssignmentRequest moves an operator to a new beat/supervisor.
type ChangeAssignmentRequest struct {
	BeatID         string    `json:"beatID" binding:"required"`
	SupervisorID   string    `json:"supervisorID" binding:"required"`
	ShiftType      string    `json:"shiftType" binding:"required,oneof=DAY NIGHT ROTATING"`
	AssignmentType string    `json:"assignmentType" binding:"required,oneof=PERMANENT TEMPORARY RELIEF"`
	StartDate      time.Time `json:"startDate" binding:"required"`
}

// AssignmentResponse is the API representation of an assignment.
type AssignmentResponse struct {
	AssignmentID   string     `json:"assignmentID"`
	OperatorID     string     `json:"operatorID"`
	BeatID         string     `json:"beatID"`
	SupervisorID   string     `json:"supervisorID"`
	LocationID     string     `json:"locationID"`
	ShiftType      string     `json:"shiftType"`
	AssignmentType string     `json:"assignmentType"`
	Status         string     `json:"status"`
	StartDate      time.Time  `json:"startDate"`
	EndedAt        *time.Time `json:"endedAt,omitempty"`
}

// ToAssignmentResponse converts a domain.Assignment to its API representation.
func ToAssignmentResponse(a *domain.Assignment) AssignmentResponse {
	return AssignmentResponse{
		AssignmentID:   a.AssignmentID,
		OperatorID:     a.OperatorID,
		BeatID:         a.BeatID,
		SupervisorID:   a.SupervisorID,
		LocationID:     a.LocationID,
		ShiftType:      string(a.ShiftType),
		AssignmentType: string(a.AssignmentType),
		Status:         string(a.Status),
		StartDate:      a.StartDate,
		EndedAt:        a.EndedAt,
	}
}

// ToAssignmentListResponse converts a slice of assignments.
func ToAssignmentListResponse(assignments []domain.Assignment) []AssignmentResponse {
	out := make([]AssignmentResponse, len(assignments))
	for i := range assignments {
		out[i] = ToAssignmentResponse(&assignments[i])
	}
	return out
}
