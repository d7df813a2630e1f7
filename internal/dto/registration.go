package dto

import (
	"time"

	"github.com/SecuForce/guard_workforce_app/internal/core/domain"
)

// SubmitRegistrationRequest carries a supervisor registration submission.
// GeneralSupervisorID and LocationID apply to SUPERVISOR registrations;
// RegionAssigned applies to GENERAL_SUPERVISOR registrations.
type SubmitRegistrationRequest struct {
	SupervisorType      string  `json:"supervisorType" binding:"required,oneof=GENERAL_SUPERVISOR SUPERVISOR"`
	FullName            string  `json:"fullName" binding:"required"`
	Email               string  `json:"email" binding:"required,email"`
	Phone               string  `json:"phone"`
	RegionAssigned      string  `json:"regionAssigned"`
	GeneralSupervisorID *string `json:"generalSupervisorID"`
	LocationID          *string `json:"locationID"`
}

// DecideRegistrationRequest carries an approval decision.
// Reason is required when the decision is REJECT.
type DecideRegistrationRequest struct {
	Decision string `json:"decision" binding:"required,oneof=APPROVE REJECT"`
	Reason   string `json:"reason"`
}

// SupervisorRecordResponse is the API representation of a supervisor record.
type SupervisorRecordResponse struct {
	SupervisorRecordID  string    `json:"supervisorRecordID"`
	AccountID           string    `json:"accountID"`
	SupervisorType      string    `json:"supervisorType"`
	ApprovalStatus      string    `json:"approvalStatus"`
	RegisteredBy        string    `json:"registeredBy"`
	GeneralSupervisorID *string   `json:"generalSupervisorID,omitempty"`
	LocationID          *string   `json:"locationID,omitempty"`
	RegionAssigned      string    `json:"regionAssigned,omitempty"`
	RejectionReason     string    `json:"rejectionReason,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

// ToSupervisorRecordResponse converts a domain.SupervisorRecord to its API representation.
func ToSupervisorRecordResponse(r *domain.SupervisorRecord) SupervisorRecordResponse {
	return SupervisorRecordResponse{
		SupervisorRecordID:  r.SupervisorRecordID,
		AccountID:           r.AccountID,
		SupervisorType:      string(r.SupervisorType),
		ApprovalStatus:      string(r.ApprovalStatus),
		RegisteredBy:        r.RegisteredBy,
		GeneralSupervisorID: r.GeneralSupervisorID,
		LocationID:          r.LocationID,
		RegionAssigned:      r.RegionAssigned,
		RejectionReason:     r.RejectionReason,
		CreatedAt:           r.CreatedAt,
	}
}

// ToSupervisorRecordListResponse converts a slice of records.
func ToSupervisorRecordListResponse(records []domain.SupervisorRecord) []SupervisorRecordResponse {
	out := make([]SupervisorRecordResponse, len(records))
	for i := range records {
		out[i] = ToSupervisorRecordResponse(&records[i])
	}
	return out
}

// ListPendingParams defines query parameters for listing pending registrations.
type ListPendingParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ApprovalStatsResponse wraps the recomputed approval dashboard breakdown.
type ApprovalStatsResponse struct {
	Counts []domain.ApprovalStatusCount `json:"counts"`
}
