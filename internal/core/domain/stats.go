package domain

// ApprovalStatusCount is one row of the approval dashboard breakdown.
// Counts are always recomputed from record state, never maintained as
// separately-mutated counters.
type ApprovalStatusCount struct {
	SupervisorType SupervisorType `json:"supervisorType"`
	ApprovalStatus ApprovalStatus `json:"approvalStatus"`
	Count          int            `json:"count"`
}
