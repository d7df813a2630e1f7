package dto

// ReassignLocationRequest changes an approved supervisor's location.
// A null locationID unassigns the supervisor from all locations.
type ReassignLocationRequest struct {
	LocationID *string `json:"locationID"`
}

// ReassignGeneralSupervisorRequest changes the reporting edge of an approved
// supervisor.
type ReassignGeneralSupervisorRequest struct {
	GeneralSupervisorID *string `json:"generalSupervisorID"`
}

// ListApprovedSupervisorsParams filters the approved-supervisor listing.
type ListApprovedSupervisorsParams struct {
	LocationID *string `form:"locationID"`
}
