package models

import "time"

// Assignment is the database representation of an operator posting.
type Assignment struct {
	AssignmentID   string     `db:"assignment_id"`
	OperatorID     string     `db:"operator_id"`
	BeatID         string     `db:"beat_id"`
	SupervisorID   string     `db:"supervisor_id"`
	LocationID     string     `db:"location_id"`
	ShiftType      string     `db:"shift_type"`
	AssignmentType string     `db:"assignment_type"`
	Status         string     `db:"status"`
	StartDate      time.Time  `db:"start_date"`
	EndedAt        *time.Time `db:"ended_at"`
	AuditFields
}
