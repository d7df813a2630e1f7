package models

// Location is the database representation of a physical site.
type Location struct {
	LocationID string `db:"location_id"`
	Name       string `db:"name"`
	Address    string `db:"address"`
	IsActive   bool   `db:"is_active"`
	TotalBeats int    `db:"total_beats"` // Derived via COUNT, not a stored column
	AuditFields
}

// Beat is the database representation of a security post.
type Beat struct {
	BeatID            string `db:"beat_id"`
	BeatCode          string `db:"beat_code"`
	LocationID        string `db:"location_id"`
	NumberOfOperators int    `db:"number_of_operators"`
	IsActive          bool   `db:"is_active"`
	AuditFields
}
