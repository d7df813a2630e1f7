package domain

// Location represents a physical site that owns zero or more beats.
type Location struct {
	LocationID string `json:"locationID"` // Primary Key (UUID)
	Name       string `json:"name"`
	Address    string `json:"address,omitempty"`
	IsActive   bool   `json:"isActive"`
	TotalBeats int    `json:"totalBeats"` // Derived count, never stored
	AuditFields
}

// Beat represents a security post at a location requiring a fixed number of operators.
type Beat struct {
	BeatID            string `json:"beatID"` // Primary Key (UUID)
	BeatCode          string `json:"beatCode"`
	LocationID        string `json:"locationID"` // FK -> locations.location_id (NON-NULL)
	NumberOfOperators int    `json:"numberOfOperators"`
	IsActive          bool   `json:"isActive"`
	AuditFields
}
