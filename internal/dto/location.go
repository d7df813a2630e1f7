package dto

import (
	"github.com/SecuForce/guard_workforce_app/internal/core/domain"
)

// CreateLocationRequest carries a new physical site.
type CreateLocationRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

// CreateBeatRequest carries a new security post under a location.
type CreateBeatRequest struct {
	BeatCode          string `json:"beatCode" binding:"required,beat_code"`
	NumberOfOperators int    `json:"numberOfOperators" binding:"required,min=1"`
}

// LocationResponse is the API representation of a location.
type LocationResponse struct {
	LocationID string `json:"locationID"`
	Name       string `json:"name"`
	Address    string `json:"address,omitempty"`
	IsActive   bool   `json:"isActive"`
	TotalBeats int    `json:"totalBeats"`
}

// ToLocationResponse converts a domain.Location to its API representation.
func ToLocationResponse(l *domain.Location) LocationResponse {
	return LocationResponse{
		LocationID: l.LocationID,
		Name:       l.Name,
		Address:    l.Address,
		IsActive:   l.IsActive,
		TotalBeats: l.TotalBeats,
	}
}

// ToLocationListResponse converts a slice of locations.
func ToLocationListResponse(locations []domain.Location) []LocationResponse {
	out := make([]LocationResponse, len(locations))
	for i := range locations {
		out[i] = ToLocationResponse(&locations[i])
	}
	return out
}

// BeatResponse is the API representation of a beat.
type BeatResponse struct {
	BeatID            string `json:"beatID"`
	BeatCode          string `json:"beatCode"`
	LocationID        string `json:"locationID"`
	NumberOfOperators int    `json:"numberOfOperators"`
	IsActive          bool   `json:"isActive"`
}

// ToBeatResponse converts a domain.Beat to its API representation.
func ToBeatResponse(b *domain.Beat) BeatResponse {
	return BeatResponse{
		BeatID:            b.BeatID,
		BeatCode:          b.BeatCode,
		LocationID:        b.LocationID,
		NumberOfOperators: b.NumberOfOperators,
		IsActive:          b.IsActive,
	}
}

// ToBeatListResponse converts a slice of beats.
func ToBeatListResponse(beats []domain.Beat) []BeatResponse {
	out := make([]BeatResponse, len(beats))
	for i := range beats {
		out[i] = ToBeatResponse(&beats[i])
	}
	return out
}

// ListParams defines common limit/offset query parameters.
type ListParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}
