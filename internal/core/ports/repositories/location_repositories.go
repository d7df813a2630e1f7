package repositories

import (
	"context"

	"github.com/SecuForce/guard_workforce_app/internal/core/domain"
)

// LocationReader defines read operations for the location catalog.
type LocationReader interface {
	// FindLocationByID retrieves a location with its derived beat count.
	FindLocationByID(ctx context.Context, locationID string) (*domain.Location, error)

	// ListLocations retrieves the location catalog, active first.
	ListLocations(ctx context.Context, limit int, offset int) ([]domain.Location, error)
}

// LocationWriter defines write operations for the location catalog.
type LocationWriter interface {
	// SaveLocation persists a new location.
	SaveLocation(ctx context.Context, location domain.Location) error
}

// LocationRepositoryFacade combines all location repository interfaces.
type LocationRepositoryFacade interface {
	LocationReader
	LocationWriter
}

// BeatReader defines read operations for beats.
type BeatReader interface {
	// FindBeatByID retrieves a specific beat.
	FindBeatByID(ctx context.Context, beatID string) (*domain.Beat, error)

	// FindBeatsByLocation retrieves all beats owned by a location.
	FindBeatsByLocation(ctx context.Context, locationID string) ([]domain.Beat, error)
}

// BeatWriter defines write operations for beats.
type BeatWriter interface {
	// SaveBeat persists a new beat under its owning location.
	SaveBeat(ctx context.Context, beat domain.Beat) error
}

// BeatRepositoryFacade combines all beat repository interfaces.
type BeatRepositoryFacade interface {
	BeatReader
	BeatWriter
}
