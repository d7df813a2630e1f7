package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SecuForce/guard_workforce_app/internal/apperrors"
	"github.com/SecuForce/guard_workforce_app/internal/core/domain"
	portsrepo "github.com/SecuForce/guard_workforce_app/internal/core/ports/repositories"
	"github.com/SecuForce/guard_workforce_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLocationRepository struct {
	BaseRepository
}

func newPgxLocationRepository(db *pgxpool.Pool) portsrepo.LocationRepositoryFacade {
	return &PgxLocationRepository{BaseRepository{Pool: db}}
}

// Ensure PgxLocationRepository implements portsrepo.LocationRepositoryFacade
var _ portsrepo.LocationRepositoryFacade = (*PgxLocationRepository)(nil)

func toDomainLocation(m models.Location) domain.Location {
	return domain.Location{
		LocationID:  m.LocationID,
		Name:        m.Name,
		Address:     m.Address,
		IsActive:    m.IsActive,
		TotalBeats:  m.TotalBeats,
		AuditFields: toDomainAudit(m.AuditFields),
	}
}

// locationSelect joins in the derived beat count; total_beats is never a
// stored column.
const locationSelect = `
        SELECT l.location_id, l.name, l.address, l.is_active,
               COUNT(b.beat_id) AS total_beats,
               l.created_at, l.created_by, l.last_updated_at, l.last_updated_by
        FROM locations l
        LEFT JOIN beats b ON b.location_id = l.location_id`

const locationGroupBy = ` GROUP BY l.location_id, l.name, l.address, l.is_active,
               l.created_at, l.created_by, l.last_updated_at, l.last_updated_by`

func scanLocation(row pgx.Row) (*models.Location, error) {
	var m models.Location
	err := row.Scan(
		&m.LocationID,
		&m.Name,
		&m.Address,
		&m.IsActive,
		&m.TotalBeats,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxLocationRepository) SaveLocation(ctx context.Context, location domain.Location) error {
	query := `
        INSERT INTO locations (location_id, name, address, is_active,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.Pool.Exec(ctx, query,
		location.LocationID, location.Name, location.Address, location.IsActive,
		location.CreatedAt, location.CreatedBy, location.LastUpdatedAt, location.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("location with this name already exists: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save location: %w", err)
	}
	return nil
}

func (r *PgxLocationRepository) FindLocationByID(ctx context.Context, locationID string) (*domain.Location, error) {
	query := locationSelect + ` WHERE l.location_id = $1` + locationGroupBy + `;`
	m, err := scanLocation(r.Pool.QueryRow(ctx, query, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find location %s: %w", locationID, err)
	}
	location := toDomainLocation(*m)
	return &location, nil
}

func (r *PgxLocationRepository) ListLocations(ctx context.Context, limit int, offset int) ([]domain.Location, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := locationSelect + locationGroupBy + `
        ORDER BY l.is_active DESC, l.name
        LIMIT $1 OFFSET $2;
    `
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	locations := []domain.Location{}
	for rows.Next() {
		m, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location row: %w", err)
		}
		locations = append(locations, toDomainLocation(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating location rows: %w", rows.Err())
	}
	return locations, nil
}
