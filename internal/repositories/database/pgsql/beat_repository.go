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

type PgxBeatRepository struct {
	BaseRepository
}

func newPgxBeatRepository(db *pgxpool.Pool) portsrepo.BeatRepositoryFacade {
	return &PgxBeatRepository{BaseRepository{Pool: db}}
}

// Ensure PgxBeatRepository implements portsrepo.BeatRepositoryFacade
var _ portsrepo.BeatRepositoryFacade = (*PgxBeatRepository)(nil)

func toDomainBeat(m models.Beat) domain.Beat {
	return domain.Beat{
		BeatID:            m.BeatID,
		BeatCode:          m.BeatCode,
		LocationID:        m.LocationID,
		NumberOfOperators: m.NumberOfOperators,
		IsActive:          m.IsActive,
		AuditFields:       toDomainAudit(m.AuditFields),
	}
}

const beatColumns = `beat_id, beat_code, location_id, number_of_operators, is_active,
		created_at, created_by, last_updated_at, last_updated_by`

func scanBeat(row pgx.Row) (*models.Beat, error) {
	var m models.Beat
	err := row.Scan(
		&m.BeatID,
		&m.BeatCode,
		&m.LocationID,
		&m.NumberOfOperators,
		&m.IsActive,
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

func (r *PgxBeatRepository) SaveBeat(ctx context.Context, beat domain.Beat) error {
	query := `
        INSERT INTO beats (` + beatColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.Pool.Exec(ctx, query,
		beat.BeatID, beat.BeatCode, beat.LocationID, beat.NumberOfOperators, beat.IsActive,
		beat.CreatedAt, beat.CreatedBy, beat.LastUpdatedAt, beat.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("beat code already exists at this location: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save beat: %w", err)
	}
	return nil
}

func (r *PgxBeatRepository) FindBeatByID(ctx context.Context, beatID string) (*domain.Beat, error) {
	query := `SELECT ` + beatColumns + ` FROM beats WHERE beat_id = $1;`
	m, err := scanBeat(r.Pool.QueryRow(ctx, query, beatID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find beat %s: %w", beatID, err)
	}
	beat := toDomainBeat(*m)
	return &beat, nil
}

func (r *PgxBeatRepository) FindBeatsByLocation(ctx context.Context, locationID string) ([]domain.Beat, error) {
	query := `
        SELECT ` + beatColumns + `
        FROM beats
        WHERE location_id = $1
        ORDER BY beat_code;
    `
	rows, err := r.Pool.Query(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query beats: %w", err)
	}
	defer rows.Close()

	beats := []domain.Beat{}
	for rows.Next() {
		m, err := scanBeat(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan beat row: %w", err)
		}
		beats = append(beats, toDomainBeat(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating beat rows: %w", rows.Err())
	}
	return beats, nil
}
