package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ligaops/competition-engine/internal/domain/registration"
	"github.com/ligaops/competition-engine/internal/domain/storage"
)

type RegistrationRepository struct {
	db *sqlx.DB
}

func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

const registrationColumns = `public_id, season_public_id, team_public_id, status, reviewer_note,
payload, version, created_at, updated_at`

func (r *RegistrationRepository) GetByID(ctx context.Context, registrationID string) (registration.Registration, bool, error) {
	var row registrationTableModel
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE public_id = $1`
	if err := r.db.GetContext(ctx, &row, query, registrationID); err != nil {
		if isNotFound(err) {
			return registration.Registration{}, false, nil
		}
		return registration.Registration{}, false, fmt.Errorf("get registration by id: %w", err)
	}

	return registrationFromRow(row), true, nil
}

func (r *RegistrationRepository) GetBySeasonAndTeam(ctx context.Context, seasonID, teamID string) (registration.Registration, bool, error) {
	var row registrationTableModel
	query := `SELECT ` + registrationColumns + ` FROM registrations
WHERE season_public_id = $1 AND team_public_id = $2`
	if err := r.db.GetContext(ctx, &row, query, seasonID, teamID); err != nil {
		if isNotFound(err) {
			return registration.Registration{}, false, nil
		}
		return registration.Registration{}, false, fmt.Errorf("get registration by season and team: %w", err)
	}

	return registrationFromRow(row), true, nil
}

func (r *RegistrationRepository) ListBySeason(ctx context.Context, seasonID string) ([]registration.Registration, error) {
	var rows []registrationTableModel
	query := `SELECT ` + registrationColumns + ` FROM registrations
WHERE season_public_id = $1 ORDER BY created_at, public_id`
	if err := r.db.SelectContext(ctx, &rows, query, seasonID); err != nil {
		return nil, fmt.Errorf("select registrations by season: %w", err)
	}

	out := make([]registration.Registration, 0, len(rows))
	for _, row := range rows {
		out = append(out, registrationFromRow(row))
	}
	return out, nil
}

func (r *RegistrationRepository) CountBySeasonAndStatus(ctx context.Context, seasonID string, status registration.Status) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM registrations WHERE season_public_id = $1 AND status = $2`
	if err := r.db.GetContext(ctx, &count, query, seasonID, string(status)); err != nil {
		return 0, fmt.Errorf("count registrations by status: %w", err)
	}
	return count, nil
}

func (r *RegistrationRepository) Create(ctx context.Context, item registration.Registration) error {
	query := `INSERT INTO registrations
(public_id, season_public_id, team_public_id, status, reviewer_note, payload, version, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.SeasonID,
		item.TeamID,
		string(item.Status),
		nullString(item.ReviewerNote),
		item.Payload,
		item.Version,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrDuplicateID
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

func (r *RegistrationRepository) Update(ctx context.Context, item registration.Registration) error {
	query := `UPDATE registrations
SET status = $1, reviewer_note = $2, payload = $3, version = version + 1, updated_at = $4
WHERE public_id = $5 AND version = $6`
	result, err := r.db.ExecContext(ctx, query,
		string(item.Status),
		nullString(item.ReviewerNote),
		item.Payload,
		item.UpdatedAt,
		item.ID,
		item.Version,
	)
	if err != nil {
		return fmt.Errorf("update registration: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update registration rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrVersionMismatch
	}
	return nil
}

func registrationFromRow(row registrationTableModel) registration.Registration {
	return registration.Registration{
		ID:           row.PublicID,
		SeasonID:     row.SeasonID,
		TeamID:       row.TeamID,
		Status:       registration.Status(row.Status),
		ReviewerNote: row.ReviewerNote.String,
		Payload:      row.Payload,
		Version:      row.Version,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
