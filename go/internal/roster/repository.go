package roster

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rosepool/rosepool/go/internal/models"
	"github.com/sqlc-dev/pqtype"
)

const rosterColumns = `id, fantasy_team_id, contestant_id, acquired_at, acquisition_type, notes`

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		db: db,
	}
}

type CreateRosterEntryRequest struct {
	FantasyTeamID   uuid.UUID              `json:"fantasy_team_id"`
	ContestantID    uuid.UUID              `json:"contestant_id"`
	AcquisitionType models.AcquisitionType `json:"acquisition_type"`
	Notes           json.RawMessage        `json:"notes"`
}

type UpdateRosterNotesRequest struct {
	Notes json.RawMessage `json:"notes"`
}

func (r *Repository) CreateRosterEntry(ctx context.Context, req CreateRosterEntryRequest) (*models.Roster, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO rosters (id, fantasy_team_id, contestant_id, acquisition_type, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+rosterColumns,
		uuid.New(), req.FantasyTeamID, req.ContestantID, req.AcquisitionType,
		pqtype.NullRawMessage{RawMessage: req.Notes, Valid: len(req.Notes) > 0},
	)

	roster, err := scanRoster(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create roster entry: %w", err)
	}
	return roster, nil
}

func (r *Repository) GetRoster(ctx context.Context, id uuid.UUID) (*models.Roster, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+rosterColumns+` FROM rosters WHERE id = $1`,
		id,
	)

	roster, err := scanRoster(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster entry: %w", err)
	}
	return roster, nil
}

func (r *Repository) GetRosterByFantasyTeam(ctx context.Context, fantasyTeamID uuid.UUID) ([]models.Roster, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+rosterColumns+` FROM rosters WHERE fantasy_team_id = $1 ORDER BY acquired_at`,
		fantasyTeamID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster by fantasy team: %w", err)
	}
	defer rows.Close()

	return collectRosters(rows)
}

func (r *Repository) GetContestantOnRoster(ctx context.Context, fantasyTeamID, contestantID uuid.UUID) (*models.Roster, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+rosterColumns+` FROM rosters WHERE fantasy_team_id = $1 AND contestant_id = $2`,
		fantasyTeamID, contestantID,
	)

	roster, err := scanRoster(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get contestant on roster: %w", err)
	}
	return roster, nil
}

func (r *Repository) GetRosterByAcquisitionType(ctx context.Context, fantasyTeamID uuid.UUID, acquisitionType models.AcquisitionType) ([]models.Roster, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+rosterColumns+` FROM rosters
		WHERE fantasy_team_id = $1 AND acquisition_type = $2
		ORDER BY acquired_at`,
		fantasyTeamID, acquisitionType,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster by acquisition type: %w", err)
	}
	defer rows.Close()

	return collectRosters(rows)
}

func (r *Repository) UpdateRosterNotes(ctx context.Context, id uuid.UUID, req UpdateRosterNotesRequest) (*models.Roster, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE rosters SET notes = $2
		WHERE id = $1
		RETURNING `+rosterColumns,
		id,
		pqtype.NullRawMessage{RawMessage: req.Notes, Valid: len(req.Notes) > 0},
	)

	roster, err := scanRoster(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update roster notes: %w", err)
	}
	return roster, nil
}

func (r *Repository) DeleteRosterEntry(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM rosters WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete roster entry: %w", err)
	}
	return nil
}

func (r *Repository) DeleteContestantFromRoster(ctx context.Context, fantasyTeamID, contestantID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM rosters WHERE fantasy_team_id = $1 AND contestant_id = $2`,
		fantasyTeamID, contestantID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete contestant from roster: %w", err)
	}
	return nil
}

func (r *Repository) DeleteTeamRoster(ctx context.Context, fantasyTeamID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM rosters WHERE fantasy_team_id = $1`, fantasyTeamID); err != nil {
		return fmt.Errorf("failed to delete team roster: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoster(row rowScanner) (*models.Roster, error) {
	var (
		roster models.Roster
		notes  pqtype.NullRawMessage
	)
	err := row.Scan(
		&roster.ID,
		&roster.FantasyTeamID,
		&roster.ContestantID,
		&roster.AcquiredAt,
		&roster.AcquisitionType,
		&notes,
	)
	if err != nil {
		return nil, err
	}
	if notes.Valid {
		roster.Notes = notes.RawMessage
	}
	return &roster, nil
}

func collectRosters(rows *sql.Rows) ([]models.Roster, error) {
	var rosters []models.Roster
	for rows.Next() {
		roster, err := scanRoster(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan roster entry: %w", err)
		}
		rosters = append(rosters, *roster)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read roster entries: %w", err)
	}
	return rosters, nil
}
