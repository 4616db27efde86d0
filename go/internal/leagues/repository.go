package leagues

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rosepool/rosepool/go/internal/models"
)

const leagueColumns = `id, name, season, commissioner_id, league_settings, status, created_at, updated_at`

// Repository implements league data access operations
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new leagues repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// CreateLeague creates a new league
func (r *Repository) CreateLeague(ctx context.Context, req CreateLeagueRequest) (*models.League, error) {
	settingsJSON, err := json.Marshal(req.LeagueSettings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal league settings: %w", err)
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO leagues (id, name, season, commissioner_id, league_settings, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+leagueColumns,
		uuid.New(), req.Name, req.Season, req.CommissionerID, settingsJSON, req.Status,
	)

	league, err := scanLeague(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create league: %w", err)
	}
	return league, nil
}

// GetLeague retrieves a league by ID
func (r *Repository) GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+leagueColumns+` FROM leagues WHERE id = $1`,
		id,
	)

	league, err := scanLeague(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get league: %w", err)
	}
	return league, nil
}

// GetLeaguesByCommissioner retrieves leagues by commissioner ID
func (r *Repository) GetLeaguesByCommissioner(ctx context.Context, commissionerID uuid.UUID) ([]models.League, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+leagueColumns+` FROM leagues WHERE commissioner_id = $1 ORDER BY created_at`,
		commissionerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get leagues by commissioner: %w", err)
	}
	defer rows.Close()

	var leagues []models.League
	for rows.Next() {
		league, err := scanLeague(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan league: %w", err)
		}
		leagues = append(leagues, *league)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leagues: %w", err)
	}
	return leagues, nil
}

// UpdateLeague updates an existing league
func (r *Repository) UpdateLeague(ctx context.Context, id uuid.UUID, req UpdateLeagueRequest) (*models.League, error) {
	settingsJSON, err := json.Marshal(req.LeagueSettings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal league settings: %w", err)
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE leagues
		SET name = $2, season = $3, commissioner_id = $4, league_settings = $5, status = $6, updated_at = now()
		WHERE id = $1
		RETURNING `+leagueColumns,
		id, req.Name, req.Season, req.CommissionerID, settingsJSON, req.Status,
	)

	league, err := scanLeague(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update league: %w", err)
	}
	return league, nil
}

// UpdateLeagueStatus updates only the status of a league
func (r *Repository) UpdateLeagueStatus(ctx context.Context, id uuid.UUID, status models.LeagueStatus) (*models.League, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE leagues SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+leagueColumns,
		id, status,
	)

	league, err := scanLeague(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update league status: %w", err)
	}
	return league, nil
}

// UpdateLeagueSettings updates only the settings of a league
func (r *Repository) UpdateLeagueSettings(ctx context.Context, id uuid.UUID, settings interface{}) (*models.League, error) {
	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal league settings: %w", err)
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE leagues SET league_settings = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+leagueColumns,
		id, settingsJSON,
	)

	league, err := scanLeague(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update league settings: %w", err)
	}
	return league, nil
}

// DeleteLeague deletes a league by ID
func (r *Repository) DeleteLeague(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM leagues WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete league: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLeague(row rowScanner) (*models.League, error) {
	var (
		league       models.League
		settingsJSON []byte
	)
	err := row.Scan(
		&league.ID,
		&league.Name,
		&league.Season,
		&league.CommissionerID,
		&settingsJSON,
		&league.Status,
		&league.CreatedAt,
		&league.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(settingsJSON) > 0 {
		var settings interface{}
		if err := json.Unmarshal(settingsJSON, &settings); err != nil {
			// Keep raw JSON text when it does not parse
			settings = string(settingsJSON)
		}
		league.LeagueSettings = settings
	}

	return &league, nil
}
