package fantasyteam

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/rosepool/rosepool/go/internal/models"
	"github.com/rosepool/rosepool/go/internal/sqlutil"
)

const teamColumns = `id, league_id, owner_id, name, logo_url, created_at`

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		db: db,
	}
}

type CreateFantasyTeamRequest struct {
	LeagueID uuid.UUID `json:"league_id"`
	OwnerID  uuid.UUID `json:"owner_id"`
	Name     string    `json:"name"`
	LogoURL  string    `json:"logo_url"`
}

type UpdateFantasyTeamRequest struct {
	Name    string `json:"name"`
	LogoURL string `json:"logo_url"`
}

func (r *Repository) CreateFantasyTeam(ctx context.Context, req CreateFantasyTeamRequest) (*models.FantasyTeam, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO fantasy_teams (id, league_id, owner_id, name, logo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+teamColumns,
		uuid.New(), req.LeagueID, req.OwnerID, req.Name,
		sqlutil.ToSqlString(req.LogoURL),
	)

	team, err := scanFantasyTeam(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create fantasy team: %w", err)
	}
	return team, nil
}

func (r *Repository) GetFantasyTeam(ctx context.Context, id uuid.UUID) (*models.FantasyTeam, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+teamColumns+` FROM fantasy_teams WHERE id = $1`,
		id,
	)

	team, err := scanFantasyTeam(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get fantasy team: %w", err)
	}
	return team, nil
}

func (r *Repository) GetFantasyTeamsByLeague(ctx context.Context, leagueID uuid.UUID) ([]models.FantasyTeam, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+teamColumns+` FROM fantasy_teams WHERE league_id = $1 ORDER BY created_at`,
		leagueID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get fantasy teams by league: %w", err)
	}
	defer rows.Close()

	return collectFantasyTeams(rows)
}

func (r *Repository) GetFantasyTeamsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.FantasyTeam, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+teamColumns+` FROM fantasy_teams WHERE owner_id = $1 ORDER BY created_at`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get fantasy teams by owner: %w", err)
	}
	defer rows.Close()

	return collectFantasyTeams(rows)
}

func (r *Repository) GetFantasyTeamByLeagueAndOwner(ctx context.Context, ownerID, leagueID uuid.UUID) (*models.FantasyTeam, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+teamColumns+` FROM fantasy_teams WHERE owner_id = $1 AND league_id = $2`,
		ownerID, leagueID,
	)

	team, err := scanFantasyTeam(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get fantasy team by league and owner: %w", err)
	}
	return team, nil
}

func (r *Repository) UpdateFantasyTeam(ctx context.Context, id uuid.UUID, req UpdateFantasyTeamRequest) (*models.FantasyTeam, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE fantasy_teams SET name = $2, logo_url = $3
		WHERE id = $1
		RETURNING `+teamColumns,
		id, req.Name,
		sqlutil.ToSqlString(req.LogoURL),
	)

	team, err := scanFantasyTeam(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update fantasy team: %w", err)
	}
	return team, nil
}

func (r *Repository) DeleteFantasyTeam(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM fantasy_teams WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete fantasy team: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFantasyTeam(row rowScanner) (*models.FantasyTeam, error) {
	var (
		team    models.FantasyTeam
		logoURL sql.NullString
	)
	err := row.Scan(
		&team.ID,
		&team.LeagueID,
		&team.OwnerID,
		&team.Name,
		&logoURL,
		&team.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	team.LogoURL = sqlutil.FromSqlString(logoURL, "")
	return &team, nil
}

func collectFantasyTeams(rows *sql.Rows) ([]models.FantasyTeam, error) {
	var teams []models.FantasyTeam
	for rows.Next() {
		team, err := scanFantasyTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fantasy team: %w", err)
		}
		teams = append(teams, *team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read fantasy teams: %w", err)
	}
	return teams, nil
}
