package contestant

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/rosepool/rosepool/go/internal/models"
)

const contestantColumns = `id, league_id, full_name, hometown, occupation, status, created_at`

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) CreateContestant(ctx context.Context, req CreateContestantRequest) (*models.Contestant, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO contestants (id, league_id, full_name, hometown, occupation, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+contestantColumns,
		uuid.New(), req.LeagueID, req.FullName, req.Hometown, req.Occupation,
		models.ContestantStatusActive,
	)

	contestant, err := scanContestant(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create contestant: %w", err)
	}
	return contestant, nil
}

func (r *Repository) GetContestant(ctx context.Context, id uuid.UUID) (*models.Contestant, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+contestantColumns+` FROM contestants WHERE id = $1`,
		id,
	)

	contestant, err := scanContestant(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get contestant: %w", err)
	}
	return contestant, nil
}

func (r *Repository) GetContestantsByLeague(ctx context.Context, leagueID uuid.UUID) ([]models.Contestant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+contestantColumns+` FROM contestants WHERE league_id = $1 ORDER BY created_at`,
		leagueID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get contestants by league: %w", err)
	}
	defer rows.Close()

	var contestants []models.Contestant
	for rows.Next() {
		contestant, err := scanContestant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contestant: %w", err)
		}
		contestants = append(contestants, *contestant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read contestants: %w", err)
	}
	return contestants, nil
}

func (r *Repository) UpdateContestantStatus(ctx context.Context, id uuid.UUID, status models.ContestantStatus) (*models.Contestant, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE contestants SET status = $2
		WHERE id = $1
		RETURNING `+contestantColumns,
		id, status,
	)

	contestant, err := scanContestant(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update contestant status: %w", err)
	}
	return contestant, nil
}

func (r *Repository) DeleteContestant(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM contestants WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete contestant: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContestant(row rowScanner) (*models.Contestant, error) {
	var contestant models.Contestant
	err := row.Scan(
		&contestant.ID,
		&contestant.LeagueID,
		&contestant.FullName,
		&contestant.Hometown,
		&contestant.Occupation,
		&contestant.Status,
		&contestant.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &contestant, nil
}
