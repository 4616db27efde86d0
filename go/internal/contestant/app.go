package contestant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/rosepool/rosepool/go/internal/models"
)

// ContestantRepository defines what the app layer needs from the repository
type ContestantRepository interface {
	CreateContestant(ctx context.Context, req CreateContestantRequest) (*models.Contestant, error)
	GetContestant(ctx context.Context, id uuid.UUID) (*models.Contestant, error)
	GetContestantsByLeague(ctx context.Context, leagueID uuid.UUID) ([]models.Contestant, error)
	UpdateContestantStatus(ctx context.Context, id uuid.UUID, status models.ContestantStatus) (*models.Contestant, error)
	DeleteContestant(ctx context.Context, id uuid.UUID) error
}

// CreateContestantRequest represents the data needed to add a cast member
type CreateContestantRequest struct {
	LeagueID   uuid.UUID `json:"league_id"`
	FullName   string    `json:"full_name"`
	Hometown   string    `json:"hometown"`
	Occupation string    `json:"occupation"`
}

// App handles contestant business logic
type App struct {
	repo ContestantRepository
}

// NewApp creates a new contestant App
func NewApp(repo ContestantRepository) *App {
	return &App{
		repo: repo,
	}
}

// CreateContestant adds a cast member to a league's season
func (a *App) CreateContestant(ctx context.Context, req CreateContestantRequest) (*models.Contestant, error) {
	if req.LeagueID == uuid.Nil {
		return nil, fmt.Errorf("validation failed: league_id is required")
	}
	if req.FullName == "" {
		return nil, fmt.Errorf("validation failed: full_name is required")
	}

	contestant, err := a.repo.CreateContestant(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create contestant: %w", err)
	}

	log.Printf("Created contestant: %s in league %s", contestant.FullName, contestant.LeagueID)
	return contestant, nil
}

// GetContestant retrieves a contestant by ID
func (a *App) GetContestant(ctx context.Context, id uuid.UUID) (*models.Contestant, error) {
	contestant, err := a.repo.GetContestant(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get contestant: %w", err)
	}
	return contestant, nil
}

// GetContestantsByLeague retrieves all contestants in a league
func (a *App) GetContestantsByLeague(ctx context.Context, leagueID uuid.UUID) ([]models.Contestant, error) {
	contestants, err := a.repo.GetContestantsByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to get contestants by league: %w", err)
	}
	return contestants, nil
}

// UpdateContestantStatus records eliminations and the season winner
func (a *App) UpdateContestantStatus(ctx context.Context, id uuid.UUID, status models.ContestantStatus) (*models.Contestant, error) {
	switch status {
	case models.ContestantStatusActive, models.ContestantStatusEliminated, models.ContestantStatusWinner:
	default:
		return nil, fmt.Errorf("validation failed: invalid contestant status: %s", status)
	}

	contestant, err := a.repo.UpdateContestantStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update contestant status: %w", err)
	}

	log.Printf("Updated contestant status: %s -> %s", contestant.FullName, status)
	return contestant, nil
}

// DeleteContestant deletes a contestant by ID
func (a *App) DeleteContestant(ctx context.Context, id uuid.UUID) error {
	contestant, err := a.repo.GetContestant(ctx, id)
	if err != nil {
		return fmt.Errorf("contestant not found: %w", err)
	}

	if err := a.repo.DeleteContestant(ctx, id); err != nil {
		return fmt.Errorf("failed to delete contestant: %w", err)
	}

	log.Printf("Deleted contestant: %s", contestant.FullName)
	return nil
}

// BelongsToLeague reports whether a contestant is part of the league's cast.
// It backs the draft engine's contestant directory.
func (a *App) BelongsToLeague(ctx context.Context, contestantID, leagueID uuid.UUID) (bool, error) {
	contestant, err := a.repo.GetContestant(ctx, contestantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up contestant: %w", err)
	}
	return contestant.LeagueID == leagueID, nil
}

// ListAvailableContestants returns league contestants that are not in the
// picked set. Used by the draft engine's auto-pick.
func (a *App) ListAvailableContestants(ctx context.Context, leagueID uuid.UUID, picked []uuid.UUID) ([]uuid.UUID, error) {
	contestants, err := a.repo.GetContestantsByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contestants: %w", err)
	}

	pickedSet := make(map[uuid.UUID]bool, len(picked))
	for _, id := range picked {
		pickedSet[id] = true
	}

	var available []uuid.UUID
	for _, c := range contestants {
		if !pickedSet[c.ID] {
			available = append(available, c.ID)
		}
	}
	return available, nil
}
