package roster

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/rosepool/rosepool/go/internal/models"
)

// RosterRepository defines what the app layer needs from the repository
type RosterRepository interface {
	CreateRosterEntry(ctx context.Context, req CreateRosterEntryRequest) (*models.Roster, error)
	GetRoster(ctx context.Context, id uuid.UUID) (*models.Roster, error)
	GetRosterByFantasyTeam(ctx context.Context, fantasyTeamID uuid.UUID) ([]models.Roster, error)
	GetContestantOnRoster(ctx context.Context, fantasyTeamID, contestantID uuid.UUID) (*models.Roster, error)
	GetRosterByAcquisitionType(ctx context.Context, fantasyTeamID uuid.UUID, acquisitionType models.AcquisitionType) ([]models.Roster, error)
	UpdateRosterNotes(ctx context.Context, id uuid.UUID, req UpdateRosterNotesRequest) (*models.Roster, error)
	DeleteRosterEntry(ctx context.Context, id uuid.UUID) error
	DeleteContestantFromRoster(ctx context.Context, fantasyTeamID, contestantID uuid.UUID) error
	DeleteTeamRoster(ctx context.Context, fantasyTeamID uuid.UUID) error
}

// FantasyTeamsRepository defines what the app layer needs from the fantasy teams repository for validation
type FantasyTeamsRepository interface {
	GetFantasyTeam(ctx context.Context, id uuid.UUID) (*models.FantasyTeam, error)
}

// ContestantsRepository defines what the app layer needs from the contestants repository for validation
type ContestantsRepository interface {
	GetContestant(ctx context.Context, id uuid.UUID) (*models.Contestant, error)
}

// App handles roster business logic
type App struct {
	repo             RosterRepository
	fantasyTeamsRepo FantasyTeamsRepository
	contestantsRepo  ContestantsRepository
}

// NewApp creates a new roster App
func NewApp(repo RosterRepository, fantasyTeamsRepo FantasyTeamsRepository, contestantsRepo ContestantsRepository) *App {
	return &App{
		repo:             repo,
		fantasyTeamsRepo: fantasyTeamsRepo,
		contestantsRepo:  contestantsRepo,
	}
}

// CreateRosterEntry adds a contestant to a fantasy team's roster with validation
func (a *App) CreateRosterEntry(ctx context.Context, req CreateRosterEntryRequest) (*models.Roster, error) {
	if err := a.validateCreateRosterEntryRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Verify fantasy team exists
	_, err := a.fantasyTeamsRepo.GetFantasyTeam(ctx, req.FantasyTeamID)
	if err != nil {
		return nil, fmt.Errorf("fantasy team not found: %w", err)
	}

	// Verify contestant exists
	_, err = a.contestantsRepo.GetContestant(ctx, req.ContestantID)
	if err != nil {
		return nil, fmt.Errorf("contestant not found: %w", err)
	}

	// Check if contestant is already on this team's roster
	existing, err := a.repo.GetContestantOnRoster(ctx, req.FantasyTeamID, req.ContestantID)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("contestant is already on this team's roster")
	}

	roster, err := a.repo.CreateRosterEntry(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create roster entry: %w", err)
	}

	log.Printf("Added contestant %s to team %s roster via %s", roster.ContestantID, roster.FantasyTeamID, roster.AcquisitionType)
	return roster, nil
}

// AppendContestant records a drafted contestant on the team's roster. It backs
// the draft engine's roster store; the entry is always a DRAFT acquisition.
func (a *App) AppendContestant(ctx context.Context, teamID, contestantID uuid.UUID) error {
	_, err := a.CreateRosterEntry(ctx, CreateRosterEntryRequest{
		FantasyTeamID:   teamID,
		ContestantID:    contestantID,
		AcquisitionType: models.AcquisitionTypeDraft,
	})
	return err
}

// GetRoster retrieves a roster entry by ID
func (a *App) GetRoster(ctx context.Context, id uuid.UUID) (*models.Roster, error) {
	roster, err := a.repo.GetRoster(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster entry: %w", err)
	}
	return roster, nil
}

// GetRosterByFantasyTeam retrieves all contestants on a team's roster
func (a *App) GetRosterByFantasyTeam(ctx context.Context, fantasyTeamID uuid.UUID) ([]models.Roster, error) {
	// Verify fantasy team exists
	_, err := a.fantasyTeamsRepo.GetFantasyTeam(ctx, fantasyTeamID)
	if err != nil {
		return nil, fmt.Errorf("fantasy team not found: %w", err)
	}

	rosters, err := a.repo.GetRosterByFantasyTeam(ctx, fantasyTeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster by fantasy team: %w", err)
	}
	return rosters, nil
}

// GetRosterByAcquisitionType retrieves roster entries by how they were acquired
func (a *App) GetRosterByAcquisitionType(ctx context.Context, fantasyTeamID uuid.UUID, acquisitionType models.AcquisitionType) ([]models.Roster, error) {
	if err := a.validateAcquisitionType(acquisitionType); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Verify fantasy team exists
	_, err := a.fantasyTeamsRepo.GetFantasyTeam(ctx, fantasyTeamID)
	if err != nil {
		return nil, fmt.Errorf("fantasy team not found: %w", err)
	}

	rosters, err := a.repo.GetRosterByAcquisitionType(ctx, fantasyTeamID, acquisitionType)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster by acquisition type: %w", err)
	}
	return rosters, nil
}

// UpdateRosterNotes updates the free-form notes on a roster entry
func (a *App) UpdateRosterNotes(ctx context.Context, id uuid.UUID, req UpdateRosterNotesRequest) (*models.Roster, error) {
	// Verify roster entry exists
	_, err := a.repo.GetRoster(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("roster entry not found: %w", err)
	}

	roster, err := a.repo.UpdateRosterNotes(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update roster notes: %w", err)
	}

	log.Printf("Updated roster notes: %s", roster.ID)
	return roster, nil
}

// DeleteRosterEntry removes a specific roster entry
func (a *App) DeleteRosterEntry(ctx context.Context, id uuid.UUID) error {
	// Verify roster entry exists
	roster, err := a.repo.GetRoster(ctx, id)
	if err != nil {
		return fmt.Errorf("roster entry not found: %w", err)
	}

	if err := a.repo.DeleteRosterEntry(ctx, id); err != nil {
		return fmt.Errorf("failed to delete roster entry: %w", err)
	}

	log.Printf("Deleted roster entry: contestant %s from team %s", roster.ContestantID, roster.FantasyTeamID)
	return nil
}

// DeleteContestantFromRoster removes a contestant from a team's roster
func (a *App) DeleteContestantFromRoster(ctx context.Context, fantasyTeamID, contestantID uuid.UUID) error {
	// Verify contestant is on the roster
	_, err := a.repo.GetContestantOnRoster(ctx, fantasyTeamID, contestantID)
	if err != nil {
		return fmt.Errorf("contestant not found on roster: %w", err)
	}

	if err := a.repo.DeleteContestantFromRoster(ctx, fantasyTeamID, contestantID); err != nil {
		return fmt.Errorf("failed to delete contestant from roster: %w", err)
	}

	log.Printf("Deleted contestant %s from team %s roster", contestantID, fantasyTeamID)
	return nil
}

// DeleteTeamRoster clears an entire team's roster
func (a *App) DeleteTeamRoster(ctx context.Context, fantasyTeamID uuid.UUID) error {
	// Verify fantasy team exists
	team, err := a.fantasyTeamsRepo.GetFantasyTeam(ctx, fantasyTeamID)
	if err != nil {
		return fmt.Errorf("fantasy team not found: %w", err)
	}

	if err := a.repo.DeleteTeamRoster(ctx, fantasyTeamID); err != nil {
		return fmt.Errorf("failed to delete team roster: %w", err)
	}

	log.Printf("Deleted entire roster for team: %s", team.Name)
	return nil
}

func (a *App) validateCreateRosterEntryRequest(req CreateRosterEntryRequest) error {
	if req.FantasyTeamID == uuid.Nil {
		return fmt.Errorf("fantasy_team_id is required")
	}
	if req.ContestantID == uuid.Nil {
		return fmt.Errorf("contestant_id is required")
	}
	if err := a.validateAcquisitionType(req.AcquisitionType); err != nil {
		return err
	}
	return nil
}

func (a *App) validateAcquisitionType(acquisitionType models.AcquisitionType) error {
	switch acquisitionType {
	case models.AcquisitionTypeDraft, models.AcquisitionTypeTrade:
		return nil
	default:
		return fmt.Errorf("invalid acquisition type: %s", acquisitionType)
	}
}
