package draft

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rosepool/rosepool/go/internal/models"
)

// DraftRepository defines what the app layer needs from the draft repository.
// UpdateDraftIf is a conditional write: it persists the draft only when the
// stored row still matches the expected pick/status pair the mutation was
// computed from, and returns a ConflictError otherwise.
type DraftRepository interface {
	CreateDraft(ctx context.Context, req CreateDraftRequest) (*models.Draft, error)
	GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error)
	GetDraftByLeague(ctx context.Context, leagueID uuid.UUID) (*models.Draft, error)
	UpdateDraftIf(ctx context.Context, d *models.Draft, expectedPick int, expectedStatus models.DraftStatus) (*models.Draft, error)
	DeleteDraft(ctx context.Context, id uuid.UUID) error
	FetchNextDeadline(ctx context.Context) (*NextDeadline, error)
	FetchDraftsDueForPick(ctx context.Context, limit int32) ([]uuid.UUID, error)
}

// CreateDraftRequest carries the fields persisted for a new draft.
type CreateDraftRequest struct {
	ID       uuid.UUID
	LeagueID uuid.UUID
	Settings models.DraftSettings
}

// NextDeadline is the earliest pick deadline across in-progress drafts.
type NextDeadline struct {
	DraftID  uuid.UUID
	Deadline *time.Time
}

// SettingsOverride holds caller-supplied partial settings merged onto the
// defaults at creation.
type SettingsOverride struct {
	PickTimeLimitSec *int                `json:"pick_time_limit_sec,omitempty"`
	DraftFormat      *models.DraftFormat `json:"draft_format,omitempty"`
	AutoPickEnabled  *bool               `json:"auto_pick_enabled,omitempty"`
}

// Status is the UI-facing summary of a draft.
type Status struct {
	IsActive       bool       `json:"is_active"`
	CurrentTeamID  *uuid.UUID `json:"current_team_id,omitempty"`
	CurrentRound   int        `json:"current_round"`
	TotalRounds    int        `json:"total_rounds"`
	PicksRemaining int        `json:"picks_remaining"`
}

// App owns the draft lifecycle: create, start, pick, auto-advance, delete.
// It holds no draft state between calls; every mutation re-reads the persisted
// snapshot, applies a mutation function, and writes back conditionally.
type App struct {
	repo        DraftRepository
	teams       TeamDirectory
	contestants ContestantDirectory
	rosters     TeamRosterStore
	dispatcher  NotificationDispatcher
	validator   *PickValidator
	clock       clockwork.Clock
	rng         *rand.Rand
}

// NewApp creates a new draft App.
func NewApp(repo DraftRepository, teams TeamDirectory, contestants ContestantDirectory, rosters TeamRosterStore, dispatcher NotificationDispatcher) *App {
	return &App{
		repo:        repo,
		teams:       teams,
		contestants: contestants,
		rosters:     rosters,
		dispatcher:  dispatcher,
		validator:   NewPickValidator(contestants),
		clock:       clockwork.NewRealClock(),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithClock swaps the clock; tests pass a clockwork.FakeClock.
func (a *App) WithClock(clock clockwork.Clock) *App {
	a.clock = clock
	return a
}

// CreateDraft creates a draft in NOT_STARTED for a league that has at least
// one team. Settings are defaults merged with the caller's overrides and are
// fixed for the life of the draft.
func (a *App) CreateDraft(ctx context.Context, leagueID uuid.UUID, override *SettingsOverride) (*models.Draft, error) {
	if leagueID == uuid.Nil {
		return nil, NewValidationError("league_id is required")
	}

	settings := models.DefaultDraftSettings()
	if override != nil {
		if override.PickTimeLimitSec != nil {
			settings.PickTimeLimitSec = *override.PickTimeLimitSec
		}
		if override.DraftFormat != nil {
			settings.DraftFormat = *override.DraftFormat
		}
		if override.AutoPickEnabled != nil {
			settings.AutoPickEnabled = *override.AutoPickEnabled
		}
	}
	if err := validateSettings(settings); err != nil {
		return nil, err
	}

	var draft *models.Draft
	err := withRetry(ctx, func() error {
		teamIDs, err := a.teams.ListTeams(ctx, leagueID)
		if err != nil {
			return fmt.Errorf("failed to list league teams: %w", err)
		}
		if len(teamIDs) == 0 {
			return NewValidationError("League must have teams before creating a draft")
		}

		draft, err = a.repo.CreateDraft(ctx, CreateDraftRequest{
			ID:       uuid.New(),
			LeagueID: leagueID,
			Settings: settings,
		})
		if err != nil {
			return fmt.Errorf("failed to create draft: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Created %s draft %s for league %s", draft.Settings.DraftFormat, draft.ID, leagueID)
	return draft, nil
}

// StartDraft moves a NOT_STARTED draft into IN_PROGRESS, freezing the draft
// order as a uniform random permutation of the league's teams at start time.
func (a *App) StartDraft(ctx context.Context, draftID uuid.UUID) (*models.Draft, error) {
	var updated *models.Draft
	err := withRetry(ctx, func() error {
		d, err := a.repo.GetDraft(ctx, draftID)
		if err != nil {
			return wrapNotFound("draft", err)
		}
		if d.Status != models.DraftStatusNotStarted {
			return NewStateError("Draft must be in not_started state to start")
		}

		teamIDs, err := a.teams.ListTeams(ctx, d.LeagueID)
		if err != nil {
			return fmt.Errorf("failed to list league teams: %w", err)
		}
		if len(teamIDs) == 0 {
			return NewValidationError("League must have teams before starting a draft")
		}

		order := make([]uuid.UUID, len(teamIDs))
		copy(order, teamIDs)
		a.rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		now := a.clock.Now().UTC()
		d.DraftOrder = order
		d.Status = models.DraftStatusInProgress
		d.CurrentPick = 1
		d.CurrentTurnStartedAt = &now

		updated, err = a.repo.UpdateDraftIf(ctx, d, 0, models.DraftStatusNotStarted)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := a.dispatcher.OnDraftStarted(ctx, updated.LeagueID); err != nil {
		log.Printf("Failed to emit DraftStarted event: %v", err)
	}

	log.Printf("Draft %s started with %d teams", updated.ID, len(updated.DraftOrder))
	return updated, nil
}

// MakePick records a pick for the team whose turn it is. The pick either
// advances the turn or completes the draft; either way the write is
// conditional on the snapshot the validation ran against, so two callers
// racing for the same slot produce exactly one appended pick.
func (a *App) MakePick(ctx context.Context, draftID, teamID, contestantID uuid.UUID) (*models.Draft, error) {
	var (
		updated   *models.Draft
		completed bool
	)
	err := withRetry(ctx, func() error {
		d, err := a.repo.GetDraft(ctx, draftID)
		if err != nil {
			return wrapNotFound("draft", err)
		}

		if err := a.validator.Validate(ctx, d, teamID, contestantID); err != nil {
			return err
		}

		teamIDs, err := a.teams.ListTeams(ctx, d.LeagueID)
		if err != nil {
			return fmt.Errorf("failed to list league teams: %w", err)
		}

		now := a.clock.Now().UTC()
		expectedPick, expectedStatus := d.CurrentPick, d.Status

		picks := make([]models.DraftPick, len(d.Picks), len(d.Picks)+1)
		copy(picks, d.Picks)
		picks = append(picks, models.DraftPick{
			PickNumber:   d.CurrentPick,
			TeamID:       teamID,
			ContestantID: contestantID,
			PickedAt:     now,
		})
		d.Picks = picks

		completed = IsComplete(picks, teamIDs)
		if completed {
			d.Status = models.DraftStatusCompleted
			d.CurrentTurnStartedAt = nil
		} else {
			d.CurrentPick++
			d.CurrentTurnStartedAt = &now
		}

		updated, err = a.repo.UpdateDraftIf(ctx, d, expectedPick, expectedStatus)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Roster sync is best-effort and idempotent; rosters can be re-derived
	// from picks if this fails.
	if err := a.rosters.AppendContestant(ctx, teamID, contestantID); err != nil {
		log.Printf("Failed to append contestant %s to team %s roster: %v", contestantID, teamID, err)
	}

	a.emitPickEvents(ctx, updated, teamID, contestantID, completed)

	log.Printf("Team %s drafted contestant %s (pick %d)", teamID, contestantID, len(updated.Picks))
	return updated, nil
}

// AutoAdvance forfeits the active turn after its timer elapsed without a
// pick. No DraftPick is appended; the slot is simply skipped. Any caller that
// observes the deadline has passed may invoke it.
func (a *App) AutoAdvance(ctx context.Context, draftID uuid.UUID) (*models.Draft, error) {
	var (
		updated   *models.Draft
		skipped   *uuid.UUID
		completed bool
	)
	err := withRetry(ctx, func() error {
		d, err := a.repo.GetDraft(ctx, draftID)
		if err != nil {
			return wrapNotFound("draft", err)
		}
		if d.Status != models.DraftStatusInProgress {
			return NewStateError("Draft must be in progress to auto-advance")
		}

		teamIDs, err := a.teams.ListTeams(ctx, d.LeagueID)
		if err != nil {
			return fmt.Errorf("failed to list league teams: %w", err)
		}

		skipped = CurrentTeamID(d)
		expectedPick, expectedStatus := d.CurrentPick, d.Status

		// Defensive: a draft whose picks are already complete just closes.
		completed = IsComplete(d.Picks, teamIDs)
		if completed {
			d.Status = models.DraftStatusCompleted
			d.CurrentTurnStartedAt = nil
		} else {
			now := a.clock.Now().UTC()
			d.CurrentPick++
			d.CurrentTurnStartedAt = &now
		}

		updated, err = a.repo.UpdateDraftIf(ctx, d, expectedPick, expectedStatus)
		return err
	})
	if err != nil {
		return nil, err
	}

	if skipped != nil {
		if err := a.dispatcher.OnTurnSkipped(ctx, updated.LeagueID, *skipped); err != nil {
			log.Printf("Failed to emit TurnSkipped event: %v", err)
		}
	}
	a.emitTurnOrCompletion(ctx, updated, completed)

	log.Printf("Draft %s auto-advanced past pick %d", updated.ID, updated.CurrentPick-1)
	return updated, nil
}

// DeleteDraft removes a draft. Administrative: collaborators listen for the
// DraftDeleted event to invalidate client state and clean up rosters.
func (a *App) DeleteDraft(ctx context.Context, draftID uuid.UUID) error {
	var leagueID uuid.UUID
	err := withRetry(ctx, func() error {
		d, err := a.repo.GetDraft(ctx, draftID)
		if err != nil {
			return wrapNotFound("draft", err)
		}
		leagueID = d.LeagueID

		if err := a.repo.DeleteDraft(ctx, draftID); err != nil {
			return fmt.Errorf("failed to delete draft: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := a.dispatcher.OnDraftDeleted(ctx, leagueID); err != nil {
		log.Printf("Failed to emit DraftDeleted event: %v", err)
	}

	log.Printf("Deleted draft %s", draftID)
	return nil
}

// GetDraft retrieves a draft by ID.
func (a *App) GetDraft(ctx context.Context, draftID uuid.UUID) (*models.Draft, error) {
	var d *models.Draft
	err := withRetry(ctx, func() error {
		var err error
		d, err = a.repo.GetDraft(ctx, draftID)
		if err != nil {
			return wrapNotFound("draft", err)
		}
		return nil
	})
	return d, err
}

// GetDraftByLeague retrieves the league's current (newest) draft.
func (a *App) GetDraftByLeague(ctx context.Context, leagueID uuid.UUID) (*models.Draft, error) {
	var d *models.Draft
	err := withRetry(ctx, func() error {
		var err error
		d, err = a.repo.GetDraftByLeague(ctx, leagueID)
		if err != nil {
			return wrapNotFound("draft", err)
		}
		return nil
	})
	return d, err
}

// DraftStatus summarizes a draft for status queries.
func (a *App) DraftStatus(d *models.Draft) Status {
	numTeams := len(d.DraftOrder)
	remaining := numTeams*models.PerTeamLimit - len(d.Picks)
	if remaining < 0 {
		remaining = 0
	}

	return Status{
		IsActive:       d.Status == models.DraftStatusInProgress,
		CurrentTeamID:  CurrentTeamID(d),
		CurrentRound:   CurrentRound(d),
		TotalRounds:    models.PerTeamLimit,
		PicksRemaining: remaining,
	}
}

// FetchNextDeadline exposes the earliest pick deadline for the orchestrator.
func (a *App) FetchNextDeadline(ctx context.Context) (*NextDeadline, error) {
	return a.repo.FetchNextDeadline(ctx)
}

// FetchDraftsDueForPick exposes overdue drafts for the orchestrator.
func (a *App) FetchDraftsDueForPick(ctx context.Context, limit int32) ([]uuid.UUID, error) {
	if limit <= 0 {
		return nil, NewValidationError("limit must be greater than 0")
	}
	return a.repo.FetchDraftsDueForPick(ctx, limit)
}

func (a *App) emitPickEvents(ctx context.Context, d *models.Draft, teamID, contestantID uuid.UUID, completed bool) {
	if err := a.dispatcher.OnPickMade(ctx, d.LeagueID, teamID, contestantID); err != nil {
		log.Printf("Failed to emit PickMade event: %v", err)
	}
	a.emitTurnOrCompletion(ctx, d, completed)
}

func (a *App) emitTurnOrCompletion(ctx context.Context, d *models.Draft, completed bool) {
	if completed {
		if err := a.dispatcher.OnDraftCompleted(ctx, d.LeagueID); err != nil {
			log.Printf("Failed to emit DraftCompleted event: %v", err)
		}
		return
	}

	next := CurrentTeamID(d)
	deadline := d.PickDeadline()
	if next == nil || deadline == nil {
		return
	}
	if err := a.dispatcher.OnTurnChanged(ctx, d.LeagueID, *next, deadline.UnixMilli()); err != nil {
		log.Printf("Failed to emit TurnChanged event: %v", err)
	}
}

func validateSettings(s models.DraftSettings) error {
	if s.PickTimeLimitSec <= 0 {
		return NewValidationError("pick_time_limit_sec must be greater than 0")
	}
	switch s.DraftFormat {
	case models.DraftFormatSnake, models.DraftFormatLinear:
	default:
		return NewValidationError(fmt.Sprintf("invalid draft format: %s", s.DraftFormat))
	}
	return nil
}
