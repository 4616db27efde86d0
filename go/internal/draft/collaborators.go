package draft

import (
	"context"

	"github.com/google/uuid"
)

// TeamDirectory is the league's authoritative team listing, consumed by
// CreateDraft, StartDraft, and completion checks.
type TeamDirectory interface {
	ListTeams(ctx context.Context, leagueID uuid.UUID) ([]uuid.UUID, error)
}

// ContestantDirectory answers league-membership questions about contestants.
type ContestantDirectory interface {
	BelongsToLeague(ctx context.Context, contestantID, leagueID uuid.UUID) (bool, error)
	// ListAvailableContestants returns contestants in the league that do not
	// appear in any of the given picked IDs. Used by auto-pick.
	ListAvailableContestants(ctx context.Context, leagueID uuid.UUID, picked []uuid.UUID) ([]uuid.UUID, error)
}

// TeamRosterStore appends drafted contestants to team rosters. Failures are
// best-effort: a pick is never rolled back because the roster write failed,
// and callers may re-derive rosters from the draft's picks.
type TeamRosterStore interface {
	AppendContestant(ctx context.Context, teamID, contestantID uuid.UUID) error
}

// NotificationDispatcher receives the events the lifecycle emits. Delivery is
// external; implementations must not block the picking protocol.
type NotificationDispatcher interface {
	OnDraftStarted(ctx context.Context, leagueID uuid.UUID) error
	OnTurnChanged(ctx context.Context, leagueID, teamID uuid.UUID, deadlineMs int64) error
	OnTurnSkipped(ctx context.Context, leagueID, teamID uuid.UUID) error
	OnPickMade(ctx context.Context, leagueID, teamID, contestantID uuid.UUID) error
	OnDraftCompleted(ctx context.Context, leagueID uuid.UUID) error
	OnDraftDeleted(ctx context.Context, leagueID uuid.UUID) error
}

// NopDispatcher discards all notifications.
type NopDispatcher struct{}

func (NopDispatcher) OnDraftStarted(ctx context.Context, leagueID uuid.UUID) error { return nil }
func (NopDispatcher) OnTurnChanged(ctx context.Context, leagueID, teamID uuid.UUID, deadlineMs int64) error {
	return nil
}
func (NopDispatcher) OnTurnSkipped(ctx context.Context, leagueID, teamID uuid.UUID) error { return nil }
func (NopDispatcher) OnPickMade(ctx context.Context, leagueID, teamID, contestantID uuid.UUID) error {
	return nil
}
func (NopDispatcher) OnDraftCompleted(ctx context.Context, leagueID uuid.UUID) error { return nil }
func (NopDispatcher) OnDraftDeleted(ctx context.Context, leagueID uuid.UUID) error   { return nil }
