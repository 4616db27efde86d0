package draft

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rosepool/rosepool/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrchestratorFixture(t *testing.T, numTeams int) (*fixture, *Orchestrator) {
	t.Helper()

	f := newFixture(t, numTeams)
	strat := NewRandomStrategy(&fakeContestants{leagueID: f.leagueID, pool: f.pool})
	o := NewOrchestrator(f.app, strat, 10).WithClock(f.clock)
	return f, o
}

func TestHandleTimeoutForfeitsExpiredTurn(t *testing.T) {
	f, o := newOrchestratorFixture(t, 3)
	ctx := context.Background()

	d := f.startedDraft(t)
	f.clock.Advance(time.Duration(d.Settings.PickTimeLimitSec)*time.Second + time.Second)

	require.NoError(t, o.handleTimeout(ctx, d.ID))

	after, err := f.app.GetDraft(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, after.CurrentPick)
	assert.Empty(t, after.Picks, "auto-pick is disabled, the slot is forfeited")
}

func TestHandleTimeoutAutoPicks(t *testing.T) {
	f, o := newOrchestratorFixture(t, 3)
	ctx := context.Background()

	auto := true
	created, err := f.app.CreateDraft(ctx, f.leagueID, &SettingsOverride{AutoPickEnabled: &auto})
	require.NoError(t, err, "CreateDraft error")
	d, err := f.app.StartDraft(ctx, created.ID)
	require.NoError(t, err, "StartDraft error")

	onClock := CurrentTeamID(d)
	require.NotNil(t, onClock)
	f.clock.Advance(time.Duration(d.Settings.PickTimeLimitSec)*time.Second + time.Second)

	require.NoError(t, o.handleTimeout(ctx, d.ID))

	after, err := f.app.GetDraft(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, after.CurrentPick)
	require.Len(t, after.Picks, 1, "auto-pick must append a real pick")
	assert.Equal(t, *onClock, after.Picks[0].TeamID)
	assert.Contains(t, f.pool, after.Picks[0].ContestantID)
}

func TestHandleTimeoutSkipsFreshTurn(t *testing.T) {
	f, o := newOrchestratorFixture(t, 3)
	ctx := context.Background()

	d := f.startedDraft(t)
	// The deadline has not passed; a pick must have landed since the due
	// query, so the timeout is a no-op.
	require.NoError(t, o.handleTimeout(ctx, d.ID))

	after, err := f.app.GetDraft(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, after.CurrentPick)
}

func TestHandleTimeoutIgnoresFinishedDraft(t *testing.T) {
	f, o := newOrchestratorFixture(t, 2)

	d := playToCompletion(t, f)
	require.NoError(t, o.handleTimeout(context.Background(), d.ID), "finished drafts are not an error")
}

func TestLostRace(t *testing.T) {
	assert.True(t, lostRace(NewConflictError("x")))
	assert.True(t, lostRace(NewTurnError("x")))
	assert.True(t, lostRace(NewStateError("x")))
	assert.False(t, lostRace(NewValidationError("x")))
	assert.False(t, lostRace(assert.AnError))
	assert.False(t, lostRace(nil))
}

func TestFetchDraftsDueForPickLimit(t *testing.T) {
	f := newFixture(t, 2)

	_, err := f.app.FetchDraftsDueForPick(context.Background(), 0)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestRandomStrategyExcludesDrafted(t *testing.T) {
	leagueID := uuid.New()
	a, b := uuid.New(), uuid.New()
	pool := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	strat := NewRandomStrategy(&fakeContestants{leagueID: leagueID, pool: pool})

	d := draftWithOrder(models.DraftFormatSnake, []uuid.UUID{a, b}, 2)
	d.LeagueID = leagueID
	d.Picks = []models.DraftPick{{PickNumber: 1, TeamID: a, ContestantID: pool[0]}}

	for i := 0; i < 20; i++ {
		teamID, contestantID, err := strat.SelectPick(context.Background(), d)
		require.NoError(t, err, "SelectPick error")
		assert.Equal(t, b, teamID, "pick 2 of a two-team snake belongs to team B")
		assert.NotEqual(t, pool[0], contestantID, "drafted contestants are never re-picked")
		assert.Contains(t, pool, contestantID)
	}
}

func TestRandomStrategyPoolExhausted(t *testing.T) {
	leagueID := uuid.New()
	a, b := uuid.New(), uuid.New()
	pool := []uuid.UUID{uuid.New()}

	strat := NewRandomStrategy(&fakeContestants{leagueID: leagueID, pool: pool})

	d := draftWithOrder(models.DraftFormatSnake, []uuid.UUID{a, b}, 2)
	d.LeagueID = leagueID
	d.Picks = []models.DraftPick{{PickNumber: 1, TeamID: a, ContestantID: pool[0]}}

	_, _, err := strat.SelectPick(context.Background(), d)
	assert.Error(t, err, "an exhausted pool cannot produce a pick")
}
