package draft

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rosepool/rosepool/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory DraftRepository with the same conditional-write
// semantics as the Postgres one.
type fakeRepo struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]*models.Draft
	clock  clockwork.Clock

	// beforeUpdate runs inside UpdateDraftIf before the expected-state check,
	// letting tests interleave a competing write.
	beforeUpdate func()
}

func newFakeRepo(clock clockwork.Clock) *fakeRepo {
	return &fakeRepo{
		drafts: make(map[uuid.UUID]*models.Draft),
		clock:  clock,
	}
}

func copyDraft(d *models.Draft) *models.Draft {
	cp := *d
	cp.DraftOrder = append([]uuid.UUID(nil), d.DraftOrder...)
	cp.Picks = append([]models.DraftPick(nil), d.Picks...)
	if d.CurrentTurnStartedAt != nil {
		ts := *d.CurrentTurnStartedAt
		cp.CurrentTurnStartedAt = &ts
	}
	return &cp
}

func (r *fakeRepo) CreateDraft(ctx context.Context, req CreateDraftRequest) (*models.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now().UTC()
	d := &models.Draft{
		ID:          req.ID,
		LeagueID:    req.LeagueID,
		Status:      models.DraftStatusNotStarted,
		CurrentPick: 0,
		DraftOrder:  []uuid.UUID{},
		Picks:       []models.DraftPick{},
		Settings:    req.Settings,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.drafts[d.ID] = d
	return copyDraft(d), nil
}

func (r *fakeRepo) GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drafts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return copyDraft(d), nil
}

func (r *fakeRepo) GetDraftByLeague(ctx context.Context, leagueID uuid.UUID) (*models.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var newest *models.Draft
	for _, d := range r.drafts {
		if d.LeagueID != leagueID {
			continue
		}
		if newest == nil || d.CreatedAt.After(newest.CreatedAt) {
			newest = d
		}
	}
	if newest == nil {
		return nil, sql.ErrNoRows
	}
	return copyDraft(newest), nil
}

func (r *fakeRepo) UpdateDraftIf(ctx context.Context, d *models.Draft, expectedPick int, expectedStatus models.DraftStatus) (*models.Draft, error) {
	if r.beforeUpdate != nil {
		r.beforeUpdate()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.drafts[d.ID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if stored.CurrentPick != expectedPick || stored.Status != expectedStatus {
		return nil, NewConflictError("Draft was modified concurrently, refetch and retry")
	}

	updated := copyDraft(d)
	updated.UpdatedAt = r.clock.Now().UTC()
	r.drafts[d.ID] = updated
	return copyDraft(updated), nil
}

func (r *fakeRepo) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, id)
	return nil
}

func (r *fakeRepo) FetchNextDeadline(ctx context.Context) (*NextDeadline, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var next *NextDeadline
	for _, d := range r.drafts {
		deadline := d.PickDeadline()
		if deadline == nil {
			continue
		}
		if next == nil || deadline.Before(*next.Deadline) {
			next = &NextDeadline{DraftID: d.ID, Deadline: deadline}
		}
	}
	if next == nil {
		return nil, sql.ErrNoRows
	}
	return next, nil
}

func (r *fakeRepo) FetchDraftsDueForPick(ctx context.Context, limit int32) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ids []uuid.UUID
	for _, d := range r.drafts {
		deadline := d.PickDeadline()
		if deadline == nil || r.clock.Now().Before(*deadline) {
			continue
		}
		ids = append(ids, d.ID)
		if int32(len(ids)) >= limit {
			break
		}
	}
	return ids, nil
}

type fakeTeams struct {
	teams []uuid.UUID
}

func (f *fakeTeams) ListTeams(ctx context.Context, leagueID uuid.UUID) ([]uuid.UUID, error) {
	return append([]uuid.UUID(nil), f.teams...), nil
}

type fakeContestants struct {
	leagueID uuid.UUID
	pool     []uuid.UUID
}

func (f *fakeContestants) BelongsToLeague(ctx context.Context, contestantID, leagueID uuid.UUID) (bool, error) {
	if leagueID != f.leagueID {
		return false, nil
	}
	for _, id := range f.pool {
		if id == contestantID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeContestants) ListAvailableContestants(ctx context.Context, leagueID uuid.UUID, picked []uuid.UUID) ([]uuid.UUID, error) {
	taken := make(map[uuid.UUID]bool, len(picked))
	for _, id := range picked {
		taken[id] = true
	}
	var available []uuid.UUID
	for _, id := range f.pool {
		if !taken[id] {
			available = append(available, id)
		}
	}
	return available, nil
}

type recordingRoster struct {
	mu      sync.Mutex
	entries [][2]uuid.UUID
}

func (r *recordingRoster) AppendContestant(ctx context.Context, teamID, contestantID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, [2]uuid.UUID{teamID, contestantID})
	return nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []string
}

func (d *recordingDispatcher) record(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, name)
}

func (d *recordingDispatcher) recorded() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.events...)
}

func (d *recordingDispatcher) OnDraftStarted(ctx context.Context, leagueID uuid.UUID) error {
	d.record("DraftStarted")
	return nil
}

func (d *recordingDispatcher) OnTurnChanged(ctx context.Context, leagueID, teamID uuid.UUID, deadlineMs int64) error {
	d.record("TurnChanged")
	return nil
}

func (d *recordingDispatcher) OnTurnSkipped(ctx context.Context, leagueID, teamID uuid.UUID) error {
	d.record("TurnSkipped")
	return nil
}

func (d *recordingDispatcher) OnPickMade(ctx context.Context, leagueID, teamID, contestantID uuid.UUID) error {
	d.record("PickMade")
	return nil
}

func (d *recordingDispatcher) OnDraftCompleted(ctx context.Context, leagueID uuid.UUID) error {
	d.record("DraftCompleted")
	return nil
}

func (d *recordingDispatcher) OnDraftDeleted(ctx context.Context, leagueID uuid.UUID) error {
	d.record("DraftDeleted")
	return nil
}

type fixture struct {
	app        *App
	repo       *fakeRepo
	clock      *clockwork.FakeClock
	leagueID   uuid.UUID
	teams      []uuid.UUID
	pool       []uuid.UUID
	roster     *recordingRoster
	dispatcher *recordingDispatcher
}

func newFixture(t *testing.T, numTeams int) *fixture {
	t.Helper()

	clock := clockwork.NewFakeClock()
	leagueID := uuid.New()

	teams := make([]uuid.UUID, numTeams)
	for i := range teams {
		teams[i] = uuid.New()
	}
	pool := make([]uuid.UUID, numTeams*models.PerTeamLimit+2)
	for i := range pool {
		pool[i] = uuid.New()
	}

	repo := newFakeRepo(clock)
	roster := &recordingRoster{}
	dispatcher := &recordingDispatcher{}
	app := NewApp(
		repo,
		&fakeTeams{teams: teams},
		&fakeContestants{leagueID: leagueID, pool: pool},
		roster,
		dispatcher,
	).WithClock(clock)

	return &fixture{
		app:        app,
		repo:       repo,
		clock:      clock,
		leagueID:   leagueID,
		teams:      teams,
		pool:       pool,
		roster:     roster,
		dispatcher: dispatcher,
	}
}

func (f *fixture) startedDraft(t *testing.T) *models.Draft {
	t.Helper()

	ctx := context.Background()
	created, err := f.app.CreateDraft(ctx, f.leagueID, nil)
	require.NoError(t, err, "CreateDraft error")
	started, err := f.app.StartDraft(ctx, created.ID)
	require.NoError(t, err, "StartDraft error")
	return started
}

func TestCreateDraftDefaults(t *testing.T) {
	f := newFixture(t, 3)

	d, err := f.app.CreateDraft(context.Background(), f.leagueID, nil)
	require.NoError(t, err, "CreateDraft error")

	assert.Equal(t, models.DraftStatusNotStarted, d.Status)
	assert.Equal(t, 0, d.CurrentPick)
	assert.Empty(t, d.DraftOrder, "order is frozen at start, not creation")
	assert.Equal(t, models.DefaultDraftSettings(), d.Settings)
}

func TestCreateDraftSettingsOverride(t *testing.T) {
	f := newFixture(t, 3)

	limit := 30
	format := models.DraftFormatLinear
	auto := true
	d, err := f.app.CreateDraft(context.Background(), f.leagueID, &SettingsOverride{
		PickTimeLimitSec: &limit,
		DraftFormat:      &format,
		AutoPickEnabled:  &auto,
	})
	require.NoError(t, err, "CreateDraft error")

	assert.Equal(t, 30, d.Settings.PickTimeLimitSec)
	assert.Equal(t, models.DraftFormatLinear, d.Settings.DraftFormat)
	assert.True(t, d.Settings.AutoPickEnabled)
}

func TestCreateDraftRejectsBadSettings(t *testing.T) {
	f := newFixture(t, 3)

	zero := 0
	_, err := f.app.CreateDraft(context.Background(), f.leagueID, &SettingsOverride{PickTimeLimitSec: &zero})
	assert.Equal(t, KindValidation, KindOf(err), "zero time limit must fail validation")

	bogus := models.DraftFormat("ROUND_ROBIN")
	_, err = f.app.CreateDraft(context.Background(), f.leagueID, &SettingsOverride{DraftFormat: &bogus})
	assert.Equal(t, KindValidation, KindOf(err), "unknown format must fail validation")
}

func TestCreateDraftRequiresTeams(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.app.CreateDraft(context.Background(), f.leagueID, nil)
	assert.Equal(t, KindValidation, KindOf(err), "empty league must fail validation")
}

func TestStartDraftFreezesOrder(t *testing.T) {
	f := newFixture(t, 4)

	d := f.startedDraft(t)

	assert.Equal(t, models.DraftStatusInProgress, d.Status)
	assert.Equal(t, 1, d.CurrentPick)
	require.NotNil(t, d.CurrentTurnStartedAt, "turn timer must start")
	assert.ElementsMatch(t, f.teams, d.DraftOrder, "order must be a permutation of the league's teams")
	assert.Equal(t, []string{"DraftStarted"}, f.dispatcher.recorded())
}

func TestStartDraftTwiceRejected(t *testing.T) {
	f := newFixture(t, 2)

	d := f.startedDraft(t)
	_, err := f.app.StartDraft(context.Background(), d.ID)
	assert.Equal(t, KindState, KindOf(err), "second start must fail on state")
}

func TestStartDraftNotFound(t *testing.T) {
	f := newFixture(t, 2)

	_, err := f.app.StartDraft(context.Background(), uuid.New())
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestMakePickAdvancesTurn(t *testing.T) {
	f := newFixture(t, 3)
	ctx := context.Background()

	d := f.startedDraft(t)
	onClock := CurrentTeamID(d)
	require.NotNil(t, onClock)

	f.clock.Advance(10 * time.Second)
	updated, err := f.app.MakePick(ctx, d.ID, *onClock, f.pool[0])
	require.NoError(t, err, "MakePick error")

	assert.Equal(t, 2, updated.CurrentPick)
	require.Len(t, updated.Picks, 1)
	assert.Equal(t, 1, updated.Picks[0].PickNumber)
	assert.Equal(t, *onClock, updated.Picks[0].TeamID)
	assert.Equal(t, f.pool[0], updated.Picks[0].ContestantID)
	assert.Equal(t, f.clock.Now().UTC(), *updated.CurrentTurnStartedAt, "turn timer must reset on pick")

	require.Len(t, f.roster.entries, 1, "pick must sync to the roster")
	assert.Equal(t, [2]uuid.UUID{*onClock, f.pool[0]}, f.roster.entries[0])
	assert.Equal(t, []string{"DraftStarted", "PickMade", "TurnChanged"}, f.dispatcher.recorded())
}

func TestMakePickWrongTurn(t *testing.T) {
	f := newFixture(t, 3)

	d := f.startedDraft(t)
	onClock := CurrentTeamID(d)
	require.NotNil(t, onClock)

	var other uuid.UUID
	for _, teamID := range f.teams {
		if teamID != *onClock {
			other = teamID
			break
		}
	}

	_, err := f.app.MakePick(context.Background(), d.ID, other, f.pool[0])
	assert.Equal(t, KindTurn, KindOf(err))
}

func TestMakePickDuplicateContestant(t *testing.T) {
	f := newFixture(t, 3)
	ctx := context.Background()

	d := f.startedDraft(t)
	first := CurrentTeamID(d)
	require.NotNil(t, first)

	updated, err := f.app.MakePick(ctx, d.ID, *first, f.pool[0])
	require.NoError(t, err, "first pick error")

	second := CurrentTeamID(updated)
	require.NotNil(t, second)
	_, err = f.app.MakePick(ctx, updated.ID, *second, f.pool[0])
	assert.Equal(t, KindAvailability, KindOf(err), "re-picking a drafted contestant must fail")
}

func TestMakePickContestantNotInLeague(t *testing.T) {
	f := newFixture(t, 3)

	d := f.startedDraft(t)
	onClock := CurrentTeamID(d)
	require.NotNil(t, onClock)

	_, err := f.app.MakePick(context.Background(), d.ID, *onClock, uuid.New())
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestMakePickOnCompletedDraft(t *testing.T) {
	f := newFixture(t, 2)

	d := playToCompletion(t, f)
	onClock := d.DraftOrder[0]
	_, err := f.app.MakePick(context.Background(), d.ID, onClock, f.pool[len(f.pool)-1])
	assert.Equal(t, KindState, KindOf(err), "picks after completion must fail on state")
}

// playToCompletion drives a started draft to COMPLETED by always picking for
// the team on the clock.
func playToCompletion(t *testing.T, f *fixture) *models.Draft {
	t.Helper()

	ctx := context.Background()
	d := f.startedDraft(t)

	total := len(f.teams) * models.PerTeamLimit
	for i := 0; i < total; i++ {
		onClock := CurrentTeamID(d)
		require.NotNilf(t, onClock, "no team on the clock at pick %d", i+1)

		var err error
		d, err = f.app.MakePick(ctx, d.ID, *onClock, f.pool[i])
		require.NoErrorf(t, err, "pick %d error", i+1)
	}
	return d
}

func TestDraftCompletesAtFinalPick(t *testing.T) {
	f := newFixture(t, 2)

	d := playToCompletion(t, f)

	assert.Equal(t, models.DraftStatusCompleted, d.Status)
	assert.Nil(t, d.CurrentTurnStartedAt, "completion must clear the turn timer")
	assert.Len(t, d.Picks, len(f.teams)*models.PerTeamLimit)
	assert.Equal(t, len(f.teams)*models.PerTeamLimit, d.CurrentPick, "the pick counter freezes at completion")

	events := f.dispatcher.recorded()
	require.NotEmpty(t, events)
	assert.Equal(t, "DraftCompleted", events[len(events)-1], "final event must be DraftCompleted")
	for _, name := range events {
		assert.NotEqual(t, "TurnChanged", name, "no turn change may follow the final pick, got %v", events)
	}

	// Every team holds exactly the per-team limit.
	for _, teamID := range f.teams {
		assert.Equal(t, models.PerTeamLimit, countPicksForTeam(d.Picks, teamID))
	}
}

func TestMakePickLosesRace(t *testing.T) {
	f := newFixture(t, 3)
	ctx := context.Background()

	d := f.startedDraft(t)
	onClock := CurrentTeamID(d)
	require.NotNil(t, onClock)

	// A competing writer lands between this caller's read and write.
	raced := false
	f.repo.beforeUpdate = func() {
		if raced {
			return
		}
		raced = true
		f.repo.mu.Lock()
		stored := f.repo.drafts[d.ID]
		stored.Picks = append(stored.Picks, models.DraftPick{
			PickNumber:   stored.CurrentPick,
			TeamID:       *onClock,
			ContestantID: f.pool[1],
		})
		stored.CurrentPick++
		f.repo.mu.Unlock()
	}

	_, err := f.app.MakePick(ctx, d.ID, *onClock, f.pool[0])
	assert.True(t, IsConflict(err), "losing the conditional write must surface a conflict, got %v", err)

	stored, err := f.app.GetDraft(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, stored.Picks, 1, "exactly one pick may land for the slot")
	assert.Equal(t, f.pool[1], stored.Picks[0].ContestantID, "the competing pick must win")
}

func TestAutoAdvanceSkipsWithoutPick(t *testing.T) {
	f := newFixture(t, 3)
	ctx := context.Background()

	d := f.startedDraft(t)
	f.clock.Advance(time.Duration(d.Settings.PickTimeLimitSec) * time.Second)

	updated, err := f.app.AutoAdvance(ctx, d.ID)
	require.NoError(t, err, "AutoAdvance error")

	assert.Equal(t, 2, updated.CurrentPick)
	assert.Empty(t, updated.Picks, "a skipped turn appends no pick")
	assert.Equal(t, f.clock.Now().UTC(), *updated.CurrentTurnStartedAt, "turn timer must reset on skip")
	assert.Equal(t, []string{"DraftStarted", "TurnSkipped", "TurnChanged"}, f.dispatcher.recorded())
}

func TestAutoAdvanceNotInProgress(t *testing.T) {
	f := newFixture(t, 2)

	d, err := f.app.CreateDraft(context.Background(), f.leagueID, nil)
	require.NoError(t, err, "CreateDraft error")

	_, err = f.app.AutoAdvance(context.Background(), d.ID)
	assert.Equal(t, KindState, KindOf(err))
}

func TestDeleteDraftEmitsEvent(t *testing.T) {
	f := newFixture(t, 2)
	ctx := context.Background()

	d, err := f.app.CreateDraft(ctx, f.leagueID, nil)
	require.NoError(t, err, "CreateDraft error")

	require.NoError(t, f.app.DeleteDraft(ctx, d.ID), "DeleteDraft error")
	assert.Equal(t, []string{"DraftDeleted"}, f.dispatcher.recorded())

	_, err = f.app.GetDraft(ctx, d.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestDraftStatusSummary(t *testing.T) {
	f := newFixture(t, 2)
	ctx := context.Background()

	d := f.startedDraft(t)
	status := f.app.DraftStatus(d)
	assert.True(t, status.IsActive)
	assert.Equal(t, 1, status.CurrentRound)
	assert.Equal(t, models.PerTeamLimit, status.TotalRounds)
	assert.Equal(t, 2*models.PerTeamLimit, status.PicksRemaining)
	require.NotNil(t, status.CurrentTeamID)
	assert.Equal(t, d.DraftOrder[0], *status.CurrentTeamID)

	onClock := CurrentTeamID(d)
	updated, err := f.app.MakePick(ctx, d.ID, *onClock, f.pool[0])
	require.NoError(t, err, "MakePick error")

	status = f.app.DraftStatus(updated)
	assert.Equal(t, 2*models.PerTeamLimit-1, status.PicksRemaining)

	done := playStatusToCompletion(t, f, updated)
	status = f.app.DraftStatus(done)
	assert.False(t, status.IsActive)
	assert.Nil(t, status.CurrentTeamID)
	assert.Equal(t, 0, status.PicksRemaining)
}

func playStatusToCompletion(t *testing.T, f *fixture, d *models.Draft) *models.Draft {
	t.Helper()

	ctx := context.Background()
	for i := len(d.Picks); i < len(f.teams)*models.PerTeamLimit; i++ {
		onClock := CurrentTeamID(d)
		require.NotNilf(t, onClock, "no team on the clock at pick %d", i+1)

		var err error
		d, err = f.app.MakePick(ctx, d.ID, *onClock, f.pool[i])
		require.NoErrorf(t, err, "pick %d error", i+1)
	}
	return d
}
