package draft

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/rosepool/rosepool/go/internal/draft/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedInsert struct {
	leagueID  uuid.UUID
	eventType string
	payload   []byte
}

type fakeOutbox struct {
	inserts []recordedInsert
}

func (f *fakeOutbox) InsertOutboxEvent(ctx context.Context, leagueID uuid.UUID, eventType string, payload []byte) error {
	f.inserts = append(f.inserts, recordedInsert{leagueID: leagueID, eventType: eventType, payload: payload})
	return nil
}

func TestOutboxDispatcherEventTypes(t *testing.T) {
	ctx := context.Background()
	outbox := &fakeOutbox{}
	d := NewOutboxDispatcher(outbox)

	leagueID, teamID, contestantID := uuid.New(), uuid.New(), uuid.New()

	require.NoError(t, d.OnDraftStarted(ctx, leagueID))
	require.NoError(t, d.OnTurnChanged(ctx, leagueID, teamID, 1234))
	require.NoError(t, d.OnTurnSkipped(ctx, leagueID, teamID))
	require.NoError(t, d.OnPickMade(ctx, leagueID, teamID, contestantID))
	require.NoError(t, d.OnDraftCompleted(ctx, leagueID))
	require.NoError(t, d.OnDraftDeleted(ctx, leagueID))

	require.Len(t, outbox.inserts, 6)
	expected := []string{
		events.TypeDraftStarted,
		events.TypeTurnChanged,
		events.TypeTurnSkipped,
		events.TypePickMade,
		events.TypeDraftCompleted,
		events.TypeDraftDeleted,
	}
	for i, ins := range outbox.inserts {
		assert.Equal(t, expected[i], ins.eventType)
		assert.Equal(t, leagueID, ins.leagueID)
	}
}

func TestOutboxDispatcherPickMadePayload(t *testing.T) {
	outbox := &fakeOutbox{}
	d := NewOutboxDispatcher(outbox)

	leagueID, teamID, contestantID := uuid.New(), uuid.New(), uuid.New()
	require.NoError(t, d.OnPickMade(context.Background(), leagueID, teamID, contestantID))

	require.Len(t, outbox.inserts, 1)
	var payload events.PickMadePayload
	require.NoError(t, json.Unmarshal(outbox.inserts[0].payload, &payload))
	assert.Equal(t, leagueID.String(), payload.LeagueID)
	assert.Equal(t, teamID.String(), payload.TeamID)
	assert.Equal(t, contestantID.String(), payload.ContestantID)
	assert.False(t, payload.MadeAt.IsZero())
}

func TestOutboxDispatcherTurnChangedPayload(t *testing.T) {
	outbox := &fakeOutbox{}
	d := NewOutboxDispatcher(outbox)

	leagueID, teamID := uuid.New(), uuid.New()
	require.NoError(t, d.OnTurnChanged(context.Background(), leagueID, teamID, 1234))

	require.Len(t, outbox.inserts, 1)
	var payload events.TurnChangedPayload
	require.NoError(t, json.Unmarshal(outbox.inserts[0].payload, &payload))
	assert.Equal(t, teamID.String(), payload.TeamID)
	assert.Equal(t, int64(1234), payload.DeadlineMs)
}
