package gateway

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rosepool/rosepool/go/internal/draft/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wireEvent(t *testing.T, eventType EventType, payload any) *DraftEvent {
	t.Helper()

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return &DraftEvent{
		ID:        uuid.New().String(),
		LeagueID:  uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

func TestParseEventPayload(t *testing.T) {
	teamID := uuid.New().String()

	got, err := ParseEventPayload(wireEvent(t, EventTypeTurnChanged, events.TurnChangedPayload{
		TeamID:     teamID,
		DeadlineMs: 99,
	}))
	require.NoError(t, err)
	payload, ok := got.(events.TurnChangedPayload)
	require.True(t, ok, "expected TurnChangedPayload, got %T", got)
	assert.Equal(t, teamID, payload.TeamID)
	assert.Equal(t, int64(99), payload.DeadlineMs)

	got, err = ParseEventPayload(wireEvent(t, EventTypePickMade, events.PickMadePayload{TeamID: teamID}))
	require.NoError(t, err)
	_, ok = got.(events.PickMadePayload)
	assert.True(t, ok, "expected PickMadePayload, got %T", got)
}

func TestParseEventPayloadUnknownType(t *testing.T) {
	got, err := ParseEventPayload(wireEvent(t, EventType("SomethingElse"), map[string]string{}))
	require.NoError(t, err)
	assert.Nil(t, got, "unknown event types parse to nil")
}

func TestParseEventPayloadBadData(t *testing.T) {
	ev := wireEvent(t, EventTypeDraftStarted, events.DraftStartedPayload{})
	ev.Data = json.RawMessage(`{"league_id": 42`)
	_, err := ParseEventPayload(ev)
	assert.Error(t, err)
}
