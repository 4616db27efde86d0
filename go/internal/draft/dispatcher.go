package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rosepool/rosepool/go/internal/draft/events"
)

// OutboxApp defines what the dispatcher needs from the outbox.
type OutboxApp interface {
	InsertOutboxEvent(ctx context.Context, leagueID uuid.UUID, eventType string, payload []byte) error
}

// OutboxDispatcher implements NotificationDispatcher by writing events to the
// outbox table; a worker ships them to the event bus asynchronously, so the
// picking protocol never blocks on delivery.
type OutboxDispatcher struct {
	outbox OutboxApp
}

func NewOutboxDispatcher(outbox OutboxApp) *OutboxDispatcher {
	return &OutboxDispatcher{outbox: outbox}
}

var _ NotificationDispatcher = (*OutboxDispatcher)(nil)

func (d *OutboxDispatcher) OnDraftStarted(ctx context.Context, leagueID uuid.UUID) error {
	return d.insert(ctx, leagueID, events.TypeDraftStarted, events.DraftStartedPayload{
		LeagueID:  leagueID.String(),
		StartedAt: time.Now().UTC(),
	})
}

func (d *OutboxDispatcher) OnTurnChanged(ctx context.Context, leagueID, teamID uuid.UUID, deadlineMs int64) error {
	return d.insert(ctx, leagueID, events.TypeTurnChanged, events.TurnChangedPayload{
		LeagueID:   leagueID.String(),
		TeamID:     teamID.String(),
		DeadlineMs: deadlineMs,
		ChangedAt:  time.Now().UTC(),
	})
}

func (d *OutboxDispatcher) OnTurnSkipped(ctx context.Context, leagueID, teamID uuid.UUID) error {
	return d.insert(ctx, leagueID, events.TypeTurnSkipped, events.TurnSkippedPayload{
		LeagueID:  leagueID.String(),
		TeamID:    teamID.String(),
		SkippedAt: time.Now().UTC(),
	})
}

func (d *OutboxDispatcher) OnPickMade(ctx context.Context, leagueID, teamID, contestantID uuid.UUID) error {
	return d.insert(ctx, leagueID, events.TypePickMade, events.PickMadePayload{
		LeagueID:     leagueID.String(),
		TeamID:       teamID.String(),
		ContestantID: contestantID.String(),
		MadeAt:       time.Now().UTC(),
	})
}

func (d *OutboxDispatcher) OnDraftCompleted(ctx context.Context, leagueID uuid.UUID) error {
	return d.insert(ctx, leagueID, events.TypeDraftCompleted, events.DraftCompletedPayload{
		LeagueID:    leagueID.String(),
		CompletedAt: time.Now().UTC(),
	})
}

func (d *OutboxDispatcher) OnDraftDeleted(ctx context.Context, leagueID uuid.UUID) error {
	return d.insert(ctx, leagueID, events.TypeDraftDeleted, events.DraftDeletedPayload{
		LeagueID:  leagueID.String(),
		DeletedAt: time.Now().UTC(),
	})
}

func (d *OutboxDispatcher) insert(ctx context.Context, leagueID uuid.UUID, eventType string, payload any) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return d.outbox.InsertOutboxEvent(ctx, leagueID, eventType, payloadBytes)
}
