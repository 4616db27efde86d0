package gateway

import (
	"encoding/json"
	"time"

	"github.com/rosepool/rosepool/go/internal/draft/events"
)

// DraftEvent is the wire shape pushed to WebSocket clients.
type DraftEvent struct {
	ID        string          `json:"id"`        // Event UUID
	LeagueID  string          `json:"league_id"` // League UUID
	Type      EventType       `json:"type"`      // Event type
	Timestamp time.Time       `json:"timestamp"` // Event creation time
	Data      json.RawMessage `json:"data"`      // Event-specific payload
}

// EventType represents the type of draft event
type EventType string

const (
	EventTypeDraftStarted   EventType = events.TypeDraftStarted
	EventTypeTurnChanged    EventType = events.TypeTurnChanged
	EventTypeTurnSkipped    EventType = events.TypeTurnSkipped
	EventTypePickMade       EventType = events.TypePickMade
	EventTypeDraftCompleted EventType = events.TypeDraftCompleted
	EventTypeDraftDeleted   EventType = events.TypeDraftDeleted
)

// ParseEventPayload parses event data into the appropriate payload struct
func ParseEventPayload(event *DraftEvent) (interface{}, error) {
	switch event.Type {
	case EventTypeDraftStarted:
		var payload events.DraftStartedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeTurnChanged:
		var payload events.TurnChangedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeTurnSkipped:
		var payload events.TurnSkippedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypePickMade:
		var payload events.PickMadePayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeDraftCompleted:
		var payload events.DraftCompletedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeDraftDeleted:
		var payload events.DraftDeletedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	default:
		return nil, nil // Unknown event type
	}
}
