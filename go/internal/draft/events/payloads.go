package events

import (
	"time"
)

// Event payload types shared between the draft engine, outbox, and gateway.

// Event type names as they appear in the outbox and on the wire.
const (
	TypeDraftStarted   = "DraftStarted"
	TypeTurnChanged    = "TurnChanged"
	TypeTurnSkipped    = "TurnSkipped"
	TypePickMade       = "PickMade"
	TypeDraftCompleted = "DraftCompleted"
	TypeDraftDeleted   = "DraftDeleted"
)

// DraftStartedPayload is the payload for a DraftStarted event
type DraftStartedPayload struct {
	LeagueID  string    `json:"league_id"`
	StartedAt time.Time `json:"started_at"`
}

// TurnChangedPayload is the payload for a TurnChanged event
type TurnChangedPayload struct {
	LeagueID   string    `json:"league_id"`
	TeamID     string    `json:"team_id"`
	DeadlineMs int64     `json:"deadline_ms"` // unix millis when the turn expires
	ChangedAt  time.Time `json:"changed_at"`
}

// TurnSkippedPayload is the payload for a TurnSkipped event
type TurnSkippedPayload struct {
	LeagueID  string    `json:"league_id"`
	TeamID    string    `json:"team_id"`
	SkippedAt time.Time `json:"skipped_at"`
}

// PickMadePayload is the payload for a PickMade event
type PickMadePayload struct {
	LeagueID     string    `json:"league_id"`
	TeamID       string    `json:"team_id"`
	ContestantID string    `json:"contestant_id"`
	MadeAt       time.Time `json:"made_at"`
}

// DraftCompletedPayload is the payload for a DraftCompleted event
type DraftCompletedPayload struct {
	LeagueID    string    `json:"league_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// DraftDeletedPayload is the payload for a DraftDeleted event
type DraftDeletedPayload struct {
	LeagueID  string    `json:"league_id"`
	DeletedAt time.Time `json:"deleted_at"`
}
