package models

import (
	"github.com/google/uuid"
	"time"
)

// DraftFormat defines the pick-order format of a draft.
type DraftFormat string

const (
	DraftFormatSnake  DraftFormat = "SNAKE"
	DraftFormatLinear DraftFormat = "LINEAR"
)

// DraftStatus defines the status of a draft.
type DraftStatus string

const (
	DraftStatusNotStarted DraftStatus = "NOT_STARTED"
	DraftStatusInProgress DraftStatus = "IN_PROGRESS"
	DraftStatusCompleted  DraftStatus = "COMPLETED"
)

// PerTeamLimit is the league-wide maximum number of contestants any one team
// may draft.
const PerTeamLimit = 5

// DraftSettings holds JSONB configuration for drafts. Fixed at creation.
type DraftSettings struct {
	PickTimeLimitSec int         `json:"pick_time_limit_sec"`
	DraftFormat      DraftFormat `json:"draft_format"`
	AutoPickEnabled  bool        `json:"auto_pick_enabled"`
}

// DefaultDraftSettings returns the settings a draft gets when the caller
// supplies no overrides.
func DefaultDraftSettings() DraftSettings {
	return DraftSettings{
		PickTimeLimitSec: 120,
		DraftFormat:      DraftFormatSnake,
		AutoPickEnabled:  false,
	}
}

// Draft represents one contestant-allocation process for a league. The
// persisted row is the single source of truth; every mutation re-reads it and
// writes back conditionally.
type Draft struct {
	ID                   uuid.UUID     `json:"id"`
	LeagueID             uuid.UUID     `json:"league_id"`
	Status               DraftStatus   `json:"status"`
	CurrentPick          int           `json:"current_pick"`
	CurrentTurnStartedAt *time.Time    `json:"current_turn_started_at,omitempty"`
	DraftOrder           []uuid.UUID   `json:"draft_order"`
	Picks                []DraftPick   `json:"picks"`
	Settings             DraftSettings `json:"settings"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`
}

// PickDeadline returns when the active turn expires, or nil when the draft is
// not waiting on a pick.
func (d *Draft) PickDeadline() *time.Time {
	if d.Status != DraftStatusInProgress || d.CurrentTurnStartedAt == nil {
		return nil
	}
	deadline := d.CurrentTurnStartedAt.Add(time.Duration(d.Settings.PickTimeLimitSec) * time.Second)
	return &deadline
}
