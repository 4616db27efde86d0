package models

import (
	"github.com/google/uuid"
	"time"
)

// DraftPick represents a single completed pick in a draft. Immutable once
// appended to Draft.Picks.
type DraftPick struct {
	PickNumber   int       `json:"pick_number"` // matches Draft.CurrentPick at pick time
	TeamID       uuid.UUID `json:"team_id"`
	ContestantID uuid.UUID `json:"contestant_id"`
	PickedAt     time.Time `json:"picked_at"`
}
