package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Roster struct {
	ID              uuid.UUID       `json:"id"`
	FantasyTeamID   uuid.UUID       `json:"fantasy_team_id"`
	ContestantID    uuid.UUID       `json:"contestant_id"`
	AcquiredAt      time.Time       `json:"acquired_at"`
	AcquisitionType AcquisitionType `json:"acquisition_type"`
	Notes           json.RawMessage `json:"notes"`
}

// AcquisitionType represents how a contestant was acquired
type AcquisitionType string

const (
	AcquisitionTypeDraft AcquisitionType = "DRAFT"
	AcquisitionTypeTrade AcquisitionType = "TRADE"
)
