package models

import (
	"github.com/google/uuid"
	"time"
)

type LeagueStatus string

const (
	LeagueStatusPending   LeagueStatus = "PENDING"
	LeagueStatusActive    LeagueStatus = "ACTIVE"
	LeagueStatusCompleted LeagueStatus = "COMPLETED"
)

// League represents a fantasy league tied to one season of the show.
type League struct {
	ID             uuid.UUID    `json:"id"`
	Name           string       `json:"name"`
	Season         string       `json:"season"`
	CommissionerID uuid.UUID    `json:"commissioner_id"`
	LeagueSettings interface{}  `json:"league_settings"` // JSONB stored as interface{}
	Status         LeagueStatus `json:"league_status"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
