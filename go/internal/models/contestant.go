package models

import (
	"github.com/google/uuid"
	"time"
)

// ContestantStatus tracks whether a contestant is still on the show.
type ContestantStatus string

const (
	ContestantStatusActive     ContestantStatus = "ACTIVE"
	ContestantStatusEliminated ContestantStatus = "ELIMINATED"
	ContestantStatusWinner     ContestantStatus = "WINNER"
)

// Contestant represents a cast member of the season a league is playing.
type Contestant struct {
	ID         uuid.UUID        `json:"id"`
	LeagueID   uuid.UUID        `json:"league_id"`
	FullName   string           `json:"full_name"`
	Hometown   string           `json:"hometown"`
	Occupation string           `json:"occupation"`
	Status     ContestantStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
}
