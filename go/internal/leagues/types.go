package leagues

import (
	"github.com/google/uuid"
	"github.com/rosepool/rosepool/go/internal/models"
)

// CreateLeagueRequest represents the data needed to create a new league
type CreateLeagueRequest struct {
	Name           string              `json:"name" validate:"required"`
	Season         string              `json:"season" validate:"required"`
	CommissionerID uuid.UUID           `json:"commissioner_id" validate:"required"`
	LeagueSettings interface{}         `json:"league_settings"`
	Status         models.LeagueStatus `json:"status" validate:"required"`
}

// UpdateLeagueRequest represents the data that can be updated for a league
type UpdateLeagueRequest struct {
	Name           string              `json:"name" validate:"required"`
	Season         string              `json:"season" validate:"required"`
	CommissionerID uuid.UUID           `json:"commissioner_id" validate:"required"`
	LeagueSettings interface{}         `json:"league_settings"`
	Status         models.LeagueStatus `json:"status" validate:"required"`
}
