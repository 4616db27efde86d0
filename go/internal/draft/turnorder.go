package draft

import (
	"github.com/google/uuid"
	"github.com/rosepool/rosepool/go/internal/models"
)

// CurrentTeamID returns the team whose turn it is for the draft's current
// pick, or nil when the draft is not waiting on a pick. Pure; used by both
// pick validation and status queries.
func CurrentTeamID(d *models.Draft) *uuid.UUID {
	if d.Status != models.DraftStatusInProgress || d.CurrentPick == 0 {
		return nil
	}

	numTeams := len(d.DraftOrder)
	if numTeams == 0 {
		return nil
	}

	round := (d.CurrentPick-1)/numTeams + 1
	positionInRound := (d.CurrentPick-1)%numTeams + 1 // 1-indexed

	// Snake reverses even rounds; linear repeats the same order every round.
	if d.Settings.DraftFormat == models.DraftFormatSnake && round%2 == 0 {
		teamID := d.DraftOrder[numTeams-positionInRound]
		return &teamID
	}

	teamID := d.DraftOrder[positionInRound-1]
	return &teamID
}

// CurrentRound returns the 1-indexed round the draft is in, or 0 before start.
func CurrentRound(d *models.Draft) int {
	numTeams := len(d.DraftOrder)
	if numTeams == 0 || d.CurrentPick == 0 {
		return 0
	}
	return (d.CurrentPick-1)/numTeams + 1
}
