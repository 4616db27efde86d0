package draft

import (
	"github.com/google/uuid"
	"github.com/rosepool/rosepool/go/internal/models"
)

// IsComplete reports whether a draft holding the given picks is finished:
// every team currently in the league has exactly PerTeamLimit picks. The
// per-team tally is authoritative; pick-number arithmetic alone cannot tell
// "all rounds exhausted" apart from "a team is short a pick" when the league's
// team set changed mid-draft.
func IsComplete(picks []models.DraftPick, leagueTeams []uuid.UUID) bool {
	if len(leagueTeams) == 0 {
		return false
	}

	counts := make(map[uuid.UUID]int, len(leagueTeams))
	for _, p := range picks {
		counts[p.TeamID]++
	}

	for _, teamID := range leagueTeams {
		if counts[teamID] != models.PerTeamLimit {
			return false
		}
	}
	return true
}

// countPicksForTeam tallies how many picks a team holds.
func countPicksForTeam(picks []models.DraftPick, teamID uuid.UUID) int {
	count := 0
	for _, p := range picks {
		if p.TeamID == teamID {
			count++
		}
	}
	return count
}
