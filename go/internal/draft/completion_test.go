package draft

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rosepool/rosepool/go/internal/models"
	"github.com/stretchr/testify/assert"
)

func picksFor(teams []uuid.UUID, perTeam int) []models.DraftPick {
	var picks []models.DraftPick
	for i := 0; i < perTeam; i++ {
		for _, teamID := range teams {
			picks = append(picks, models.DraftPick{
				PickNumber:   len(picks) + 1,
				TeamID:       teamID,
				ContestantID: uuid.New(),
			})
		}
	}
	return picks
}

func TestIsCompleteBoundary(t *testing.T) {
	teams := []uuid.UUID{uuid.New(), uuid.New()}

	full := picksFor(teams, models.PerTeamLimit)
	assert.False(t, IsComplete(full[:len(full)-1], teams), "one pick short must not be complete")
	assert.True(t, IsComplete(full, teams), "every team at the limit must be complete")
}

func TestIsCompleteTeamShortOnePick(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	teams := []uuid.UUID{a, b}

	// Team A holds all its picks plus one of B's; total count matches a full
	// draft but B is short.
	picks := picksFor([]uuid.UUID{a}, models.PerTeamLimit+1)
	picks = append(picks, picksFor([]uuid.UUID{b}, models.PerTeamLimit-1)...)
	assert.False(t, IsComplete(picks, teams), "uneven pick distribution must not be complete")
}

func TestIsCompleteNoTeams(t *testing.T) {
	assert.False(t, IsComplete(nil, nil), "a league with no teams never completes")
}

func TestCountPicksForTeam(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	picks := append(picksFor([]uuid.UUID{a}, 3), picksFor([]uuid.UUID{b}, 1)...)

	assert.Equal(t, 3, countPicksForTeam(picks, a))
	assert.Equal(t, 1, countPicksForTeam(picks, b))
	assert.Equal(t, 0, countPicksForTeam(picks, uuid.New()))
}
