package draft

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rosepool/rosepool/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Checks run in a fixed order and short-circuit, so a request failing several
// rules reports the first one.
func TestValidateCheckOrder(t *testing.T) {
	leagueID := uuid.New()
	a, b := uuid.New(), uuid.New()
	pool := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	v := NewPickValidator(&fakeContestants{leagueID: leagueID, pool: pool})

	base := func() *models.Draft {
		d := draftWithOrder(models.DraftFormatSnake, []uuid.UUID{a, b}, 1)
		d.LeagueID = leagueID
		return d
	}

	t.Run("state first", func(t *testing.T) {
		d := base()
		d.Status = models.DraftStatusCompleted
		// Wrong team and drafted contestant too, but state wins.
		err := v.Validate(context.Background(), d, b, pool[0])
		assert.Equal(t, KindState, KindOf(err))
	})

	t.Run("turn before availability", func(t *testing.T) {
		d := base()
		d.Picks = []models.DraftPick{{PickNumber: 1, TeamID: a, ContestantID: pool[0]}}
		d.CurrentPick = 2
		err := v.Validate(context.Background(), d, a, pool[0])
		assert.Equal(t, KindTurn, KindOf(err), "pick 2 of a two-team snake belongs to the other team")
	})

	t.Run("availability before membership", func(t *testing.T) {
		d := base()
		d.Picks = []models.DraftPick{{PickNumber: 1, TeamID: b, ContestantID: pool[0]}}
		err := v.Validate(context.Background(), d, a, pool[0])
		assert.Equal(t, KindAvailability, KindOf(err))
	})

	t.Run("membership before limit", func(t *testing.T) {
		d := base()
		err := v.Validate(context.Background(), d, a, uuid.New())
		assert.Equal(t, KindValidation, KindOf(err))
	})
}

func TestValidatePerTeamLimit(t *testing.T) {
	leagueID := uuid.New()
	a, b := uuid.New(), uuid.New()

	pool := make([]uuid.UUID, models.PerTeamLimit+1)
	for i := range pool {
		pool[i] = uuid.New()
	}
	v := NewPickValidator(&fakeContestants{leagueID: leagueID, pool: pool})

	// Linear order keeps team A on the clock deterministic; give A a full
	// hand of picks and put it back on the clock.
	d := draftWithOrder(models.DraftFormatLinear, []uuid.UUID{a, b}, models.PerTeamLimit*2+1)
	d.LeagueID = leagueID
	for i := 0; i < models.PerTeamLimit; i++ {
		d.Picks = append(d.Picks, models.DraftPick{PickNumber: i*2 + 1, TeamID: a, ContestantID: pool[i]})
	}

	err := v.Validate(context.Background(), d, a, pool[models.PerTeamLimit])
	assert.Equal(t, KindLimit, KindOf(err))
}

func TestValidateLegalPick(t *testing.T) {
	leagueID := uuid.New()
	a, b := uuid.New(), uuid.New()
	pool := []uuid.UUID{uuid.New(), uuid.New()}

	v := NewPickValidator(&fakeContestants{leagueID: leagueID, pool: pool})

	d := draftWithOrder(models.DraftFormatSnake, []uuid.UUID{a, b}, 1)
	d.LeagueID = leagueID

	require.NoError(t, v.Validate(context.Background(), d, a, pool[0]))
}
