package draft

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rosepool/rosepool/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftWithOrder(format models.DraftFormat, order []uuid.UUID, currentPick int) *models.Draft {
	return &models.Draft{
		ID:          uuid.New(),
		LeagueID:    uuid.New(),
		Status:      models.DraftStatusInProgress,
		CurrentPick: currentPick,
		DraftOrder:  order,
		Settings: models.DraftSettings{
			PickTimeLimitSec: 120,
			DraftFormat:      format,
		},
	}
}

func TestCurrentTeamIDSnake(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	order := []uuid.UUID{a, b, c}

	// Rounds alternate direction: A,B,C then C,B,A then A,B,C again.
	expected := []uuid.UUID{a, b, c, c, b, a, a, b, c}
	for pick := 1; pick <= len(expected); pick++ {
		d := draftWithOrder(models.DraftFormatSnake, order, pick)
		got := CurrentTeamID(d)
		require.NotNilf(t, got, "pick %d has no team on the clock", pick)
		assert.Equalf(t, expected[pick-1], *got, "wrong team for pick %d", pick)
	}
}

func TestCurrentTeamIDLinear(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	order := []uuid.UUID{a, b, c}

	// Every round repeats the same order.
	expected := []uuid.UUID{a, b, c, a, b, c}
	for pick := 1; pick <= len(expected); pick++ {
		d := draftWithOrder(models.DraftFormatLinear, order, pick)
		got := CurrentTeamID(d)
		require.NotNilf(t, got, "pick %d has no team on the clock", pick)
		assert.Equalf(t, expected[pick-1], *got, "wrong team for pick %d", pick)
	}
}

func TestCurrentTeamIDNotInProgress(t *testing.T) {
	order := []uuid.UUID{uuid.New(), uuid.New()}

	d := draftWithOrder(models.DraftFormatSnake, order, 1)
	d.Status = models.DraftStatusNotStarted
	assert.Nil(t, CurrentTeamID(d), "not-started draft has no team on the clock")

	d = draftWithOrder(models.DraftFormatSnake, order, 10)
	d.Status = models.DraftStatusCompleted
	assert.Nil(t, CurrentTeamID(d), "completed draft has no team on the clock")

	d = draftWithOrder(models.DraftFormatSnake, order, 0)
	assert.Nil(t, CurrentTeamID(d), "pick zero has no team on the clock")

	d = draftWithOrder(models.DraftFormatSnake, nil, 1)
	assert.Nil(t, CurrentTeamID(d), "empty order has no team on the clock")
}

func TestCurrentRound(t *testing.T) {
	order := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	tests := []struct {
		pick  int
		round int
	}{
		{0, 0},
		{1, 1},
		{3, 1},
		{4, 2},
		{6, 2},
		{7, 3},
	}
	for _, tt := range tests {
		d := draftWithOrder(models.DraftFormatSnake, order, tt.pick)
		assert.Equalf(t, tt.round, CurrentRound(d), "round for pick %d", tt.pick)
	}

	assert.Equal(t, 0, CurrentRound(draftWithOrder(models.DraftFormatSnake, nil, 5)), "round with empty order")
}
