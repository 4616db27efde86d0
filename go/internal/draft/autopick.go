package draft

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rosepool/rosepool/go/internal/models"
	"github.com/rs/zerolog/log"
)

// AutoPickStrategy chooses a contestant for the on-turn team when its timer
// expires and the draft has auto-pick enabled.
type AutoPickStrategy interface {
	SelectPick(ctx context.Context, d *models.Draft) (teamID, contestantID uuid.UUID, err error)
}

// RandomStrategy picks an undrafted contestant at random.
type RandomStrategy struct {
	contestants ContestantDirectory
	rng         *rand.Rand
}

// NewRandomStrategy constructs a RandomStrategy with its own seed.
func NewRandomStrategy(contestants ContestantDirectory) *RandomStrategy {
	src := rand.NewSource(time.Now().UnixNano())
	return &RandomStrategy{
		contestants: contestants,
		rng:         rand.New(src),
	}
}

// SelectPick implements AutoPickStrategy.
func (s *RandomStrategy) SelectPick(ctx context.Context, d *models.Draft) (uuid.UUID, uuid.UUID, error) {
	team := CurrentTeamID(d)
	if team == nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("no team on the clock")
	}

	picked := make([]uuid.UUID, len(d.Picks))
	for i, p := range d.Picks {
		picked[i] = p.ContestantID
	}

	available, err := s.contestants.ListAvailableContestants(ctx, d.LeagueID, picked)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("list available contestants: %w", err)
	}
	if len(available) == 0 {
		return uuid.Nil, uuid.Nil, fmt.Errorf("no available contestants")
	}

	choice := available[s.rng.Intn(len(available))]

	log.Info().
		Str("draft_id", d.ID.String()).
		Str("team_id", team.String()).
		Str("contestant_id", choice.String()).
		Msg("auto-pick selected contestant")

	return *team, choice, nil
}
