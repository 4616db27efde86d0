package draft

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rosepool/rosepool/go/internal/models"
)

// PickValidator enforces the legality of a requested pick against current
// draft state. Checks run in order and short-circuit on the first failure.
type PickValidator struct {
	contestants ContestantDirectory
}

// NewPickValidator creates a validator backed by the league's contestant
// directory.
func NewPickValidator(contestants ContestantDirectory) *PickValidator {
	return &PickValidator{contestants: contestants}
}

// Validate returns nil when teamID may pick contestantID right now, or the
// first failing check's typed error.
func (v *PickValidator) Validate(ctx context.Context, d *models.Draft, teamID, contestantID uuid.UUID) error {
	if d.Status != models.DraftStatusInProgress {
		return NewStateError("Draft must be in progress to make picks")
	}

	current := CurrentTeamID(d)
	if current == nil || *current != teamID {
		return NewTurnError("It is not this team's turn to pick")
	}

	for _, p := range d.Picks {
		if p.ContestantID == contestantID {
			return NewAvailabilityError("Contestant has already been drafted")
		}
	}

	inLeague, err := v.contestants.BelongsToLeague(ctx, contestantID, d.LeagueID)
	if err != nil {
		return fmt.Errorf("failed to look up contestant: %w", err)
	}
	if !inLeague {
		return NewValidationError("Contestant is not in this league")
	}

	if countPicksForTeam(d.Picks, teamID) >= models.PerTeamLimit {
		return NewLimitError("Team has already drafted the maximum number of contestants")
	}

	return nil
}
