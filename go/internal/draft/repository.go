package draft

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rosepool/rosepool/go/internal/models"
	"github.com/rosepool/rosepool/go/internal/sqlutil"
)

// Repository persists drafts in Postgres. A draft is one row; draft_order,
// picks, and settings are JSONB parsed exactly once at this boundary.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const draftColumns = `id, league_id, status, current_pick, current_turn_started_at, draft_order, picks, settings, created_at, updated_at`

func (r *Repository) CreateDraft(ctx context.Context, req CreateDraftRequest) (*models.Draft, error) {
	settingsBytes, err := json.Marshal(req.Settings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft settings: %w", err)
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO drafts (id, league_id, status, current_pick, draft_order, picks, settings)
		VALUES ($1, $2, $3, 0, '[]'::jsonb, '[]'::jsonb, $4)
		RETURNING `+draftColumns,
		req.ID, req.LeagueID, models.DraftStatusNotStarted, settingsBytes,
	)

	draft, err := scanDraft(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}
	return draft, nil
}

func (r *Repository) GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+draftColumns+` FROM drafts WHERE id = $1`, id)

	draft, err := scanDraft(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return draft, nil
}

func (r *Repository) GetDraftByLeague(ctx context.Context, leagueID uuid.UUID) (*models.Draft, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+draftColumns+`
		FROM drafts
		WHERE league_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, leagueID)

	draft, err := scanDraft(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get draft by league: %w", err)
	}
	return draft, nil
}

// UpdateDraftIf writes the draft back only while the stored row still matches
// the (current_pick, status) pair the mutation was computed from. Zero rows
// updated means another writer landed first.
func (r *Repository) UpdateDraftIf(ctx context.Context, d *models.Draft, expectedPick int, expectedStatus models.DraftStatus) (*models.Draft, error) {
	orderBytes, err := json.Marshal(d.DraftOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft order: %w", err)
	}
	picksBytes, err := json.Marshal(d.Picks)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal picks: %w", err)
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE drafts
		SET status = $2,
		    current_pick = $3,
		    current_turn_started_at = $4,
		    draft_order = $5,
		    picks = $6,
		    updated_at = now()
		WHERE id = $1 AND current_pick = $7 AND status = $8
		RETURNING `+draftColumns,
		d.ID, d.Status, d.CurrentPick, sqlutil.ToSqlTime(d.CurrentTurnStartedAt), orderBytes, picksBytes,
		expectedPick, expectedStatus,
	)

	updated, err := scanDraft(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewConflictError("Draft was modified concurrently, refetch and retry")
		}
		return nil, fmt.Errorf("failed to update draft: %w", err)
	}
	return updated, nil
}

func (r *Repository) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM drafts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

// FetchNextDeadline returns the earliest turn deadline across in-progress
// drafts. The deadline is derived, not stored: turn start plus the draft's
// pick time limit. Returns sql.ErrNoRows when nothing is in progress.
func (r *Repository) FetchNextDeadline(ctx context.Context) (*NextDeadline, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id,
		       current_turn_started_at + make_interval(secs => (settings->>'pick_time_limit_sec')::int) AS deadline
		FROM drafts
		WHERE status = $1 AND current_turn_started_at IS NOT NULL
		ORDER BY deadline ASC
		LIMIT 1`, models.DraftStatusInProgress)

	var (
		draftID  uuid.UUID
		deadline time.Time
	)
	if err := row.Scan(&draftID, &deadline); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch next deadline: %w", err)
	}

	return &NextDeadline{DraftID: draftID, Deadline: &deadline}, nil
}

// FetchDraftsDueForPick returns in-progress drafts whose turn deadline has
// already passed.
func (r *Repository) FetchDraftsDueForPick(ctx context.Context, limit int32) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id
		FROM drafts
		WHERE status = $1
		  AND current_turn_started_at IS NOT NULL
		  AND current_turn_started_at + make_interval(secs => (settings->>'pick_time_limit_sec')::int) <= now()
		ORDER BY current_turn_started_at ASC
		LIMIT $2`, models.DraftStatusInProgress, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch drafts due for pick: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan draft id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// scanDraft reads one draft row, parsing the JSONB columns into structured
// fields. Malformed JSON here is a storage-corruption error, not something to
// paper over with empty values.
func scanDraft(row *sql.Row) (*models.Draft, error) {
	var (
		d             models.Draft
		turnStartedAt sql.NullTime
		orderBytes    []byte
		picksBytes    []byte
		settingsBytes []byte
	)

	err := row.Scan(
		&d.ID, &d.LeagueID, &d.Status, &d.CurrentPick, &turnStartedAt,
		&orderBytes, &picksBytes, &settingsBytes, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	d.CurrentTurnStartedAt = sqlutil.FromSqlTime(turnStartedAt)
	if err := json.Unmarshal(orderBytes, &d.DraftOrder); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft order: %w", err)
	}
	if err := json.Unmarshal(picksBytes, &d.Picks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal picks: %w", err)
	}
	if err := json.Unmarshal(settingsBytes, &d.Settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft settings: %w", err)
	}

	return &d, nil
}
