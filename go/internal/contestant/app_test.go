package contestant

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/rosepool/rosepool/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	contestants map[uuid.UUID]*models.Contestant
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{contestants: make(map[uuid.UUID]*models.Contestant)}
}

func (r *fakeRepo) add(leagueID uuid.UUID, name string) *models.Contestant {
	c := &models.Contestant{
		ID:       uuid.New(),
		LeagueID: leagueID,
		FullName: name,
		Status:   models.ContestantStatusActive,
	}
	r.contestants[c.ID] = c
	return c
}

func (r *fakeRepo) CreateContestant(ctx context.Context, req CreateContestantRequest) (*models.Contestant, error) {
	c := r.add(req.LeagueID, req.FullName)
	c.Hometown = req.Hometown
	c.Occupation = req.Occupation
	return c, nil
}

func (r *fakeRepo) GetContestant(ctx context.Context, id uuid.UUID) (*models.Contestant, error) {
	c, ok := r.contestants[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return c, nil
}

func (r *fakeRepo) GetContestantsByLeague(ctx context.Context, leagueID uuid.UUID) ([]models.Contestant, error) {
	var out []models.Contestant
	for _, c := range r.contestants {
		if c.LeagueID == leagueID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateContestantStatus(ctx context.Context, id uuid.UUID, status models.ContestantStatus) (*models.Contestant, error) {
	c, ok := r.contestants[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	c.Status = status
	return c, nil
}

func (r *fakeRepo) DeleteContestant(ctx context.Context, id uuid.UUID) error {
	delete(r.contestants, id)
	return nil
}

func TestCreateContestantValidation(t *testing.T) {
	app := NewApp(newFakeRepo())

	_, err := app.CreateContestant(context.Background(), CreateContestantRequest{FullName: "Jade"})
	assert.ErrorContains(t, err, "league_id is required")

	_, err = app.CreateContestant(context.Background(), CreateContestantRequest{LeagueID: uuid.New()})
	assert.ErrorContains(t, err, "full_name is required")
}

func TestUpdateContestantStatusValidation(t *testing.T) {
	repo := newFakeRepo()
	app := NewApp(repo)
	c := repo.add(uuid.New(), "Jade")

	updated, err := app.UpdateContestantStatus(context.Background(), c.ID, models.ContestantStatusEliminated)
	require.NoError(t, err)
	assert.Equal(t, models.ContestantStatusEliminated, updated.Status)

	_, err = app.UpdateContestantStatus(context.Background(), c.ID, models.ContestantStatus("RETIRED"))
	assert.ErrorContains(t, err, "invalid contestant status")
}

func TestBelongsToLeague(t *testing.T) {
	repo := newFakeRepo()
	app := NewApp(repo)

	leagueID := uuid.New()
	c := repo.add(leagueID, "Jade")
	other := repo.add(uuid.New(), "Marco")

	in, err := app.BelongsToLeague(context.Background(), c.ID, leagueID)
	require.NoError(t, err)
	assert.True(t, in)

	in, err = app.BelongsToLeague(context.Background(), other.ID, leagueID)
	require.NoError(t, err)
	assert.False(t, in, "a contestant from another season is not in this league")

	in, err = app.BelongsToLeague(context.Background(), uuid.New(), leagueID)
	require.NoError(t, err, "an unknown contestant is an answer, not an error")
	assert.False(t, in)
}

func TestListAvailableContestants(t *testing.T) {
	repo := newFakeRepo()
	app := NewApp(repo)

	leagueID := uuid.New()
	a := repo.add(leagueID, "Jade")
	b := repo.add(leagueID, "Marco")
	c := repo.add(leagueID, "Priya")
	repo.add(uuid.New(), "Other season")

	available, err := app.ListAvailableContestants(context.Background(), leagueID, []uuid.UUID{b.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{a.ID, c.ID}, available)

	available, err = app.ListAvailableContestants(context.Background(), leagueID, []uuid.UUID{a.ID, b.ID, c.ID})
	require.NoError(t, err)
	assert.Empty(t, available, "a fully drafted cast leaves nothing available")
}
