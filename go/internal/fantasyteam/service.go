package fantasyteam

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rosepool/rosepool/go/internal/models"
)

// FantasyTeamApp defines what the service layer needs from the fantasy teams application
type FantasyTeamApp interface {
	CreateFantasyTeam(ctx context.Context, req CreateFantasyTeamRequest) (*models.FantasyTeam, error)
	GetFantasyTeam(ctx context.Context, id uuid.UUID) (*models.FantasyTeam, error)
	GetFantasyTeamsByLeague(ctx context.Context, leagueID uuid.UUID) ([]models.FantasyTeam, error)
	GetFantasyTeamsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.FantasyTeam, error)
	UpdateFantasyTeam(ctx context.Context, id uuid.UUID, req UpdateFantasyTeamRequest) (*models.FantasyTeam, error)
	DeleteFantasyTeam(ctx context.Context, id uuid.UUID) error
}

// Service exposes fantasy team CRUD over JSON HTTP
type Service struct {
	app FantasyTeamApp
}

// NewService creates a new fantasy teams service
func NewService(app FantasyTeamApp) *Service {
	return &Service{app: app}
}

// RegisterRoutes registers fantasy team routes with an HTTP mux
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /teams", s.handleCreateTeam)
	mux.HandleFunc("GET /teams/{id}", s.handleGetTeam)
	mux.HandleFunc("GET /leagues/{leagueID}/teams", s.handleGetTeamsByLeague)
	mux.HandleFunc("GET /owners/{ownerID}/teams", s.handleGetTeamsByOwner)
	mux.HandleFunc("PUT /teams/{id}", s.handleUpdateTeam)
	mux.HandleFunc("DELETE /teams/{id}", s.handleDeleteTeam)
}

func (s *Service) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var req CreateFantasyTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	team, err := s.app.CreateFantasyTeam(r.Context(), req)
	if err != nil {
		appError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, team)
}

func (s *Service) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid team id")
		return
	}

	team, err := s.app.GetFantasyTeam(r.Context(), id)
	if err != nil {
		appError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (s *Service) handleGetTeamsByLeague(w http.ResponseWriter, r *http.Request) {
	leagueID, err := uuid.Parse(r.PathValue("leagueID"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	teams, err := s.app.GetFantasyTeamsByLeague(r.Context(), leagueID)
	if err != nil {
		appError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

func (s *Service) handleGetTeamsByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(r.PathValue("ownerID"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid owner id")
		return
	}

	teams, err := s.app.GetFantasyTeamsByOwner(r.Context(), ownerID)
	if err != nil {
		appError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

func (s *Service) handleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid team id")
		return
	}

	var req UpdateFantasyTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	team, err := s.app.UpdateFantasyTeam(r.Context(), id, req)
	if err != nil {
		appError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (s *Service) handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid team id")
		return
	}

	if err := s.app.DeleteFantasyTeam(r.Context(), id); err != nil {
		appError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func appError(w http.ResponseWriter, err error) {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		httpError(w, http.StatusNotFound, msg)
	case strings.Contains(msg, "validation failed"), strings.Contains(msg, "already has a team"):
		httpError(w, http.StatusBadRequest, msg)
	default:
		httpError(w, http.StatusInternalServerError, msg)
	}
}
