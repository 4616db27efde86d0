package leagues

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rosepool/rosepool/go/internal/models"
)

// LeaguesApp defines what the service layer needs from the leagues application
type LeaguesApp interface {
	CreateLeague(ctx context.Context, req CreateLeagueRequest) (*models.League, error)
	GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error)
	GetLeaguesByCommissioner(ctx context.Context, commissionerID uuid.UUID) ([]models.League, error)
	UpdateLeague(ctx context.Context, id uuid.UUID, req UpdateLeagueRequest) (*models.League, error)
	UpdateLeagueStatus(ctx context.Context, id uuid.UUID, status models.LeagueStatus) (*models.League, error)
	UpdateLeagueSettings(ctx context.Context, id uuid.UUID, settings interface{}) (*models.League, error)
	DeleteLeague(ctx context.Context, id uuid.UUID) error
}

// Service exposes league CRUD over JSON HTTP
type Service struct {
	app LeaguesApp
}

// NewService creates a new leagues service
func NewService(app LeaguesApp) *Service {
	return &Service{app: app}
}

// RegisterRoutes registers league routes with an HTTP mux
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /leagues", s.handleCreateLeague)
	mux.HandleFunc("GET /leagues/{id}", s.handleGetLeague)
	mux.HandleFunc("GET /commissioners/{commissionerID}/leagues", s.handleGetLeaguesByCommissioner)
	mux.HandleFunc("PUT /leagues/{id}", s.handleUpdateLeague)
	mux.HandleFunc("PUT /leagues/{id}/status", s.handleUpdateLeagueStatus)
	mux.HandleFunc("PUT /leagues/{id}/settings", s.handleUpdateLeagueSettings)
	mux.HandleFunc("DELETE /leagues/{id}", s.handleDeleteLeague)
}

func (s *Service) handleCreateLeague(w http.ResponseWriter, r *http.Request) {
	var req CreateLeagueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	league, err := s.app.CreateLeague(r.Context(), req)
	if err != nil {
		appError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, league)
}

func (s *Service) handleGetLeague(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	league, err := s.app.GetLeague(r.Context(), id)
	if err != nil {
		appError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, league)
}

func (s *Service) handleGetLeaguesByCommissioner(w http.ResponseWriter, r *http.Request) {
	commissionerID, err := uuid.Parse(r.PathValue("commissionerID"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid commissioner id")
		return
	}

	leagues, err := s.app.GetLeaguesByCommissioner(r.Context(), commissionerID)
	if err != nil {
		appError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leagues)
}

func (s *Service) handleUpdateLeague(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	var req UpdateLeagueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	league, err := s.app.UpdateLeague(r.Context(), id, req)
	if err != nil {
		appError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, league)
}

func (s *Service) handleUpdateLeagueStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	var req struct {
		Status models.LeagueStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	league, err := s.app.UpdateLeagueStatus(r.Context(), id, req.Status)
	if err != nil {
		appError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, league)
}

func (s *Service) handleUpdateLeagueSettings(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	var settings interface{}
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	league, err := s.app.UpdateLeagueSettings(r.Context(), id, settings)
	if err != nil {
		appError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, league)
}

func (s *Service) handleDeleteLeague(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	if err := s.app.DeleteLeague(r.Context(), id); err != nil {
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
	case strings.Contains(msg, "validation failed"):
		httpError(w, http.StatusBadRequest, msg)
	default:
		httpError(w, http.StatusInternalServerError, msg)
	}
}
