package contestant

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rosepool/rosepool/go/internal/models"
)

// ContestantApp defines what the service layer needs from the contestant application
type ContestantApp interface {
	CreateContestant(ctx context.Context, req CreateContestantRequest) (*models.Contestant, error)
	GetContestant(ctx context.Context, id uuid.UUID) (*models.Contestant, error)
	GetContestantsByLeague(ctx context.Context, leagueID uuid.UUID) ([]models.Contestant, error)
	UpdateContestantStatus(ctx context.Context, id uuid.UUID, status models.ContestantStatus) (*models.Contestant, error)
	DeleteContestant(ctx context.Context, id uuid.UUID) error
}

// Service exposes contestant CRUD over JSON HTTP
type Service struct {
	app ContestantApp
}

func NewService(app ContestantApp) *Service {
	return &Service{app: app}
}

// RegisterRoutes registers contestant routes with an HTTP mux
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /contestants", s.handleCreateContestant)
	mux.HandleFunc("GET /contestants/{id}", s.handleGetContestant)
	mux.HandleFunc("GET /leagues/{leagueID}/contestants", s.handleGetContestantsByLeague)
	mux.HandleFunc("PUT /contestants/{id}/status", s.handleUpdateContestantStatus)
	mux.HandleFunc("DELETE /contestants/{id}", s.handleDeleteContestant)
}

func (s *Service) handleCreateContestant(w http.ResponseWriter, r *http.Request) {
	var req CreateContestantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contestant, err := s.app.CreateContestant(r.Context(), req)
	if err != nil {
		appError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, contestant)
}

func (s *Service) handleGetContestant(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid contestant id")
		return
	}

	contestant, err := s.app.GetContestant(r.Context(), id)
	if err != nil {
		appError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contestant)
}

func (s *Service) handleGetContestantsByLeague(w http.ResponseWriter, r *http.Request) {
	leagueID, err := uuid.Parse(r.PathValue("leagueID"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid league id")
		return
	}

	contestants, err := s.app.GetContestantsByLeague(r.Context(), leagueID)
	if err != nil {
		appError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contestants)
}

func (s *Service) handleUpdateContestantStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid contestant id")
		return
	}

	var req struct {
		Status models.ContestantStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contestant, err := s.app.UpdateContestantStatus(r.Context(), id, req.Status)
	if err != nil {
		appError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contestant)
}

func (s *Service) handleDeleteContestant(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid contestant id")
		return
	}

	if err := s.app.DeleteContestant(r.Context(), id); err != nil {
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
