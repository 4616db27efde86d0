package roster

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rosepool/rosepool/go/internal/models"
)

// RosterApp defines what the service layer needs from the roster application
type RosterApp interface {
	CreateRosterEntry(ctx context.Context, req CreateRosterEntryRequest) (*models.Roster, error)
	GetRoster(ctx context.Context, id uuid.UUID) (*models.Roster, error)
	GetRosterByFantasyTeam(ctx context.Context, fantasyTeamID uuid.UUID) ([]models.Roster, error)
	GetRosterByAcquisitionType(ctx context.Context, fantasyTeamID uuid.UUID, acquisitionType models.AcquisitionType) ([]models.Roster, error)
	UpdateRosterNotes(ctx context.Context, id uuid.UUID, req UpdateRosterNotesRequest) (*models.Roster, error)
	DeleteRosterEntry(ctx context.Context, id uuid.UUID) error
	DeleteContestantFromRoster(ctx context.Context, fantasyTeamID, contestantID uuid.UUID) error
	DeleteTeamRoster(ctx context.Context, fantasyTeamID uuid.UUID) error
}

// Service exposes roster operations over JSON HTTP
type Service struct {
	app RosterApp
}

func NewService(app RosterApp) *Service {
	return &Service{app: app}
}

// RegisterRoutes registers roster routes with an HTTP mux
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /rosters", s.handleCreateRosterEntry)
	mux.HandleFunc("GET /rosters/{id}", s.handleGetRoster)
	mux.HandleFunc("GET /teams/{teamID}/roster", s.handleGetRosterByTeam)
	mux.HandleFunc("PUT /rosters/{id}/notes", s.handleUpdateRosterNotes)
	mux.HandleFunc("DELETE /rosters/{id}", s.handleDeleteRosterEntry)
	mux.HandleFunc("DELETE /teams/{teamID}/roster", s.handleDeleteTeamRoster)
	mux.HandleFunc("DELETE /teams/{teamID}/roster/{contestantID}", s.handleDeleteContestantFromRoster)
}

func (s *Service) handleCreateRosterEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateRosterEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	roster, err := s.app.CreateRosterEntry(r.Context(), req)
	if err != nil {
		appError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, roster)
}

func (s *Service) handleGetRoster(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid roster id")
		return
	}

	roster, err := s.app.GetRoster(r.Context(), id)
	if err != nil {
		appError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roster)
}

func (s *Service) handleGetRosterByTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := uuid.Parse(r.PathValue("teamID"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid team id")
		return
	}

	if at := r.URL.Query().Get("acquisition_type"); at != "" {
		rosters, err := s.app.GetRosterByAcquisitionType(r.Context(), teamID, models.AcquisitionType(at))
		if err != nil {
			appError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rosters)
		return
	}

	rosters, err := s.app.GetRosterByFantasyTeam(r.Context(), teamID)
	if err != nil {
		appError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rosters)
}

func (s *Service) handleUpdateRosterNotes(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid roster id")
		return
	}

	var req UpdateRosterNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	roster, err := s.app.UpdateRosterNotes(r.Context(), id, req)
	if err != nil {
		appError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roster)
}

func (s *Service) handleDeleteRosterEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid roster id")
		return
	}

	if err := s.app.DeleteRosterEntry(r.Context(), id); err != nil {
		appError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleDeleteTeamRoster(w http.ResponseWriter, r *http.Request) {
	teamID, err := uuid.Parse(r.PathValue("teamID"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid team id")
		return
	}

	if err := s.app.DeleteTeamRoster(r.Context(), teamID); err != nil {
		appError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleDeleteContestantFromRoster(w http.ResponseWriter, r *http.Request) {
	teamID, err := uuid.Parse(r.PathValue("teamID"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid team id")
		return
	}
	contestantID, err := uuid.Parse(r.PathValue("contestantID"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid contestant id")
		return
	}

	if err := s.app.DeleteContestantFromRoster(r.Context(), teamID, contestantID); err != nil {
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
	case strings.Contains(msg, "validation failed"), strings.Contains(msg, "already on this team"):
		httpError(w, http.StatusBadRequest, msg)
	default:
		httpError(w, http.StatusInternalServerError, msg)
	}
}
