package draft

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service exposes the draft engine over JSON HTTP. Transport only: every
// decision lives in the App.
type Service struct {
	app *App
}

func NewService(app *App) *Service {
	return &Service{app: app}
}

// RegisterRoutes registers draft routes with an HTTP mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /drafts", s.handleCreateDraft)
	mux.HandleFunc("GET /drafts/{id}", s.handleGetDraft)
	mux.HandleFunc("GET /drafts/{id}/status", s.handleDraftStatus)
	mux.HandleFunc("GET /leagues/{leagueID}/draft", s.handleGetDraftByLeague)
	mux.HandleFunc("POST /drafts/{id}/start", s.handleStartDraft)
	mux.HandleFunc("POST /drafts/{id}/picks", s.handleMakePick)
	mux.HandleFunc("POST /drafts/{id}/advance", s.handleAutoAdvance)
	mux.HandleFunc("DELETE /drafts/{id}", s.handleDeleteDraft)
}

type createDraftRequest struct {
	LeagueID string            `json:"league_id"`
	Settings *SettingsOverride `json:"settings,omitempty"`
}

func (s *Service) handleCreateDraft(w http.ResponseWriter, r *http.Request) {
	var req createDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, NewValidationError("invalid request body"))
		return
	}
	leagueID, err := uuid.Parse(req.LeagueID)
	if err != nil {
		writeError(w, NewValidationError("invalid league_id"))
		return
	}

	draft, err := s.app.CreateDraft(r.Context(), leagueID, req.Settings)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, draft)
}

func (s *Service) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, NewValidationError("invalid draft id"))
		return
	}

	draft, err := s.app.GetDraft(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (s *Service) handleDraftStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, NewValidationError("invalid draft id"))
		return
	}

	draft, err := s.app.GetDraft(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.app.DraftStatus(draft))
}

func (s *Service) handleGetDraftByLeague(w http.ResponseWriter, r *http.Request) {
	leagueID, err := uuid.Parse(r.PathValue("leagueID"))
	if err != nil {
		writeError(w, NewValidationError("invalid league id"))
		return
	}

	draft, err := s.app.GetDraftByLeague(r.Context(), leagueID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (s *Service) handleStartDraft(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, NewValidationError("invalid draft id"))
		return
	}

	draft, err := s.app.StartDraft(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

type makePickRequest struct {
	TeamID       string `json:"team_id"`
	ContestantID string `json:"contestant_id"`
}

func (s *Service) handleMakePick(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, NewValidationError("invalid draft id"))
		return
	}

	var req makePickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, NewValidationError("invalid request body"))
		return
	}
	teamID, err := uuid.Parse(req.TeamID)
	if err != nil {
		writeError(w, NewValidationError("invalid team_id"))
		return
	}
	contestantID, err := uuid.Parse(req.ContestantID)
	if err != nil {
		writeError(w, NewValidationError("invalid contestant_id"))
		return
	}

	draft, err := s.app.MakePick(r.Context(), id, teamID, contestantID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (s *Service) handleAutoAdvance(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, NewValidationError("invalid draft id"))
		return
	}

	draft, err := s.app.AutoAdvance(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (s *Service) handleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, NewValidationError("invalid draft id"))
		return
	}

	if err := s.app.DeleteDraft(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

type errorResponse struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	kind := KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case KindValidation:
		status = http.StatusBadRequest
	case KindState, KindTurn, KindAvailability, KindLimit:
		status = http.StatusUnprocessableEntity
	case KindNotFound:
		status = http.StatusNotFound
	case KindConflict:
		status = http.StatusConflict
	}

	msg := err.Error()
	if kind == "" {
		// Don't leak infrastructure details to clients.
		msg = "internal error"
		log.Error().Err(err).Msg("draft service internal error")
	}
	writeJSON(w, status, errorResponse{Kind: kind, Message: msg})
}
