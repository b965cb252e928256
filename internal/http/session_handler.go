package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/example/session-planner/internal/application"
)

type sessionService interface {
	CreateSession(ctx context.Context, params application.CreateSessionParams) (application.Session, application.ConflictResult, error)
	UpdateSession(ctx context.Context, params application.UpdateSessionParams) (application.Session, application.ConflictResult, error)
	GetSession(ctx context.Context, id string) (application.Session, error)
	ListSessions(ctx context.Context, params application.ListSessionsParams) ([]application.Session, error)
	DeleteSession(ctx context.Context, id string) error
	CheckConflict(ctx context.Context, start time.Time, durationMinutes int, excludeID string) (application.ConflictResult, error)
}

type SessionHandler struct {
	service   sessionService
	responder responder
}

func NewSessionHandler(service sessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{service: service, responder: newResponder(logger)}
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	created, result, err := h.service.CreateSession(r.Context(), application.CreateSessionParams{
		Input:         req.toInput(),
		CheckConflict: req.CheckConflict,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	if result.Conflict {
		h.responder.writeJSON(r.Context(), w, http.StatusConflict, toConflictDTO(result))
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toSessionDTO(created))
}

func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := SessionIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSessionID)
		return
	}

	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	updated, result, err := h.service.UpdateSession(r.Context(), application.UpdateSessionParams{
		SessionID:     id,
		Input:         req.toInput(),
		CheckConflict: req.CheckConflict,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	if result.Conflict {
		h.responder.writeJSON(r.Context(), w, http.StatusConflict, toConflictDTO(result))
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toSessionDTO(updated))
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := SessionIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSessionID)
		return
	}

	session, err := h.service.GetSession(r.Context(), id)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toSessionDTO(session))
}

func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sessions, err := h.service.ListSessions(r.Context(), buildListParams(r.URL.Query()))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	response := listSessionsResponse{Sessions: toSessionDTOs(sessions)}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, response)
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := SessionIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSessionID)
		return
	}

	if err := h.service.DeleteSession(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// CheckConflict answers whether a proposed interval would overlap anything
// already booked. The answer is always 200: a conflict is a result, not a
// failure.
func (h *SessionHandler) CheckConflict(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req conflictCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	result, err := h.service.CheckConflict(r.Context(), parseTime(req.Start), req.DurationMinutes, strings.TrimSpace(req.ExcludeSessionID))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toConflictDTO(result))
}

type sessionRequest struct {
	TypeID          string `json:"type_id"`
	Start           string `json:"start"`
	DurationMinutes int    `json:"duration_minutes"`
	Completed       bool   `json:"completed"`
	CheckConflict   bool   `json:"check_conflict"`
}

func (r sessionRequest) toInput() application.SessionInput {
	return application.SessionInput{
		TypeID:          strings.TrimSpace(r.TypeID),
		Start:           parseTime(r.Start),
		DurationMinutes: r.DurationMinutes,
		Completed:       r.Completed,
	}
}

type conflictCheckRequest struct {
	Start            string `json:"start"`
	DurationMinutes  int    `json:"duration_minutes"`
	ExcludeSessionID string `json:"exclude_session_id"`
}

func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts.In(time.Local)
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts.In(time.Local)
	}
	return time.Time{}
}

func buildListParams(values url.Values) application.ListSessionsParams {
	params := application.ListSessionsParams{
		TypeID: strings.TrimSpace(values.Get("type_id")),
	}
	if strings.EqualFold(strings.TrimSpace(values.Get("upcoming")), "true") {
		params.Upcoming = true
	}
	if from := parseTime(values.Get("from")); !from.IsZero() {
		params.From = &from
	}
	if to := parseTime(values.Get("to")); !to.IsZero() {
		params.To = &to
	}
	return params
}

type sessionDTO struct {
	ID              string `json:"id"`
	TypeID          string `json:"type_id"`
	TypeName        string `json:"type_name,omitempty"`
	Start           string `json:"start"`
	End             string `json:"end"`
	DurationMinutes int    `json:"duration_minutes"`
	Completed       bool   `json:"completed"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

type listSessionsResponse struct {
	Sessions []sessionDTO `json:"sessions"`
}

func toSessionDTO(session application.Session) sessionDTO {
	end := session.Start.Add(time.Duration(session.DurationMinutes) * time.Minute)
	return sessionDTO{
		ID:              session.ID,
		TypeID:          session.TypeID,
		TypeName:        session.TypeName,
		Start:           session.Start.Format(time.RFC3339),
		End:             end.Format(time.RFC3339),
		DurationMinutes: session.DurationMinutes,
		Completed:       session.Completed,
		CreatedAt:       session.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:       session.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toSessionDTOs(sessions []application.Session) []sessionDTO {
	if len(sessions) == 0 {
		return nil
	}
	out := make([]sessionDTO, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, toSessionDTO(session))
	}
	return out
}

type conflictResponse struct {
	Conflict bool                    `json:"conflict"`
	Sessions []conflictingSessionDTO `json:"conflicting_sessions,omitempty"`
}

type conflictingSessionDTO struct {
	SessionID       string `json:"session_id"`
	TypeName        string `json:"type_name,omitempty"`
	Start           string `json:"start"`
	DurationMinutes int    `json:"duration_minutes"`
}

func toConflictDTO(result application.ConflictResult) conflictResponse {
	response := conflictResponse{Conflict: result.Conflict}
	for _, session := range result.Sessions {
		response.Sessions = append(response.Sessions, conflictingSessionDTO{
			SessionID:       session.SessionID,
			TypeName:        session.TypeName,
			Start:           session.Start.Format(time.RFC3339),
			DurationMinutes: session.DurationMinutes,
		})
	}
	return response
}
