package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/session-planner/internal/application"
)

type sessionTypeService interface {
	CreateSessionType(ctx context.Context, input application.SessionTypeInput) (application.SessionType, error)
	UpdateSessionType(ctx context.Context, id string, input application.SessionTypeInput) (application.SessionType, error)
	GetSessionType(ctx context.Context, id string) (application.SessionType, error)
	ListSessionTypes(ctx context.Context) ([]application.SessionType, error)
	DeleteSessionType(ctx context.Context, id string) error
}

type SessionTypeHandler struct {
	service   sessionTypeService
	responder responder
}

func NewSessionTypeHandler(service sessionTypeService, logger *slog.Logger) *SessionTypeHandler {
	return &SessionTypeHandler{service: service, responder: newResponder(logger)}
}

func (h *SessionTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req sessionTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	created, err := h.service.CreateSessionType(r.Context(), req.toInput())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toSessionTypeDTO(created))
}

func (h *SessionTypeHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := TypeIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidTypeID)
		return
	}

	var req sessionTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	updated, err := h.service.UpdateSessionType(r.Context(), id, req.toInput())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toSessionTypeDTO(updated))
}

func (h *SessionTypeHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := TypeIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidTypeID)
		return
	}

	sessionType, err := h.service.GetSessionType(r.Context(), id)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toSessionTypeDTO(sessionType))
}

func (h *SessionTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	types, err := h.service.ListSessionTypes(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	response := listSessionTypesResponse{SessionTypes: toSessionTypeDTOs(types)}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, response)
}

func (h *SessionTypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := TypeIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidTypeID)
		return
	}

	if err := h.service.DeleteSessionType(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type sessionTypeRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Priority int    `json:"priority"`
}

func (r sessionTypeRequest) toInput() application.SessionTypeInput {
	return application.SessionTypeInput{
		Name:     strings.TrimSpace(r.Name),
		Category: strings.TrimSpace(r.Category),
		Priority: r.Priority,
	}
}

type sessionTypeDTO struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Category          string `json:"category,omitempty"`
	Priority          int    `json:"priority"`
	CompletedSessions int    `json:"completed_sessions"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

type listSessionTypesResponse struct {
	SessionTypes []sessionTypeDTO `json:"session_types"`
}

func toSessionTypeDTO(sessionType application.SessionType) sessionTypeDTO {
	return sessionTypeDTO{
		ID:                sessionType.ID,
		Name:              sessionType.Name,
		Category:          sessionType.Category,
		Priority:          sessionType.Priority,
		CompletedSessions: sessionType.CompletedSessions,
		CreatedAt:         sessionType.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:         sessionType.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toSessionTypeDTOs(types []application.SessionType) []sessionTypeDTO {
	if len(types) == 0 {
		return nil
	}
	out := make([]sessionTypeDTO, 0, len(types))
	for _, sessionType := range types {
		out = append(out, toSessionTypeDTO(sessionType))
	}
	return out
}
