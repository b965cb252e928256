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

type availabilityService interface {
	CreateWindow(ctx context.Context, input application.AvailabilityWindowInput) (application.AvailabilityWindow, error)
	UpdateWindow(ctx context.Context, id string, input application.AvailabilityWindowInput) (application.AvailabilityWindow, error)
	ListWindows(ctx context.Context) ([]application.AvailabilityWindow, error)
	DeleteWindow(ctx context.Context, id string) error
}

type AvailabilityHandler struct {
	service   availabilityService
	responder responder
}

func NewAvailabilityHandler(service availabilityService, logger *slog.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{service: service, responder: newResponder(logger)}
}

func (h *AvailabilityHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req availabilityWindowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	created, err := h.service.CreateWindow(r.Context(), req.toInput())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toWindowDTO(created))
}

func (h *AvailabilityHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := WindowIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidWindowID)
		return
	}

	var req availabilityWindowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	updated, err := h.service.UpdateWindow(r.Context(), id, req.toInput())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toWindowDTO(updated))
}

func (h *AvailabilityHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	windows, err := h.service.ListWindows(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	response := listWindowsResponse{Windows: toWindowDTOs(windows)}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, response)
}

func (h *AvailabilityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := WindowIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidWindowID)
		return
	}

	if err := h.service.DeleteWindow(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type availabilityWindowRequest struct {
	Weekday int    `json:"weekday"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

func (r availabilityWindowRequest) toInput() application.AvailabilityWindowInput {
	return application.AvailabilityWindowInput{
		Weekday: r.Weekday,
		Start:   strings.TrimSpace(r.Start),
		End:     strings.TrimSpace(r.End),
	}
}

type availabilityWindowDTO struct {
	ID        string `json:"id"`
	Weekday   int    `json:"weekday"`
	Start     string `json:"start"`
	End       string `json:"end"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type listWindowsResponse struct {
	Windows []availabilityWindowDTO `json:"windows"`
}

func toWindowDTO(window application.AvailabilityWindow) availabilityWindowDTO {
	return availabilityWindowDTO{
		ID:        window.ID,
		Weekday:   window.Weekday,
		Start:     window.Start,
		End:       window.End,
		CreatedAt: window.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: window.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toWindowDTOs(windows []application.AvailabilityWindow) []availabilityWindowDTO {
	if len(windows) == 0 {
		return nil
	}
	out := make([]availabilityWindowDTO, 0, len(windows))
	for _, window := range windows {
		out = append(out, toWindowDTO(window))
	}
	return out
}
