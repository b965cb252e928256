package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/example/session-planner/internal/application"
)

type suggestionService interface {
	Suggest(ctx context.Context, params application.SuggestParams) (application.SuggestionResult, error)
}

type SuggestionHandler struct {
	service   suggestionService
	responder responder
}

func NewSuggestionHandler(service suggestionService, logger *slog.Logger) *SuggestionHandler {
	return &SuggestionHandler{service: service, responder: newResponder(logger)}
}

func (h *SuggestionHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	params := application.SuggestParams{
		TypeID: strings.TrimSpace(r.URL.Query().Get("type_id")),
	}
	for key, target := range map[string]*int{
		"duration":   &params.DurationMinutes,
		"days_ahead": &params.DaysAhead,
		"limit":      &params.Limit,
	} {
		value, err := queryInt(r, key)
		if err != nil {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, fmt.Errorf("query parameter %q must be an integer", key))
			return
		}
		*target = value
	}

	result, err := h.service.Suggest(r.Context(), params)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toSuggestionResponse(result))
}

// queryInt treats an absent value as zero so the service can apply its
// defaults; a malformed value is the caller's error.
func queryInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

type suggestionResponse struct {
	Suggestions []suggestionDTO     `json:"suggestions"`
	TypeStats   typeStatsSummaryDTO `json:"type_stats"`
	Message     string              `json:"message,omitempty"`
}

type suggestionDTO struct {
	Rank            int      `json:"rank"`
	Start           string   `json:"start"`
	End             string   `json:"end"`
	DurationMinutes int      `json:"duration_minutes"`
	Score           int      `json:"score"`
	Reasons         []string `json:"reasons"`
}

type typeStatsSummaryDTO struct {
	Name               string   `json:"name"`
	Category           string   `json:"category,omitempty"`
	Priority           int      `json:"priority"`
	LastScheduled      *string  `json:"last_scheduled,omitempty"`
	UpcomingCount      int      `json:"upcoming_count"`
	CompletedCount     int      `json:"completed_count"`
	AverageSpacingDays *float64 `json:"average_spacing_days,omitempty"`
}

func toSuggestionResponse(result application.SuggestionResult) suggestionResponse {
	response := suggestionResponse{
		TypeStats: typeStatsSummaryDTO{
			Name:               result.TypeStats.Name,
			Category:           result.TypeStats.Category,
			Priority:           result.TypeStats.Priority,
			UpcomingCount:      result.TypeStats.UpcomingCount,
			CompletedCount:     result.TypeStats.CompletedCount,
			AverageSpacingDays: result.TypeStats.AverageSpacingDays,
		},
		Message: result.Message,
	}
	if result.TypeStats.LastScheduled != nil {
		formatted := result.TypeStats.LastScheduled.Format(time.RFC3339)
		response.TypeStats.LastScheduled = &formatted
	}
	for _, suggestion := range result.Suggestions {
		response.Suggestions = append(response.Suggestions, suggestionDTO{
			Rank:            suggestion.Rank,
			Start:           suggestion.Start.Format(time.RFC3339),
			End:             suggestion.End.Format(time.RFC3339),
			DurationMinutes: suggestion.DurationMinutes,
			Score:           suggestion.Score,
			Reasons:         append([]string(nil), suggestion.Reasons...),
		})
	}
	return response
}
