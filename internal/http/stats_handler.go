package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/session-planner/internal/application"
	"github.com/example/session-planner/internal/stats"
)

type statsService interface {
	Overview(ctx context.Context) (application.StatsOverview, error)
}

type StatsHandler struct {
	service   statsService
	responder responder
}

func NewStatsHandler(service statsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{service: service, responder: newResponder(logger)}
}

func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	overview, err := h.service.Overview(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toStatsResponse(overview))
}

type statsResponse struct {
	Overview overviewDTO       `json:"overview"`
	Types    []typeStatsDTO    `json:"types"`
	ByType   []typeCountersDTO `json:"by_type"`
	Derived  derivedMetricsDTO `json:"derived"`
}

type overviewDTO struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Upcoming       int     `json:"upcoming"`
	CompletionRate float64 `json:"completion_rate"`
}

type typeStatsDTO struct {
	TypeID             string   `json:"type_id"`
	Name               string   `json:"name"`
	Category           string   `json:"category,omitempty"`
	Priority           int      `json:"priority"`
	LastScheduled      *string  `json:"last_scheduled,omitempty"`
	UpcomingCount      int      `json:"upcoming_count"`
	CompletedCount     int      `json:"completed_count"`
	AverageSpacingDays *float64 `json:"average_spacing_days,omitempty"`
}

type typeCountersDTO struct {
	TypeID   string `json:"type_id"`
	TypeName string `json:"type_name"`
	overviewDTO
}

type derivedMetricsDTO struct {
	AverageSpacingDays    *float64 `json:"average_spacing_days,omitempty"`
	CurrentStreak         int      `json:"current_streak"`
	LongestStreak         int      `json:"longest_streak"`
	MostProductiveWeekday *string  `json:"most_productive_weekday,omitempty"`
	DistinctCompletedDays int      `json:"distinct_completed_days"`
}

func toStatsResponse(overview application.StatsOverview) statsResponse {
	response := statsResponse{
		Overview: toOverviewDTO(overview.Aggregate.Overview),
		Derived: derivedMetricsDTO{
			AverageSpacingDays:    overview.Aggregate.Derived.AverageSpacingDays,
			CurrentStreak:         overview.Aggregate.Derived.CurrentStreak,
			LongestStreak:         overview.Aggregate.Derived.LongestStreak,
			DistinctCompletedDays: overview.Aggregate.Derived.DistinctCompletedDays,
		},
	}
	if weekday := overview.Aggregate.Derived.MostProductiveWeekday; weekday != nil {
		name := weekday.String()
		response.Derived.MostProductiveWeekday = &name
	}
	for _, typeStats := range overview.Types {
		dto := typeStatsDTO{
			TypeID:             typeStats.TypeID,
			Name:               typeStats.Name,
			Category:           typeStats.Category,
			Priority:           typeStats.Priority,
			UpcomingCount:      typeStats.UpcomingCount,
			CompletedCount:     typeStats.CompletedCount,
			AverageSpacingDays: typeStats.AverageSpacingDays,
		}
		if typeStats.LastScheduled != nil {
			formatted := typeStats.LastScheduled.Format(time.RFC3339)
			dto.LastScheduled = &formatted
		}
		response.Types = append(response.Types, dto)
	}
	for _, counters := range overview.Aggregate.ByType {
		response.ByType = append(response.ByType, typeCountersDTO{
			TypeID:      counters.TypeID,
			TypeName:    counters.TypeName,
			overviewDTO: toOverviewDTO(counters.Overview),
		})
	}
	return response
}

func toOverviewDTO(overview stats.Overview) overviewDTO {
	return overviewDTO{
		Total:          overview.Total,
		Completed:      overview.Completed,
		Upcoming:       overview.Upcoming,
		CompletionRate: overview.CompletionRate,
	}
}
