package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/example/session-planner/internal/application"
	"github.com/example/session-planner/internal/config"
)

var (
	suggestTypeID   string
	suggestDuration int
	suggestDays     int
	suggestLimit    int
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	slotStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E6EAF2"))
	scoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	reasonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B1B8C7"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest the best slots for an activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		svcs, err := buildServices(cmd, cfg, logger)
		if err != nil {
			return err
		}
		defer svcs.store.Close()

		result, err := svcs.suggestions.Suggest(cmd.Context(), application.SuggestParams{
			TypeID:          suggestTypeID,
			DurationMinutes: suggestDuration,
			DaysAhead:       suggestDays,
			Limit:           suggestLimit,
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderSuggestions(result))
		return nil
	},
}

func init() {
	suggestCmd.Flags().StringVar(&suggestTypeID, "type", "", "session type identifier (required)")
	suggestCmd.Flags().IntVar(&suggestDuration, "duration", 0, "session length in minutes (default 60)")
	suggestCmd.Flags().IntVar(&suggestDays, "days", 0, "planning horizon in days (default 7)")
	suggestCmd.Flags().IntVar(&suggestLimit, "limit", 0, "maximum suggestions (default 5)")
	suggestCmd.MarkFlagRequired("type")
}

func renderSuggestions(result application.SuggestionResult) string {
	var b strings.Builder

	header := fmt.Sprintf("%s (priority %d/5)", result.TypeStats.Name, result.TypeStats.Priority)
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n")

	history := fmt.Sprintf("%d completed, %d upcoming", result.TypeStats.CompletedCount, result.TypeStats.UpcomingCount)
	if result.TypeStats.AverageSpacingDays != nil {
		history += fmt.Sprintf(", usually every %.1f days", *result.TypeStats.AverageSpacingDays)
	}
	b.WriteString(reasonStyle.Render(history))
	b.WriteString("\n\n")

	if result.Message != "" {
		b.WriteString(noticeStyle.Render(result.Message))
		return b.String()
	}

	for _, suggestion := range result.Suggestions {
		slot := fmt.Sprintf("%d. %s - %s",
			suggestion.Rank,
			suggestion.Start.Format("Mon Jan 2 15:04"),
			suggestion.End.Format("15:04"))
		b.WriteString(slotStyle.Render(slot))
		b.WriteString("  ")
		b.WriteString(scoreStyle.Render(fmt.Sprintf("score %d", suggestion.Score)))
		b.WriteString("\n")
		for _, reason := range suggestion.Reasons {
			b.WriteString(reasonStyle.Render("   - " + reason))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
