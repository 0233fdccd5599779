// Package breaks turns a participant's meeting schedule into ranked break
// suggestions: free-gap breaks between meetings and recovery breaks after
// long ones.
package breaks

import (
	"fmt"
	"time"

	"meeting-insights/models"
)

const (
	// breakLength is the fixed length of every suggested break.
	breakLength = 30 * time.Minute

	// minGap is the smallest free gap worth suggesting a break in.
	minGap = 30 * time.Minute

	// highPriorityGap upgrades a gap suggestion to high priority.
	highPriorityGap = 60 * time.Minute

	// extendedGap additionally earns a second, centered suggestion.
	extendedGap = 90 * time.Minute

	// longMeeting is the duration at which a meeting earns a recovery break.
	longMeeting = 90 * time.Minute
)

// Suggest sweeps the intervals (sorted ascending, all-day events already
// excluded) and emits break suggestions. Suggestions are not deduplicated
// against each other even when their windows overlap; the caller picks one.
func Suggest(intervals []models.Interval) []models.BreakSuggestion {
	suggestions := make([]models.BreakSuggestion, 0)
	var prevEnd time.Time

	for _, iv := range intervals {
		if !prevEnd.IsZero() {
			gap := iv.Start.Sub(prevEnd)
			if gap >= minGap {
				priority := models.PriorityMedium
				if gap >= highPriorityGap {
					priority = models.PriorityHigh
				}
				suggestions = append(suggestions, models.BreakSuggestion{
					Start:    prevEnd,
					End:      prevEnd.Add(breakLength),
					Type:     models.BreakGap,
					Priority: priority,
					Reason:   fmt.Sprintf("%d minute gap available between meetings", int(gap.Minutes())),
				})

				if gap >= extendedGap {
					mid := prevEnd.Add(gap / 2)
					suggestions = append(suggestions, models.BreakSuggestion{
						Start:    mid.Add(-breakLength / 2),
						End:      mid.Add(breakLength / 2),
						Type:     models.BreakRecovery,
						Priority: models.PriorityHigh,
						Reason:   "Extended break during long gap",
					})
				}
			}
		}
		prevEnd = iv.End

		if iv.Duration() >= longMeeting {
			suggestions = append(suggestions, models.BreakSuggestion{
				Start:    iv.End,
				End:      iv.End.Add(breakLength),
				Type:     models.BreakRecovery,
				Priority: models.PriorityHigh,
				Reason:   "Recovery break after long meeting",
			})
		}
	}
	return suggestions
}
