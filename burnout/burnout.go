// Package burnout scores one participant's meeting load as a burnout risk
// indicator. The score is an unbounded weighted heuristic, not a probability.
package burnout

import (
	"sort"
	"time"

	"meeting-insights/models"
)

const (
	// backToBackGap is the largest pause between meetings that still counts
	// as back-to-back.
	backToBackGap = 15 * time.Minute

	// afterHoursStart / afterHoursEnd bound the normal meeting day; starts
	// outside (hour < 9 or hour > 18) count as after-hours.
	afterHoursStart = 9
	afterHoursEnd   = 18

	// streakThresholdHours is the continuous-meeting streak beyond which the
	// fixed streak penalty applies.
	streakThresholdHours = 4

	weightLoad       = 30
	weightBackToBack = 20
	weightAfterHours = 15
	weightWeekend    = 15
	weightStreak     = 20
)

// Score computes burnout metrics from one participant's busy intervals.
// Empty input yields the zero value.
func Score(intervals []models.Interval) models.BurnoutMetrics {
	sorted := make([]models.Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].End.Before(sorted[j].End)
		}
		return sorted[i].Start.Before(sorted[j].Start)
	})

	var m models.BurnoutMetrics
	var prevEnd time.Time
	var streak float64

	for _, iv := range sorted {
		duration := iv.Duration().Hours()
		m.TotalHours += duration

		// Back-to-back is measured from the previous event's end, not the
		// previous free-gap boundary.
		if !prevEnd.IsZero() && iv.Start.Sub(prevEnd) <= backToBackGap {
			streak += duration
			m.BackToBackCount++
		} else {
			streak = duration
		}
		if streak > m.LongestStreakHours {
			m.LongestStreakHours = streak
		}
		prevEnd = iv.End

		if h := iv.Start.Hour(); h < afterHoursStart || h > afterHoursEnd {
			m.AfterHoursCount++
		}
		if wd := iv.Start.Weekday(); wd == time.Saturday || wd == time.Sunday {
			m.WeekendCount++
		}
	}

	m.Score = (m.TotalHours/8)*weightLoad +
		float64(m.BackToBackCount)*weightBackToBack +
		float64(m.AfterHoursCount)*weightAfterHours +
		float64(m.WeekendCount)*weightWeekend
	if m.LongestStreakHours > streakThresholdHours {
		m.Score += weightStreak
	}
	return m
}
