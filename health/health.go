// Package health computes the composite calendar health score. Four
// sub-scores, each starting at a perfect 1 and penalized downward, are
// clamped to [0,1] and weighted 25 points each.
package health

import (
	"math"
	"sort"
	"time"

	"meeting-insights/models"
)

const (
	// workdayHours is the assumed working-day length for the focus-time
	// ratio.
	workdayHours = 9

	// crampedGap is the adjacent-meeting gap below which break compliance
	// is penalized.
	crampedGap = 15 * time.Minute

	// workStartHour / workEndHour bound core hours for work-life balance.
	workStartHour = 9
	workEndHour   = 17

	penaltyStep = 0.1
)

// Score computes health metrics from one participant's events for a single
// working day. All-day events are ignored; attendee counts come from the
// events themselves.
func Score(events []models.Event) models.HealthMetrics {
	timed := make([]models.Event, 0, len(events))
	for _, ev := range events {
		if ev.AllDay || ev.Start.IsZero() || ev.End.IsZero() || !ev.Start.Before(ev.End) {
			continue
		}
		timed = append(timed, ev)
	}
	sort.Slice(timed, func(i, j int) bool {
		if timed[i].Start.Equal(timed[j].Start) {
			return timed[i].End.Before(timed[j].End)
		}
		return timed[i].Start.Before(timed[j].Start)
	})

	m := models.HealthMetrics{
		BreakCompliance:   1,
		FocusTimeRatio:    1,
		MeetingEfficiency: 1,
		WorkLifeBalance:   1,
		PositiveFactors:   []string{},
		NegativeFactors:   []string{},
		Recommendations:   []string{},
	}

	var totalHours float64
	run := 0
	for i, ev := range timed {
		duration := ev.End.Sub(ev.Start)
		totalHours += duration.Hours()

		// Consecutive cramped gaps cost progressively more.
		if i > 0 {
			if ev.Start.Sub(timed[i-1].End) < crampedGap {
				run++
				m.BreakCompliance -= penaltyStep * float64(run)
			} else {
				run = 0
			}
		}

		attendees := len(ev.Attendees)
		if duration > 60*time.Minute && attendees > 5 {
			m.MeetingEfficiency -= penaltyStep
		}
		if duration < 15*time.Minute && attendees > 3 {
			m.MeetingEfficiency -= penaltyStep
		}

		if ev.Start.Hour() < workStartHour || ev.End.Hour() >= workEndHour {
			m.WorkLifeBalance -= penaltyStep
		}
	}

	m.FocusTimeRatio = (workdayHours - totalHours) / workdayHours

	m.BreakCompliance = clamp01(m.BreakCompliance)
	m.FocusTimeRatio = clamp01(m.FocusTimeRatio)
	m.MeetingEfficiency = clamp01(m.MeetingEfficiency)
	m.WorkLifeBalance = clamp01(m.WorkLifeBalance)

	m.Score = int(math.Round(25 * (m.BreakCompliance + m.FocusTimeRatio + m.MeetingEfficiency + m.WorkLifeBalance)))

	applyDecisionTable(&m)
	return m
}

// applyDecisionTable fills factor and recommendation texts from fixed
// thresholds.
func applyDecisionTable(m *models.HealthMetrics) {
	if m.BreakCompliance > 0.8 {
		m.PositiveFactors = append(m.PositiveFactors, "Good spacing between meetings")
	} else {
		m.NegativeFactors = append(m.NegativeFactors, "Frequent back-to-back meetings")
		m.Recommendations = append(m.Recommendations, "Leave at least 15 minutes between meetings")
	}

	if m.FocusTimeRatio > 0.5 {
		m.PositiveFactors = append(m.PositiveFactors, "Healthy amount of focus time")
	} else {
		m.NegativeFactors = append(m.NegativeFactors, "Meetings crowd out focus time")
		m.Recommendations = append(m.Recommendations, "Block focus time on your calendar")
	}

	if m.MeetingEfficiency > 0.8 {
		m.PositiveFactors = append(m.PositiveFactors, "Meetings are right-sized")
	} else {
		m.NegativeFactors = append(m.NegativeFactors, "Meetings are too long or too crowded")
		m.Recommendations = append(m.Recommendations, "Shorten large meetings or trim the invite list")
	}

	if m.WorkLifeBalance > 0.8 {
		m.PositiveFactors = append(m.PositiveFactors, "Meetings stay within core hours")
	} else {
		m.NegativeFactors = append(m.NegativeFactors, "Meetings spill outside core hours")
		m.Recommendations = append(m.Recommendations, "Keep meetings within core working hours")
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
