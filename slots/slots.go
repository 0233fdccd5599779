// Package slots finds and ranks candidate meeting slots that fit every
// participant's calendar across the next five weekdays.
package slots

import (
	"sort"
	"time"

	"meeting-insights/errors"
	"meeting-insights/interval"
	"meeting-insights/models"
)

const (
	// Working-hour bounds for candidate slots. Slots never start before
	// workStartHour or extend past workEndHour.
	workStartHour = 9
	workEndHour   = 18

	// searchDays is how many weekdays ahead of the reference time are
	// searched. Weekends are skipped entirely, not deprioritized.
	searchDays = 5

	// maxResults caps the ranked slot list.
	maxResults = 5
)

// ParticipantSchedule is one participant's busy intervals as produced by the
// interval package. Participants whose calendars could not be fetched must be
// excluded by the caller before ranking, never treated as fully free.
type ParticipantSchedule struct {
	Participant string
	Intervals   []models.Interval
}

// Find pools all participants' busy intervals and returns up to five
// candidate slots of exactly durationMinutes, ranked by time-of-day score
// (ties broken by earliest start). The search covers the next five weekdays
// after now, within working hours. An empty result means no window satisfies
// the constraints; it is a normal outcome, not an error.
func Find(schedules []ParticipantSchedule, durationMinutes int, now time.Time) ([]models.Slot, error) {
	if len(schedules) == 0 {
		return nil, errors.ErrNoParticipants
	}
	if durationMinutes <= 0 {
		return nil, errors.ErrInvalidDuration
	}

	var busy []models.Interval
	for _, s := range schedules {
		busy = append(busy, s.Intervals...)
	}
	sort.Slice(busy, func(i, j int) bool {
		if busy[i].Start.Equal(busy[j].Start) {
			return busy[i].End.Before(busy[j].End)
		}
		return busy[i].Start.Before(busy[j].Start)
	})

	var candidates []models.Slot
	for _, day := range nextWeekdays(now, searchDays) {
		candidates = append(candidates, findDay(busy, day, durationMinutes)...)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score == candidates[j].Score {
			return candidates[i].Start.Before(candidates[j].Start)
		}
		return candidates[i].Score > candidates[j].Score
	})
	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}
	return candidates, nil
}

// findDay runs the free-gap sweep for one day and emits a fixed-length
// candidate anchored at the start of every gap long enough to hold it.
func findDay(busy []models.Interval, day time.Time, durationMinutes int) []models.Slot {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), workStartHour, 0, 0, 0, day.Location())
	dayEnd := time.Date(day.Year(), day.Month(), day.Day(), workEndHour, 0, 0, 0, day.Location())
	duration := time.Duration(durationMinutes) * time.Minute

	var slots []models.Slot
	for _, gap := range interval.Gaps(busy, dayStart, dayEnd) {
		if gap.Duration() < duration {
			continue
		}
		start := gap.Start
		slots = append(slots, models.Slot{
			Start:           start,
			End:             start.Add(duration),
			Score:           timeOfDayScore(start.Hour()),
			DurationMinutes: durationMinutes,
		})
	}
	return slots
}

// nextWeekdays returns the next n weekdays strictly after the day containing
// ref.
func nextWeekdays(ref time.Time, n int) []time.Time {
	days := make([]time.Time, 0, n)
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	for len(days) < n {
		day = day.AddDate(0, 0, 1)
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		days = append(days, day)
	}
	return days
}

// timeOfDayScore ranks slot starts: mornings first, early afternoons next,
// lunchtime grudgingly, everything else last.
func timeOfDayScore(hour int) float64 {
	switch {
	case hour >= 9 && hour < 12:
		return 10
	case hour >= 14 && hour < 16:
		return 8
	case hour >= 12 && hour < 14:
		return 5
	default:
		return 3
	}
}
