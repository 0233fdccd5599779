// Package interval normalizes calendar events into busy intervals and finds
// the free gaps between them. The gap sweep is the shared primitive every
// downstream analysis builds on.
package interval

import (
	"sort"
	"time"

	"meeting-insights/models"
)

// FromEvents converts events into busy intervals, sorted by start time
// ascending (ties by end ascending). All-day events and events lacking
// concrete start/end timestamps are dropped, as are events whose start is
// not strictly before their end.
func FromEvents(events []models.Event) []models.Interval {
	intervals := make([]models.Interval, 0, len(events))
	for _, ev := range events {
		if ev.AllDay || ev.Start.IsZero() || ev.End.IsZero() {
			continue
		}
		if !ev.Start.Before(ev.End) {
			continue
		}
		intervals = append(intervals, models.Interval{Start: ev.Start, End: ev.End})
	}
	sort.Slice(intervals, func(i, j int) bool {
		if intervals[i].Start.Equal(intervals[j].Start) {
			return intervals[i].End.Before(intervals[j].End)
		}
		return intervals[i].Start.Before(intervals[j].Start)
	})
	return intervals
}

// Gaps returns the free intervals within [dayStart, dayEnd) left open by the
// given busy intervals. The intervals must be sorted by start time; they may
// overlap or nest. The single pass keeps a cursor at the end of the busy time
// seen so far: anything between the cursor and the next busy start is free.
// Output intervals are clipped to the window, pairwise disjoint, and together
// with the busy time cover the window exactly.
func Gaps(intervals []models.Interval, dayStart, dayEnd time.Time) []models.Interval {
	var free []models.Interval
	cursor := dayStart

	for _, iv := range intervals {
		if !cursor.Before(dayEnd) {
			break
		}
		if !iv.End.After(cursor) {
			continue
		}
		if iv.Start.After(cursor) {
			gapEnd := iv.Start
			if gapEnd.After(dayEnd) {
				gapEnd = dayEnd
			}
			free = append(free, models.Interval{Start: cursor, End: gapEnd})
		}
		if iv.End.After(cursor) {
			cursor = iv.End
		}
	}

	if cursor.Before(dayEnd) {
		free = append(free, models.Interval{Start: cursor, End: dayEnd})
	}
	return free
}
