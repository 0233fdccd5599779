package interval_test

import (
	"testing"
	"time"

	"meeting-insights/interval"
	"meeting-insights/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 3, hour, minute, 0, 0, time.UTC) // a Monday
}

func TestFromEvents(t *testing.T) {
	tests := map[string]struct {
		input    []models.Event
		expected []models.Interval
	}{
		"SortsByStartThenEnd": {
			input: []models.Event{
				{ID: "b", Start: at(11, 0), End: at(12, 0)},
				{ID: "a", Start: at(9, 0), End: at(10, 0)},
				{ID: "c", Start: at(9, 0), End: at(9, 30)},
			},
			expected: []models.Interval{
				{Start: at(9, 0), End: at(9, 30)},
				{Start: at(9, 0), End: at(10, 0)},
				{Start: at(11, 0), End: at(12, 0)},
			},
		},
		"DropsAllDayAndMalformed": {
			input: []models.Event{
				{ID: "allday", AllDay: true, Start: at(0, 0), End: at(23, 59)},
				{ID: "nostart", End: at(10, 0)},
				{ID: "inverted", Start: at(12, 0), End: at(11, 0)},
				{ID: "zero", Start: at(10, 0), End: at(10, 0)},
				{ID: "ok", Start: at(14, 0), End: at(15, 0)},
			},
			expected: []models.Interval{
				{Start: at(14, 0), End: at(15, 0)},
			},
		},
		"Empty": {
			input:    nil,
			expected: []models.Interval{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := interval.FromEvents(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGaps(t *testing.T) {
	dayStart := at(9, 0)
	dayEnd := at(18, 0)

	tests := map[string]struct {
		busy     []models.Interval
		expected []models.Interval
	}{
		"EmptyDayIsOneGap": {
			busy: nil,
			expected: []models.Interval{
				{Start: dayStart, End: dayEnd},
			},
		},
		"LeadingMiddleTrailing": {
			busy: []models.Interval{
				{Start: at(10, 0), End: at(11, 0)},
				{Start: at(13, 0), End: at(14, 0)},
			},
			expected: []models.Interval{
				{Start: at(9, 0), End: at(10, 0)},
				{Start: at(11, 0), End: at(13, 0)},
				{Start: at(14, 0), End: at(18, 0)},
			},
		},
		"OverlappingBusyIntervals": {
			busy: []models.Interval{
				{Start: at(9, 0), End: at(11, 0)},
				{Start: at(10, 0), End: at(12, 0)},
			},
			expected: []models.Interval{
				{Start: at(12, 0), End: at(18, 0)},
			},
		},
		"NestedBusyIntervals": {
			busy: []models.Interval{
				{Start: at(9, 0), End: at(13, 0)},
				{Start: at(10, 0), End: at(11, 0)},
			},
			expected: []models.Interval{
				{Start: at(13, 0), End: at(18, 0)},
			},
		},
		"FullyBooked": {
			busy: []models.Interval{
				{Start: at(9, 0), End: at(18, 0)},
			},
			expected: nil,
		},
		"BusyOutsideWindow": {
			busy: []models.Interval{
				{Start: at(7, 0), End: at(8, 0)},
				{Start: at(19, 0), End: at(20, 0)},
			},
			expected: []models.Interval{
				{Start: at(9, 0), End: at(18, 0)},
			},
		},
		"BusyStraddlesWindowStart": {
			busy: []models.Interval{
				{Start: at(8, 0), End: at(10, 0)},
			},
			expected: []models.Interval{
				{Start: at(10, 0), End: at(18, 0)},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := interval.Gaps(tt.busy, dayStart, dayEnd)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// The gaps plus the busy time must tile the window exactly: gaps are pairwise
// disjoint, in order, and no gap overlaps any busy interval.
func TestGapsCoverageProperty(t *testing.T) {
	dayStart := at(9, 0)
	dayEnd := at(18, 0)
	busy := []models.Interval{
		{Start: at(9, 30), End: at(10, 15)},
		{Start: at(10, 0), End: at(11, 0)},
		{Start: at(10, 30), End: at(10, 45)},
		{Start: at(14, 0), End: at(15, 30)},
	}

	gaps := interval.Gaps(busy, dayStart, dayEnd)
	require.NotEmpty(t, gaps)

	for i, g := range gaps {
		assert.True(t, g.Start.Before(g.End), "gap %d must be non-empty", i)
		if i > 0 {
			assert.True(t, !g.Start.Before(gaps[i-1].End), "gaps must not overlap")
		}
		for _, b := range busy {
			overlap := g.Start.Before(b.End) && b.Start.Before(g.End)
			assert.False(t, overlap, "gap %v overlaps busy %v", g, b)
		}
	}

	// Sum of gap durations + merged busy time inside the window == window.
	var gapTotal time.Duration
	for _, g := range gaps {
		gapTotal += g.Duration()
	}
	// Busy time merged: 9:30-11:00 and 14:00-15:30 => 3h.
	assert.Equal(t, 9*time.Hour-3*time.Hour, gapTotal)
}
