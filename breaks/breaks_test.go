package breaks_test

import (
	"testing"
	"time"

	"meeting-insights/breaks"
	"meeting-insights/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 3, hour, minute, 0, 0, time.UTC)
}

func iv(start, end time.Time) models.Interval {
	return models.Interval{Start: start, End: end}
}

func TestSuggest(t *testing.T) {
	tests := map[string]struct {
		input    []models.Interval
		expected []models.BreakSuggestion
	}{
		"Empty": {
			input:    nil,
			expected: []models.BreakSuggestion{},
		},
		"ShortGapIgnored": {
			input: []models.Interval{
				iv(at(9, 0), at(10, 0)),
				iv(at(10, 20), at(11, 0)),
			},
			expected: []models.BreakSuggestion{},
		},
		"MediumPriorityGap": {
			// 45 minute gap: one medium gap break at the prior end.
			input: []models.Interval{
				iv(at(9, 0), at(10, 0)),
				iv(at(10, 45), at(11, 30)),
			},
			expected: []models.BreakSuggestion{
				{
					Start:    at(10, 0),
					End:      at(10, 30),
					Type:     models.BreakGap,
					Priority: models.PriorityMedium,
					Reason:   "45 minute gap available between meetings",
				},
			},
		},
		"HighPriorityGap": {
			// 60 minute gap upgrades to high priority.
			input: []models.Interval{
				iv(at(9, 0), at(10, 0)),
				iv(at(11, 0), at(11, 30)),
			},
			expected: []models.BreakSuggestion{
				{
					Start:    at(10, 0),
					End:      at(10, 30),
					Type:     models.BreakGap,
					Priority: models.PriorityHigh,
					Reason:   "60 minute gap available between meetings",
				},
			},
		},
		"ExtendedGapAddsCenteredRecovery": {
			// 120 minute gap: gap break plus a recovery break centered on
			// the midpoint (11:00).
			input: []models.Interval{
				iv(at(9, 0), at(10, 0)),
				iv(at(12, 0), at(12, 30)),
			},
			expected: []models.BreakSuggestion{
				{
					Start:    at(10, 0),
					End:      at(10, 30),
					Type:     models.BreakGap,
					Priority: models.PriorityHigh,
					Reason:   "120 minute gap available between meetings",
				},
				{
					Start:    at(10, 45),
					End:      at(11, 15),
					Type:     models.BreakRecovery,
					Priority: models.PriorityHigh,
					Reason:   "Extended break during long gap",
				},
			},
		},
		"RecoveryAfterLongMeeting": {
			// Single 120-minute event 9:00-11:00 emits one recovery break
			// at 11:00-11:30.
			input: []models.Interval{
				iv(at(9, 0), at(11, 0)),
			},
			expected: []models.BreakSuggestion{
				{
					Start:    at(11, 0),
					End:      at(11, 30),
					Type:     models.BreakRecovery,
					Priority: models.PriorityHigh,
					Reason:   "Recovery break after long meeting",
				},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := breaks.Suggest(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSuggestOverlappingSuggestionsKept(t *testing.T) {
	// A 90-minute meeting followed by a 90-minute gap produces a recovery
	// break and a gap break over the same window; both are kept.
	input := []models.Interval{
		iv(at(9, 0), at(10, 30)),
		iv(at(12, 0), at(12, 30)),
	}

	got := breaks.Suggest(input)
	require.Len(t, got, 3)
	assert.Equal(t, models.BreakRecovery, got[0].Type) // after the long meeting
	assert.Equal(t, models.BreakGap, got[1].Type)
	assert.Equal(t, models.BreakRecovery, got[2].Type) // centered in the gap
	assert.Equal(t, got[0].Start, got[1].Start)
}
