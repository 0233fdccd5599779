package workload_test

import (
	"testing"
	"time"

	"meeting-insights/models"
	"meeting-insights/workload"

	"github.com/stretchr/testify/assert"
)

func day(d, hour, minute int) time.Time {
	return time.Date(2025, 3, d, hour, minute, 0, 0, time.UTC)
}

func iv(start, end time.Time) models.Interval {
	return models.Interval{Start: start, End: end}
}

func TestAnalyzeDayHorizon(t *testing.T) {
	// Seven hours of meetings in one day crosses the >6h high-risk line.
	input := []models.Interval{
		iv(day(3, 9, 0), day(3, 12, 0)),
		iv(day(3, 13, 0), day(3, 15, 0)),
		iv(day(3, 15, 30), day(3, 17, 30)),
	}

	report := workload.Analyze(input, models.HorizonDay)

	assert.Equal(t, 3, report.TotalMeetings)
	assert.InDelta(t, 7.0, report.TotalHours, 1e-9)
	assert.Equal(t, models.RiskHigh, report.Risk)
	assert.Equal(t, "Hour", report.TimeUnit)
	// The 9:00 bucket holds the 3-hour block.
	assert.Equal(t, "9:00 - 10:00", report.BusiestBucket)
	assert.InDelta(t, 3.0/24, report.AverageMeetings, 1e-9)
}

func TestAnalyzeRiskThresholds(t *testing.T) {
	tests := map[string]struct {
		horizon  models.Horizon
		hours    float64
		expected models.RiskLevel
	}{
		"DayLow":       {models.HorizonDay, 3, models.RiskLow},
		"DayModerate":  {models.HorizonDay, 5, models.RiskModerate},
		"DayHigh":      {models.HorizonDay, 7, models.RiskHigh},
		"WeekModerate": {models.HorizonWeek, 25, models.RiskModerate},
		"WeekHigh":     {models.HorizonWeek, 31, models.RiskHigh},
		"MonthLow":     {models.HorizonMonth, 60, models.RiskLow},
		"MonthHigh":    {models.HorizonMonth, 121, models.RiskHigh},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			// Spread the hours over 2h meetings on consecutive days, far
			// enough apart that break counting does not matter here.
			var input []models.Interval
			remaining := tt.hours
			d := 3
			for remaining > 0 {
				h := 2.0
				if remaining < h {
					h = remaining
				}
				start := day(d, 9, 0)
				input = append(input, iv(start, start.Add(time.Duration(h*float64(time.Hour)))))
				remaining -= h
				d++
			}

			report := workload.Analyze(input, tt.horizon)
			assert.Equal(t, tt.expected, report.Risk)
		})
	}
}

func TestAnalyzeBusiestDayForWeek(t *testing.T) {
	// Two meetings on Tuesday, one each on Monday and Wednesday; week
	// horizon ranks buckets by count.
	input := []models.Interval{
		iv(day(3, 9, 0), day(3, 10, 0)),  // Monday
		iv(day(4, 9, 0), day(4, 9, 30)),  // Tuesday
		iv(day(4, 15, 0), day(4, 16, 0)), // Tuesday
		iv(day(5, 9, 0), day(5, 12, 0)),  // Wednesday (longest, fewer count)
	}

	report := workload.Analyze(input, models.HorizonWeek)

	assert.Equal(t, "Tuesday", report.BusiestBucket)
	assert.Equal(t, "Day", report.TimeUnit)
	assert.InDelta(t, 4.0/7, report.AverageMeetings, 1e-9)
}

func TestAnalyzeBreakCounting(t *testing.T) {
	// 9-10, 10:45-11:45 (45m gap => break), 11:50-12:20 (5m gap => none).
	input := []models.Interval{
		iv(day(3, 9, 0), day(3, 10, 0)),
		iv(day(3, 10, 45), day(3, 11, 45)),
		iv(day(3, 11, 50), day(3, 12, 20)),
	}

	report := workload.Analyze(input, models.HorizonDay)

	assert.Equal(t, 1, report.BreakCount)
	assert.Equal(t, 1, report.SuggestedBreaks) // ceil(3/3)
	assert.Equal(t, 0, report.BreakDeficit())
}

func TestAnalyzeBreakDeficit(t *testing.T) {
	// Four back-to-back meetings, zero breaks, ceil(4/3)=2 suggested.
	input := []models.Interval{
		iv(day(3, 9, 0), day(3, 10, 0)),
		iv(day(3, 10, 0), day(3, 11, 0)),
		iv(day(3, 11, 0), day(3, 12, 0)),
		iv(day(3, 12, 0), day(3, 13, 0)),
	}

	report := workload.Analyze(input, models.HorizonDay)

	assert.Equal(t, 0, report.BreakCount)
	assert.Equal(t, 2, report.SuggestedBreaks)
	assert.Equal(t, 2, report.BreakDeficit())
}

func TestAnalyzeIdempotent(t *testing.T) {
	input := []models.Interval{
		iv(day(3, 9, 0), day(3, 10, 0)),
		iv(day(4, 11, 0), day(4, 12, 30)),
	}

	first := workload.Analyze(input, models.HorizonWeek)
	second := workload.Analyze(input, models.HorizonWeek)
	assert.Equal(t, first, second)
}

func TestAnalyzeEmpty(t *testing.T) {
	report := workload.Analyze(nil, models.HorizonDay)

	assert.Equal(t, 0, report.TotalMeetings)
	assert.Equal(t, "None", report.BusiestBucket)
	assert.Equal(t, models.RiskLow, report.Risk)
	assert.Equal(t, 0, report.SuggestedBreaks)
}
