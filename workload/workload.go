// Package workload buckets a participant's meetings over a horizon and
// derives load statistics plus a burnout risk verdict.
package workload

import (
	"fmt"
	"math"
	"sort"
	"time"

	"meeting-insights/models"
)

// minBreakGap is the smallest adjacent-meeting gap that counts as a break.
const minBreakGap = 30 * time.Minute

// meetingsPerBreak drives the suggested break count: one break per three
// meetings, rounded up.
const meetingsPerBreak = 3

// Analyze buckets the intervals by hour (day horizon) or by calendar day
// (week/month horizons) and derives totals, the busiest bucket, the average
// per bucket unit and the horizon-relative risk verdict. The average divides
// by the horizon's fixed bucket count, not by the number of populated
// buckets. Calling it twice with identical inputs yields identical output.
func Analyze(intervals []models.Interval, horizon models.Horizon) models.WorkloadReport {
	report := models.WorkloadReport{
		Horizon:       horizon,
		TotalMeetings: len(intervals),
		BusiestBucket: "None",
		TimeUnit:      horizon.TimeUnit(),
	}

	sorted := make([]models.Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].End.Before(sorted[j].End)
		}
		return sorted[i].Start.Before(sorted[j].Start)
	})

	// Breaks are gaps of at least 30 minutes between adjacent meetings.
	var prevEnd time.Time
	for _, iv := range sorted {
		if !prevEnd.IsZero() && iv.Start.Sub(prevEnd) >= minBreakGap {
			report.BreakCount++
		}
		prevEnd = iv.End
	}
	report.SuggestedBreaks = int(math.Ceil(float64(len(sorted)) / meetingsPerBreak))

	// Bucket weight is summed hours for the day horizon, meeting count for
	// week/month.
	type bucket struct {
		label  string
		weight float64
	}
	buckets := make(map[string]*bucket)
	keyOrder := make([]string, 0)

	for _, iv := range sorted {
		duration := iv.Duration().Hours()
		report.TotalHours += duration

		var key, label string
		var weight float64
		if horizon == models.HorizonDay {
			h := iv.Start.Hour()
			key = fmt.Sprintf("%02d", h)
			label = fmt.Sprintf("%d:00 - %d:00", h, h+1)
			weight = duration
		} else {
			key = iv.Start.Format("2006-01-02")
			label = iv.Start.Weekday().String()
			weight = 1
		}

		b, ok := buckets[key]
		if !ok {
			b = &bucket{label: label}
			buckets[key] = b
			keyOrder = append(keyOrder, key)
		}
		b.weight += weight
	}

	// Earliest bucket wins ties so the verdict is deterministic.
	sort.Strings(keyOrder)
	maxWeight := 0.0
	for _, key := range keyOrder {
		if b := buckets[key]; b.weight > maxWeight {
			maxWeight = b.weight
			report.BusiestBucket = b.label
		}
	}

	report.AverageMeetings = float64(report.TotalMeetings) / float64(horizon.BucketCount())

	switch {
	case report.TotalHours > horizon.HighRiskHours():
		report.Risk = models.RiskHigh
	case report.TotalHours > horizon.ModerateRiskHours():
		report.Risk = models.RiskModerate
	default:
		report.Risk = models.RiskLow
	}
	return report
}
