package models

import (
	"math"
	"time"
)

// Event represents a normalized calendar event as delivered by a provider
// adapter. It is shared across packages as the engine's raw input.
type Event struct {
	ID        string    `json:"id"`
	Summary   string    `json:"summary"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	AllDay    bool      `json:"all_day"`
	Attendees []string  `json:"attendees,omitempty"`
	Location  string    `json:"location,omitempty"`
}

// Interval is a contiguous busy time range derived from an event. The
// analyses operate on intervals rather than raw events, except where
// attendee counts matter.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns the length of the interval.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// BurnoutMetrics holds the burnout risk score and its sub-metrics for one
// participant over one time window. Recomputed from scratch each call.
type BurnoutMetrics struct {
	TotalHours         float64 `json:"total_hours"`
	BackToBackCount    int     `json:"back_to_back_count"`
	AfterHoursCount    int     `json:"after_hours_count"`
	WeekendCount       int     `json:"weekend_count"`
	LongestStreakHours float64 `json:"longest_streak_hours"`
	Score              float64 `json:"score"`
}

// Slot is a fixed-duration candidate window proposed for a new meeting.
type Slot struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	Score           float64   `json:"score"`
	DurationMinutes int       `json:"duration_minutes"`
}

// BreakType distinguishes free-gap breaks from recovery breaks.
type BreakType string

const (
	BreakGap      BreakType = "gap"
	BreakRecovery BreakType = "recovery"
)

// BreakPriority ranks break suggestions for the caller.
type BreakPriority string

const (
	PriorityHigh   BreakPriority = "high"
	PriorityMedium BreakPriority = "medium"
)

// BreakSuggestion is an ephemeral suggestion for a 30-minute break.
// Suggestions may overlap each other; the caller selects one.
type BreakSuggestion struct {
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	Type     BreakType     `json:"type"`
	Priority BreakPriority `json:"priority"`
	Reason   string        `json:"reason"`
}

// HealthMetrics is the composite calendar health score with its four
// normalized sub-scores and the derived factor/recommendation texts.
type HealthMetrics struct {
	Score             int      `json:"score"`
	BreakCompliance   float64  `json:"break_compliance"`
	FocusTimeRatio    float64  `json:"focus_time_ratio"`
	MeetingEfficiency float64  `json:"meeting_efficiency"`
	WorkLifeBalance   float64  `json:"work_life_balance"`
	PositiveFactors   []string `json:"positive_factors"`
	NegativeFactors   []string `json:"negative_factors"`
	Recommendations   []string `json:"recommendations"`
}

// RiskLevel is the workload analyzer's burnout verdict.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// Horizon is the caller-specified analysis window tag. It controls bucket
// granularity, averaging denominators and risk thresholds.
type Horizon string

const (
	HorizonDay   Horizon = "day"
	HorizonWeek  Horizon = "week"
	HorizonMonth Horizon = "month"
)

// Valid reports whether h is one of the known horizon tags.
func (h Horizon) Valid() bool {
	switch h {
	case HorizonDay, HorizonWeek, HorizonMonth:
		return true
	}
	return false
}

// BucketCount is the fixed averaging denominator for the horizon. It is
// deliberately not derived from the number of populated buckets.
func (h Horizon) BucketCount() int {
	switch h {
	case HorizonWeek:
		return 7
	case HorizonMonth:
		return 30
	default:
		return 24
	}
}

// TimeUnit names the bucket granularity used for the horizon.
func (h Horizon) TimeUnit() string {
	if h == HorizonDay {
		return "Hour"
	}
	return "Day"
}

// HighRiskHours is the meeting-hour threshold above which the horizon is
// rated high risk.
func (h Horizon) HighRiskHours() float64 {
	switch h {
	case HorizonWeek:
		return 30
	case HorizonMonth:
		return 120
	default:
		return 6
	}
}

// ModerateRiskHours is the meeting-hour threshold above which the horizon is
// rated moderate risk.
func (h Horizon) ModerateRiskHours() float64 {
	switch h {
	case HorizonWeek:
		return 20
	case HorizonMonth:
		return 80
	default:
		return 4
	}
}

// WorkloadReport is the workload analyzer's output for one participant and
// horizon.
type WorkloadReport struct {
	Horizon         Horizon   `json:"horizon"`
	TotalMeetings   int       `json:"total_meetings"`
	TotalHours      float64   `json:"total_hours"`
	BusiestBucket   string    `json:"busiest_bucket"`
	TimeUnit        string    `json:"time_unit"`
	AverageMeetings float64   `json:"average_meetings"`
	Risk            RiskLevel `json:"risk"`
	BreakCount      int       `json:"break_count"`
	SuggestedBreaks int       `json:"suggested_breaks"`
}

// BreakDeficit is how many more breaks the schedule needs. Never negative.
func (r WorkloadReport) BreakDeficit() int {
	d := r.SuggestedBreaks - r.BreakCount
	if d < 0 {
		return 0
	}
	return d
}

// TeamSlot is one 30-minute grid slot with the members free during it.
type TeamSlot struct {
	Start            time.Time `json:"start"`
	End              time.Time `json:"end"`
	AvailableMembers []string  `json:"available_members"`
}

// TeamAvailability is the availability grid for one day. CommonSlots holds
// the slots where the whole team is free.
type TeamAvailability struct {
	Slots       []TeamSlot `json:"slots"`
	CommonSlots []TeamSlot `json:"common_slots"`
}

// Round2 rounds to two decimals for stable report output.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
