package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"meeting-insights/models"
)

// Report holds the analysis results to render. Sections left nil/empty are
// omitted from the output.
type Report struct {
	Workload *models.WorkloadReport           `json:"workload,omitempty"`
	Burnout  map[string]models.BurnoutMetrics `json:"burnout,omitempty"`
	Breaks   []models.BreakSuggestion         `json:"breaks,omitempty"`
	Health   *models.HealthMetrics            `json:"health,omitempty"`
	Slots    []models.Slot                    `json:"slots,omitempty"`
	Team     []models.Slot                    `json:"team_slots,omitempty"`
	Skipped  []string                         `json:"skipped_participants,omitempty"`
}

const (
	timeLayout = "Mon Jan 2 15:04"
	hourLayout = "15:04"
)

// FormatText returns the text representation of the report
func FormatText(report *Report) string {
	var sb strings.Builder

	if report.Workload != nil {
		writeWorkloadText(&sb, report.Workload)
	}
	if len(report.Burnout) > 0 {
		writeBurnoutText(&sb, report.Burnout)
	}
	if len(report.Breaks) > 0 {
		writeBreaksText(&sb, report.Breaks)
	}
	if report.Health != nil {
		writeHealthText(&sb, report.Health)
	}
	if len(report.Slots) > 0 {
		writeSlotsText(&sb, report.Slots)
	}
	if len(report.Team) > 0 {
		writeTeamText(&sb, report.Team)
	}
	if len(report.Skipped) > 0 {
		sb.WriteString(fmt.Sprintf("⚠️  Skipped participants (calendar unavailable): %s\n",
			strings.Join(report.Skipped, ", ")))
	}

	return sb.String()
}

// FormatJSON returns the JSON representation of the report
func FormatJSON(report *Report) string {
	jsonBytes, _ := json.MarshalIndent(report, "", "  ")
	return string(jsonBytes)
}

// FormatCSV returns the CSV representation of the report. Each row carries a
// section tag so mixed sections can share one file.
func FormatCSV(report *Report) string {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	writer.Write([]string{"Section", "Key", "Start", "End", "Score", "Detail"})

	if report.Workload != nil {
		w := report.Workload
		writer.Write([]string{"workload", string(w.Horizon), "", "",
			fmt.Sprintf("%.1f", w.TotalHours),
			fmt.Sprintf("meetings=%d,busiest=%s,avg=%.1f,risk=%s",
				w.TotalMeetings, w.BusiestBucket, w.AverageMeetings, w.Risk)})
	}
	for _, participant := range sortedParticipants(report.Burnout) {
		m := report.Burnout[participant]
		writer.Write([]string{"burnout", participant, "", "",
			fmt.Sprintf("%.1f", m.Score),
			fmt.Sprintf("hours=%.1f,back_to_back=%d,after_hours=%d,weekend=%d",
				m.TotalHours, m.BackToBackCount, m.AfterHoursCount, m.WeekendCount)})
	}
	for _, b := range report.Breaks {
		writer.Write([]string{"break", string(b.Type),
			b.Start.Format(timeLayout), b.End.Format(timeLayout),
			"", fmt.Sprintf("priority=%s,%s", b.Priority, b.Reason)})
	}
	if report.Health != nil {
		h := report.Health
		writer.Write([]string{"health", "", "", "",
			fmt.Sprintf("%d", h.Score),
			fmt.Sprintf("breaks=%.2f,focus=%.2f,efficiency=%.2f,balance=%.2f",
				h.BreakCompliance, h.FocusTimeRatio, h.MeetingEfficiency, h.WorkLifeBalance)})
	}
	for _, s := range report.Slots {
		writer.Write([]string{"slot", fmt.Sprintf("%dm", s.DurationMinutes),
			s.Start.Format(timeLayout), s.End.Format(timeLayout),
			fmt.Sprintf("%.1f", s.Score), ""})
	}
	for _, s := range report.Team {
		writer.Write([]string{"team_slot", fmt.Sprintf("%dm", s.DurationMinutes),
			s.Start.Format(timeLayout), s.End.Format(timeLayout),
			fmt.Sprintf("%.2f", s.Score), ""})
	}
	for _, p := range report.Skipped {
		writer.Write([]string{"skipped", p, "", "", "", ""})
	}

	writer.Flush()
	return sb.String()
}

// writeWorkloadText renders the workload overview with the risk verdict and
// break-deficit escalation.
func writeWorkloadText(sb *strings.Builder, w *models.WorkloadReport) {
	sb.WriteString(fmt.Sprintf("%s Overview\n", titleCase(string(w.Horizon))))
	sb.WriteString(fmt.Sprintf("• Total Meetings: %d\n", w.TotalMeetings))
	sb.WriteString(fmt.Sprintf("• Total Hours: %.1f\n", w.TotalHours))
	sb.WriteString(fmt.Sprintf("• Busiest %s: %s\n", w.TimeUnit, w.BusiestBucket))
	sb.WriteString(fmt.Sprintf("• Average Meetings per %s: %.1f\n", w.TimeUnit, w.AverageMeetings))

	verdict := riskVerdict(w.Horizon, w.Risk)
	if deficit := w.BreakDeficit(); deficit > 0 {
		verdict = strings.Replace(verdict, "✅", "⚠️", 1)
		plural := ""
		if deficit > 1 {
			plural = "s"
		}
		verdict += fmt.Sprintf("\n• Need %d more break%s", deficit, plural)
	}
	sb.WriteString(verdict)
	sb.WriteString("\n")
}

// riskVerdict returns the horizon-specific verdict line for the risk level.
func riskVerdict(horizon models.Horizon, risk models.RiskLevel) string {
	switch horizon {
	case models.HorizonMonth:
		switch risk {
		case models.RiskHigh:
			return "⚠️ High risk of burnout. Consider reducing monthly meeting load."
		case models.RiskModerate:
			return "⚠️ Moderate risk of burnout. Try to spread meetings more evenly."
		}
		return "✅ Low risk of burnout. Your monthly schedule looks manageable."
	case models.HorizonWeek:
		switch risk {
		case models.RiskHigh:
			return "⚠️ High risk of burnout. Consider rescheduling some meetings."
		case models.RiskModerate:
			return "⚠️ Moderate risk of burnout. Try to schedule some breaks."
		}
		return "✅ Low risk of burnout. Your weekly schedule looks manageable."
	default:
		switch risk {
		case models.RiskHigh:
			return "⚠️ High risk of burnout. Too many meetings today."
		case models.RiskModerate:
			return "⚠️ Moderate risk of burnout. Consider taking breaks."
		}
		return "✅ Low risk of burnout. Your daily schedule looks good."
	}
}

func writeBurnoutText(sb *strings.Builder, burnout map[string]models.BurnoutMetrics) {
	sb.WriteString("Burnout Scores\n")
	for _, participant := range sortedParticipants(burnout) {
		m := burnout[participant]
		sb.WriteString(fmt.Sprintf("• %s: %.1f (hours=%.1f, back-to-back=%d, after-hours=%d, weekend=%d, streak=%.1fh)\n",
			participant, m.Score, m.TotalHours, m.BackToBackCount,
			m.AfterHoursCount, m.WeekendCount, m.LongestStreakHours))
	}
}

func writeBreaksText(sb *strings.Builder, breaks []models.BreakSuggestion) {
	sb.WriteString("Suggested Breaks\n")
	for _, b := range breaks {
		sb.WriteString(fmt.Sprintf("• %s - %s [%s/%s] %s\n",
			b.Start.Format(timeLayout), b.End.Format(hourLayout),
			b.Type, b.Priority, b.Reason))
	}
}

func writeHealthText(sb *strings.Builder, h *models.HealthMetrics) {
	sb.WriteString(fmt.Sprintf("Calendar Health: %d/100\n", h.Score))
	for _, f := range h.PositiveFactors {
		sb.WriteString(fmt.Sprintf("  ✅ %s\n", f))
	}
	for _, f := range h.NegativeFactors {
		sb.WriteString(fmt.Sprintf("  ⚠️  %s\n", f))
	}
	for _, r := range h.Recommendations {
		sb.WriteString(fmt.Sprintf("  → %s\n", r))
	}
}

func writeSlotsText(sb *strings.Builder, slots []models.Slot) {
	sb.WriteString("Suggested Meeting Slots\n")
	for i, s := range slots {
		sb.WriteString(fmt.Sprintf("%d. %s - %s (%d min, score %.0f)\n",
			i+1, s.Start.Format(timeLayout), s.End.Format(hourLayout),
			s.DurationMinutes, s.Score))
	}
}

func writeTeamText(sb *strings.Builder, slots []models.Slot) {
	sb.WriteString("Team Meeting Slots\n")
	for i, s := range slots {
		sb.WriteString(fmt.Sprintf("%d. %s - %s (score %.2f)\n",
			i+1, s.Start.Format(timeLayout), s.End.Format(hourLayout), s.Score))
	}
}

// sortedParticipants returns map keys in stable order for deterministic output.
func sortedParticipants(m map[string]models.BurnoutMetrics) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
