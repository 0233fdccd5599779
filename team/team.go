// Package team intersects multiple members' calendars into common free
// slots, using a fixed 30-minute grid over working hours, and searches the
// next business days for the best team meeting time.
package team

import (
	"slices"
	"sort"
	"time"

	"meeting-insights/models"
)

const (
	// Grid working-hour bounds. The grid covers [9:00, 17:00) in 30-minute
	// steps.
	gridStartHour = 9
	gridEndHour   = 17
	slotLength    = 30 * time.Minute

	// searchDays is how many business days ahead the meeting search covers.
	searchDays = 5

	// maxSuggestions caps the ranked team-meeting list.
	maxSuggestions = 3

	// crowdedFollowUp penalizes slots starting right after a member's
	// meeting ends.
	crowdedFollowUp = 15 * time.Minute
)

// Availability builds the 30-minute slot grid for the given day. A slot is
// unavailable for a member when any of that member's events overlaps it;
// common slots are those where every member is free. Membership of an event
// is determined by the member id appearing in its attendee list.
func Availability(members []string, events []models.Event, day time.Time) models.TeamAvailability {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), gridStartHour, 0, 0, 0, day.Location())
	dayEnd := time.Date(day.Year(), day.Month(), day.Day(), gridEndHour, 0, 0, 0, day.Location())

	var grid []models.TeamSlot
	for cursor := dayStart; cursor.Before(dayEnd); cursor = cursor.Add(slotLength) {
		grid = append(grid, models.TeamSlot{
			Start:            cursor,
			End:              cursor.Add(slotLength),
			AvailableMembers: slices.Clone(members),
		})
	}

	for _, member := range members {
		for _, ev := range memberEvents(member, events) {
			for i := range grid {
				if grid[i].Start.Before(ev.End) && ev.Start.Before(grid[i].End) {
					grid[i].AvailableMembers = remove(grid[i].AvailableMembers, member)
				}
			}
		}
	}

	availability := models.TeamAvailability{Slots: grid}
	for _, slot := range grid {
		if len(slot.AvailableMembers) == len(members) {
			availability.CommonSlots = append(availability.CommonSlots, slot)
		}
	}
	return availability
}

// FindMeeting repeats the availability grid over the next five business days
// after now, scores every common slot, and returns the top three. An empty
// result means the team has no common window; it is a normal outcome.
func FindMeeting(members []string, events []models.Event, now time.Time) []models.Slot {
	var candidates []models.Slot
	for _, day := range nextBusinessDays(now, searchDays) {
		availability := Availability(members, events, day)
		for _, slot := range availability.CommonSlots {
			candidates = append(candidates, models.Slot{
				Start:           slot.Start,
				End:             slot.End,
				Score:           scoreSlot(slot, members, events),
				DurationMinutes: int(slotLength.Minutes()),
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score == candidates[j].Score {
			return candidates[i].Start.Before(candidates[j].Start)
		}
		return candidates[i].Score > candidates[j].Score
	})
	if len(candidates) > maxSuggestions {
		candidates = candidates[:maxSuggestions]
	}
	return candidates
}

// scoreSlot rates a common slot: midday slots get a bonus, slots crowding a
// member's previous meeting are penalized, and earlier weekdays win.
func scoreSlot(slot models.TeamSlot, members []string, events []models.Event) float64 {
	score := 1.0

	if h := slot.Start.Hour(); h >= 11 && h < 16 {
		score += 0.2
	}

	for _, member := range members {
		for _, ev := range memberEvents(member, events) {
			sinceEnd := slot.Start.Sub(ev.End)
			if sinceEnd > 0 && sinceEnd < crowdedFollowUp {
				score -= 0.1
			}
		}
	}

	score += float64(5-int(slot.Start.Weekday())) * 0.05

	if score < 0 {
		return 0
	}
	return score
}

func memberEvents(member string, events []models.Event) []models.Event {
	var out []models.Event
	for _, ev := range events {
		if ev.AllDay || ev.Start.IsZero() || ev.End.IsZero() {
			continue
		}
		if slices.Contains(ev.Attendees, member) {
			out = append(out, ev)
		}
	}
	return out
}

func nextBusinessDays(ref time.Time, n int) []time.Time {
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

func remove(members []string, member string) []string {
	out := members[:0]
	for _, m := range members {
		if m != member {
			out = append(out, m)
		}
	}
	return out
}
