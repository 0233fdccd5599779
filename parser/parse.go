package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"meeting-insights/errors"
	"meeting-insights/models"
)

// Parse reads CSV event batches from the reader and returns events grouped
// by participant. It expects lines starting with '#' to be headers/comments.
// Columns: id,participant,summary,start,end,attendees,location. Timestamps
// are RFC 3339; a date-only value ("2006-01-02") marks an all-day event.
// Attendees are ';'-separated. Rows without an id are assigned one.
func Parse(r io.Reader) (map[string][]models.Event, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	byParticipant := make(map[string][]models.Event)
	lineNum := 0

	for {
		record, err := reader.Read()
		lineNum++
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV at line %d: %w", lineNum, err)
		}

		// Handle headers/comments
		if len(record) > 0 && strings.HasPrefix(record[0], "#") {
			continue
		}
		if len(record) == 0 || (len(record) == 1 && strings.TrimSpace(record[0]) == "") {
			return nil, &errors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    errors.ErrEmptyRecord,
			}
		}
		if len(record) != 7 {
			return nil, &errors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    errors.ErrInvalidFieldCount,
			}
		}

		participant := strings.TrimSpace(record[1])
		if participant == "" {
			return nil, &errors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    errors.ErrEmptyParticipant,
			}
		}

		ev := models.Event{
			ID:       strings.TrimSpace(record[0]),
			Summary:  strings.TrimSpace(record[2]),
			Location: strings.TrimSpace(record[6]),
		}
		if ev.ID == "" {
			ev.ID = uuid.NewString()
		}

		start, startAllDay, err := parseTimestamp(strings.TrimSpace(record[3]))
		if err != nil {
			return nil, &errors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    fmt.Errorf("%w: %v", errors.ErrInvalidStartTime, err),
			}
		}
		end, endAllDay, err := parseTimestamp(strings.TrimSpace(record[4]))
		if err != nil {
			return nil, &errors.ParseError{
				Line:   lineNum,
				Record: record,
				Err:    fmt.Errorf("%w: %v", errors.ErrInvalidEndTime, err),
			}
		}
		ev.Start, ev.End = start, end
		ev.AllDay = startAllDay || endAllDay

		if attendees := strings.TrimSpace(record[5]); attendees != "" {
			for _, a := range strings.Split(attendees, ";") {
				if a = strings.TrimSpace(a); a != "" {
					ev.Attendees = append(ev.Attendees, a)
				}
			}
		}

		byParticipant[participant] = append(byParticipant[participant], ev)
	}

	return byParticipant, nil
}

// parseTimestamp accepts RFC 3339 timestamps and date-only values; the
// second return reports the date-only (all-day) case.
func parseTimestamp(value string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, false, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("expected RFC 3339 or 2006-01-02, got %q", value)
	}
	return t, true, nil
}
