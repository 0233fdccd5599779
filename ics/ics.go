// Package ics adapts ICS calendar files to the fetch.Provider interface.
// Each participant maps to a <participant>.ics file inside a directory,
// which makes it useful for exported calendars and offline fixtures.
package ics

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"meeting-insights/models"
)

// Provider reads participant calendars from ICS files.
type Provider struct {
	dir string
}

// NewProvider builds a Provider rooted at dir.
func NewProvider(dir string) (*Provider, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("ics directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("ics path %s is not a directory", dir)
	}
	return &Provider{dir: dir}, nil
}

// Events implements fetch.Provider. Events outside [from, to) are dropped.
func (p *Provider) Events(ctx context.Context, participant string, from, to time.Time) ([]models.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(p.dir, participant+".ics")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("no calendar file for %s: %w", participant, err)
	}
	defer f.Close()

	cal, err := ical.NewDecoder(f).Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	var events []models.Event
	for _, item := range cal.Events() {
		ev, ok := toEvent(item)
		if !ok {
			continue
		}
		if !ev.Start.Before(to) || !ev.End.After(from) {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func toEvent(item ical.Event) (models.Event, bool) {
	startProp := item.Props.Get(ical.PropDateTimeStart)
	if startProp == nil {
		return models.Event{}, false
	}

	start, err := item.DateTimeStart(time.UTC)
	if err != nil {
		return models.Event{}, false
	}
	end, err := item.DateTimeEnd(time.UTC)
	if err != nil {
		return models.Event{}, false
	}

	ev := models.Event{
		Start:  start,
		End:    end,
		AllDay: startProp.ValueType() == ical.ValueDate,
	}
	if prop := item.Props.Get(ical.PropUID); prop != nil {
		ev.ID = prop.Value
	}
	if prop := item.Props.Get(ical.PropSummary); prop != nil {
		ev.Summary = prop.Value
	}
	if prop := item.Props.Get(ical.PropLocation); prop != nil {
		ev.Location = prop.Value
	}
	for _, prop := range item.Props.Values(ical.PropAttendee) {
		ev.Attendees = append(ev.Attendees, strings.TrimPrefix(prop.Value, "mailto:"))
	}
	return ev, true
}
