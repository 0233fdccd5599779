// Package google adapts the Google Calendar API to the fetch.Provider
// interface. One OAuth token file per participant; token refresh is handled
// by the oauth2 transport, not here.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"meeting-insights/models"
)

// Client fetches events from Google Calendar. Each participant maps to a
// token file token-<participant>.json inside the configured directory.
type Client struct {
	oauth    *oauth2.Config
	tokenDir string
	logger   *zap.Logger
}

// NewClient builds a Google Calendar client from OAuth credentials. Tokens
// must already exist in tokenDir; acquiring them is an out-of-band step.
func NewClient(clientID, clientSecret, tokenDir string, logger *zap.Logger) (*Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("google client id and secret are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  "urn:ietf:wg:oauth:2.0:oob",
			Scopes:       []string{calendar.CalendarReadonlyScope},
			Endpoint:     googleoauth.Endpoint,
		},
		tokenDir: tokenDir,
		logger:   logger,
	}, nil
}

// Events implements fetch.Provider. It lists the participant's primary
// calendar between from and to, expanding recurring events into single
// instances.
func (c *Client) Events(ctx context.Context, participant string, from, to time.Time) ([]models.Event, error) {
	token, err := c.tokenFor(participant)
	if err != nil {
		return nil, fmt.Errorf("could not load token for %s: %w", participant, err)
	}

	service, err := calendar.NewService(ctx, option.WithHTTPClient(c.oauth.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	list, err := service.Events.List("primary").
		Context(ctx).
		ShowDeleted(false).
		SingleEvents(true).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		OrderBy("startTime").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve events for %s: %w", participant, err)
	}

	c.logger.Debug("fetched google calendar events",
		zap.String("participant", participant),
		zap.Int("count", len(list.Items)))
	return toEvents(list.Items), nil
}

// toEvents converts Google Calendar items to the internal event model.
// Date-only items become all-day events; the interval-based analyses filter
// those out downstream.
func toEvents(items []*calendar.Event) []models.Event {
	events := make([]models.Event, 0, len(items))
	for _, item := range items {
		if item.Start == nil || item.End == nil {
			continue
		}

		ev := models.Event{
			ID:       item.Id,
			Summary:  item.Summary,
			Location: item.Location,
		}
		for _, a := range item.Attendees {
			ev.Attendees = append(ev.Attendees, a.Email)
		}

		if item.Start.DateTime != "" && item.End.DateTime != "" {
			start, err := time.Parse(time.RFC3339, item.Start.DateTime)
			if err != nil {
				continue
			}
			end, err := time.Parse(time.RFC3339, item.End.DateTime)
			if err != nil {
				continue
			}
			ev.Start, ev.End = start, end
		} else {
			start, err := time.Parse("2006-01-02", item.Start.Date)
			if err != nil {
				continue
			}
			end, err := time.Parse("2006-01-02", item.End.Date)
			if err != nil {
				continue
			}
			ev.Start, ev.End, ev.AllDay = start, end, true
		}
		events = append(events, ev)
	}
	return events
}

func (c *Client) tokenFor(participant string) (*oauth2.Token, error) {
	path := filepath.Join(c.tokenDir, fmt.Sprintf("token-%s.json", participant))
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, err
	}
	return token, nil
}
