// Package fetch retrieves participants' calendar events from a provider with
// bounded concurrency. Fetches are independent: one participant's failure
// never aborts the others, it only excludes that participant from the merged
// result.
package fetch

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"meeting-insights/errors"
	"meeting-insights/models"
)

// Provider supplies one participant's events for a time range. It may fail
// per participant; callers tolerate that.
type Provider interface {
	Events(ctx context.Context, participant string, from, to time.Time) ([]models.Event, error)
}

// Result is the merged outcome of a multi-participant fetch. Partial is set
// when at least one participant had to be skipped.
type Result struct {
	Events  map[string][]models.Event
	Skipped []string
	Partial bool
}

// Fetcher fans fetches out over a provider with a concurrency cap and a
// per-fetch timeout.
type Fetcher struct {
	provider    Provider
	logger      *zap.Logger
	concurrency int
	timeout     time.Duration
}

// New builds a Fetcher. A nil logger falls back to zap.NewNop; non-positive
// concurrency or timeout fall back to sane defaults.
func New(provider Provider, logger *zap.Logger, concurrency int, timeout time.Duration) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if concurrency <= 0 {
		concurrency = 4
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{provider: provider, logger: logger, concurrency: concurrency, timeout: timeout}
}

// FetchAll retrieves events for every participant concurrently and merges
// the results after all fetches settle. Failed participants are logged,
// listed in Skipped and excluded from Events; they are never treated as
// fully free or fully busy.
func (f *Fetcher) FetchAll(ctx context.Context, participants []string, from, to time.Time) (Result, error) {
	if len(participants) == 0 {
		return Result{}, errors.ErrNoParticipants
	}

	type outcome struct {
		events []models.Event
		err    error
	}
	outcomes := make([]outcome, len(participants))

	g := new(errgroup.Group)
	g.SetLimit(f.concurrency)
	for i, participant := range participants {
		i, participant := i, participant
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(ctx, f.timeout)
			defer cancel()
			events, err := f.provider.Events(fetchCtx, participant, from, to)
			outcomes[i] = outcome{events: events, err: err}
			return nil
		})
	}
	// Goroutines never return errors; Wait only synchronizes.
	_ = g.Wait()

	result := Result{Events: make(map[string][]models.Event, len(participants))}
	for i, participant := range participants {
		if err := outcomes[i].err; err != nil {
			f.logger.Warn("skipping participant, calendar fetch failed",
				zap.String("participant", participant),
				zap.Error(err))
			result.Skipped = append(result.Skipped, participant)
			result.Partial = true
			continue
		}
		result.Events[participant] = outcomes[i].events
	}
	return result, nil
}
