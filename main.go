package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"

	"meeting-insights/breaks"
	"meeting-insights/burnout"
	"meeting-insights/config"
	"meeting-insights/errors"
	"meeting-insights/fetch"
	"meeting-insights/formatter"
	"meeting-insights/google"
	"meeting-insights/health"
	"meeting-insights/ics"
	"meeting-insights/interval"
	"meeting-insights/metrics"
	"meeting-insights/models"
	"meeting-insights/parser"
	"meeting-insights/slots"
	"meeting-insights/team"
	"meeting-insights/workload"
)

func main() {
	// Define flags
	input := flag.String("input", "", "Input CSV file (required when provider=csv)")
	reports := flag.String("report", "workload", "Comma-separated analyses: workload|burnout|breaks|health|slots|team|all")
	horizonFlag := flag.String("horizon", "day", "Workload horizon: day|week|month")
	participantsFlag := flag.String("participants", "", "Comma-separated participant ids (required for ics/google providers)")
	duration := flag.Int("duration", 30, "Meeting duration in minutes for slot search")
	format := flag.String("format", "text", "Output format: text|json|csv")
	providerFlag := flag.String("provider", "", "Calendar provider: csv|ics|google (overrides MI_PROVIDER)")
	metricsAddr := flag.String("metrics-addr", "", "Address to expose Prometheus metrics (e.g., :9090)")
	pushGateway := flag.String("push-url", "", "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	wait := flag.Bool("wait", false, "Keep process running after completion to allow for metric scraping")

	// Parse command-line flags
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if *providerFlag != "" {
		cfg.Provider = *providerFlag
		if err := cfg.Validate(); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Error building logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Start metrics server if address provided
	if *metricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
			fmt.Printf("Metrics server listening on %s/metrics\n", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
				fmt.Printf("Metrics server error: %v\n", err)
			}
		}()
	}

	// Validate format enum
	validFormats := map[string]bool{"text": true, "json": true, "csv": true}
	if !validFormats[*format] {
		fmt.Printf("Error: format must be one of: text, json, csv (got: %s)\n", *format)
		os.Exit(1)
	}

	horizon := models.Horizon(*horizonFlag)
	if !horizon.Valid() {
		fmt.Printf("Error: %v (got: %s)\n", errors.ErrInvalidHorizon, *horizonFlag)
		os.Exit(1)
	}

	selected, err := parseReports(*reports)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// Every analysis in the run shares one reference timestamp.
	now := time.Now().UTC()

	events, skipped, err := loadEvents(cfg, logger, *input, splitList(*participantsFlag), horizon, now)
	if err != nil {
		fmt.Printf("Error loading events: %v\n", err)
		os.Exit(1)
	}

	report := runAnalyses(events, skipped, selected, horizon, *duration, now)

	// Output based on format
	switch *format {
	case "json":
		fmt.Print(formatter.FormatJSON(report))
	case "csv":
		fmt.Print(formatter.FormatCSV(report))
	default: // "text"
		fmt.Print(formatter.FormatText(report))
	}

	// Handle metrics pushing or waiting
	if *pushGateway != "" {
		jobName := "meeting_insights"
		if err := push.New(*pushGateway, jobName).Gatherer(metrics.Registry).Push(); err != nil {
			fmt.Fprintf(os.Stderr, "Error pushing to Pushgateway: %v\n", err)
		} else {
			fmt.Println("\nMetrics successfully pushed to Pushgateway")
		}
	}

	if *wait && *metricsAddr != "" {
		fmt.Println("\nProcess kept alive for metric scraping. Press Ctrl+C to exit.")
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		fmt.Println("\nExiting...")
	} else if *metricsAddr != "" && *pushGateway == "" {
		// Small delay to allow final scrape if not waiting explicitly
		// but typically batch jobs should use pushgateway or wait
		time.Sleep(100 * time.Millisecond)
	}
}

// loadEvents gathers per-participant events from the configured provider.
// The fetch window covers both the analysis horizon and the slot search
// range. Participants whose calendars could not be fetched come back in the
// skipped list.
func loadEvents(cfg config.Config, logger *zap.Logger, input string, participants []string, horizon models.Horizon, now time.Time) (map[string][]models.Event, []string, error) {
	if cfg.Provider == "csv" {
		if input == "" {
			return nil, nil, stderrors.New("-input flag is required when provider=csv")
		}
		file, err := os.Open(input)
		if err != nil {
			return nil, nil, err
		}
		defer file.Close()

		start := time.Now()
		events, err := parser.Parse(file)
		metrics.ParserDurationSeconds.Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.ParserErrorsTotal.WithLabelValues(parseErrorType(err)).Inc()
			return nil, nil, err
		}
		for _, evs := range events {
			metrics.ParserRecordsTotal.Add(float64(len(evs)))
		}
		if len(participants) > 0 {
			filtered := make(map[string][]models.Event, len(participants))
			for _, p := range participants {
				if evs, ok := events[p]; ok {
					filtered[p] = evs
				}
			}
			events = filtered
		}
		return events, nil, nil
	}

	if len(participants) == 0 {
		return nil, nil, errors.ErrNoParticipants
	}

	var provider fetch.Provider
	var err error
	switch cfg.Provider {
	case "ics":
		provider, err = ics.NewProvider(cfg.ICSDir)
	case "google":
		provider, err = google.NewClient(cfg.GoogleClientID, cfg.GoogleSecret, cfg.TokenDir, logger)
	default:
		err = fmt.Errorf("invalid provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, nil, err
	}

	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	days := horizon.BucketCount()
	if horizon == models.HorizonDay {
		days = 1
	}
	if days < 8 { // keep the slot search range inside the window
		days = 8
	}
	to := from.AddDate(0, 0, days)

	fetcher := fetch.New(provider, logger, cfg.FetchConcurrency, cfg.FetchTimeout)
	start := time.Now()
	result, err := fetcher.FetchAll(context.Background(), participants, from, to)
	metrics.FetchDurationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, nil, err
	}
	metrics.FetchFailuresTotal.Add(float64(len(result.Skipped)))
	return result.Events, result.Skipped, nil
}

// runAnalyses executes the selected analyses against the loaded events at
// the shared reference time and assembles the printable report.
func runAnalyses(events map[string][]models.Event, skipped []string, selected map[string]bool, horizon models.Horizon, durationMinutes int, now time.Time) *formatter.Report {
	metrics.ResetGauges()
	start := time.Now()

	participants := make([]string, 0, len(events))
	var allEvents []models.Event
	for p, evs := range events {
		participants = append(participants, p)
		allEvents = append(allEvents, evs...)
	}
	sort.Strings(participants)
	allIntervals := interval.FromEvents(allEvents)

	report := &formatter.Report{Skipped: skipped}

	if selected["workload"] {
		metrics.AnalysesTotal.WithLabelValues("workload").Inc()
		w := workload.Analyze(allIntervals, horizon)
		if w.Risk == models.RiskHigh {
			metrics.HighRiskAnalysesTotal.Inc()
		}
		report.Workload = &w
	}
	if selected["burnout"] {
		metrics.AnalysesTotal.WithLabelValues("burnout").Inc()
		report.Burnout = make(map[string]models.BurnoutMetrics, len(participants))
		for _, p := range participants {
			m := burnout.Score(interval.FromEvents(events[p]))
			if m.Score >= 70 {
				metrics.HighRiskAnalysesTotal.Inc()
			}
			metrics.BurnoutScoreLast.Set(m.Score)
			report.Burnout[p] = m
		}
	}
	if selected["breaks"] {
		metrics.AnalysesTotal.WithLabelValues("breaks").Inc()
		report.Breaks = breaks.Suggest(allIntervals)
	}
	if selected["health"] {
		metrics.AnalysesTotal.WithLabelValues("health").Inc()
		h := health.Score(allEvents)
		metrics.HealthScoreLast.Set(float64(h.Score))
		report.Health = &h
	}
	if selected["slots"] {
		metrics.AnalysesTotal.WithLabelValues("slots").Inc()
		schedules := make([]slots.ParticipantSchedule, 0, len(participants))
		for _, p := range participants {
			schedules = append(schedules, slots.ParticipantSchedule{
				Participant: p,
				Intervals:   interval.FromEvents(events[p]),
			})
		}
		found, err := slots.Find(schedules, durationMinutes, now)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Slot search failed: %v\n", err)
		} else {
			metrics.SlotsReturned.Observe(float64(len(found)))
			report.Slots = found
		}
	}
	if selected["team"] {
		metrics.AnalysesTotal.WithLabelValues("team").Inc()
		report.Team = team.FindMeeting(participants, allEvents, now)
	}

	metrics.AnalysisDurationSeconds.Observe(time.Since(start).Seconds())
	return report
}

// parseReports expands the -report flag into the set of analyses to run.
func parseReports(value string) (map[string]bool, error) {
	known := []string{"workload", "burnout", "breaks", "health", "slots", "team"}
	selected := make(map[string]bool)
	for _, name := range splitList(value) {
		if name == "all" {
			for _, k := range known {
				selected[k] = true
			}
			continue
		}
		valid := false
		for _, k := range known {
			if name == k {
				valid = true
				break
			}
		}
		if !valid {
			return nil, fmt.Errorf("unknown report: %s (valid: %s, all)", name, strings.Join(known, ", "))
		}
		selected[name] = true
	}
	if len(selected) == 0 {
		return nil, stderrors.New("at least one report is required")
	}
	return selected, nil
}

// parseErrorType labels a parse failure for the error counter.
func parseErrorType(err error) string {
	switch {
	case stderrors.Is(err, errors.ErrInvalidFieldCount):
		return "invalid_field_count"
	case stderrors.Is(err, errors.ErrInvalidStartTime):
		return "invalid_start_time"
	case stderrors.Is(err, errors.ErrInvalidEndTime):
		return "invalid_end_time"
	case stderrors.Is(err, errors.ErrEmptyParticipant):
		return "empty_participant"
	case stderrors.Is(err, errors.ErrEmptyRecord):
		return "empty_record"
	default:
		return "other"
	}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil {
		return nil, err
	}
	logCfg := zap.NewProductionConfig()
	logCfg.Level = lvl
	return logCfg.Build()
}
