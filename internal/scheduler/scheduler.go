package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/location-report/internal/collector"
	"github.com/i474232898/location-report/internal/location"
)

// Runner runs one collection pass.
type Runner interface {
	Run(ctx context.Context, keys []location.Key) (collector.Summary, error)
}

// Scheduler periodically re-runs collection for the watchlist. Only keys the
// stores do not hold are fetched, so each pass picks up earlier failures.
type Scheduler struct {
	scheduler *gocron.Scheduler
	runner    Runner
	keys      []location.Key
	interval  time.Duration
	logger    *slog.Logger
}

// New creates a new Scheduler. Empty keys means every stored country.
func New(runner Runner, keys []location.Key, interval time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		runner:    runner,
		keys:      keys,
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the job, runs it once right away and returns.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	_, err := s.scheduler.Every(interval).SingletonMode().Do(s.runOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) runOnce() {
	s.logger.Info("scheduler: running collection job", "locations", len(s.keys))

	summary, err := s.runner.Run(context.Background(), s.keys)
	if err != nil {
		s.logger.Error("scheduler: collection job failed", "error", err)
	}
	s.logger.Info("scheduler: completed collection job",
		"countries", summary.Countries,
		"weather_fetched", summary.Weather.Fetched,
		"news_fetched", summary.News.Fetched,
	)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
