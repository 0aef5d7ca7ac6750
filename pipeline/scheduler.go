package pipeline

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/vbagdi/ResearchCode/domain"
)

// DefaultSchedule runs discovery every six hours.  Schedules include a
// leading seconds field; descriptors such as "@daily" are accepted too.
var DefaultSchedule = "0 0 */6 * * *"

var (
	ErrAlreadyRunning = errors.New("scheduler already running")
	ErrNotRunning     = errors.New("scheduler not running")
)

// Scheduler runs a pipeline periodically.  Overlapping runs are skipped.
// Each finished run's summary is published on Channel.
type Scheduler struct {
	Pipeline *Pipeline
	Schedule string

	cron   *cron.Cron
	ch     chan *domain.RunSummary
	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
}

func NewScheduler(p *Pipeline, schedule string) *Scheduler {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	s := &Scheduler{
		Pipeline: p,
		Schedule: schedule,
	}
	return s
}

func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ch != nil {
		return ErrAlreadyRunning
	}

	logger := cron.PrintfLogger(log.StandardLogger())
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	ctx, cancel := context.WithCancel(context.Background())

	if _, err := c.AddFunc(s.Schedule, func() {
		summary := s.RunOnce(ctx)
		s.publish(summary)
	}); err != nil {
		cancel()
		return errors.Wrapf(err, "parsing schedule %q", s.Schedule)
	}

	s.ch = make(chan *domain.RunSummary, 100)
	s.cron = c
	s.ctx = ctx
	s.cancel = cancel

	log.WithField("schedule", s.Schedule).Info("Starting discovery scheduler")
	c.Start()
	return nil
}

// Stop cancels any in-flight run, waits for it to return and closes the
// summary channel.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if s.ch == nil {
		s.mu.Unlock()
		return ErrNotRunning
	}
	c, cancel := s.cron, s.cancel
	s.mu.Unlock()

	cancel()
	<-c.Stop().Done()

	s.mu.Lock()
	defer s.mu.Unlock()
	close(s.ch)
	s.ch = nil
	s.cron = nil
	s.cancel = nil
	s.ctx = nil
	log.Info("Stopped discovery scheduler")
	return nil
}

// Channel returns the run summary channel, or nil when not running.
func (s *Scheduler) Channel() <-chan *domain.RunSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ch
}

// RunOnce executes the pipeline a single time and returns its summary.
func (s *Scheduler) RunOnce(ctx context.Context) *domain.RunSummary {
	started := s.Pipeline.now()
	artifact, err := s.Pipeline.Run(ctx)
	summary := &domain.RunSummary{
		StartedAt:  started,
		FinishedAt: s.Pipeline.now(),
		Output:     s.Pipeline.Config.Output,
	}
	if err != nil {
		log.Errorf("Scheduled discovery run failed: %s", err)
		summary.Err = err.Error()
		return summary
	}
	if artifact.Metadata != nil {
		summary.RunID = artifact.Metadata.RunID
	}
	return Summarize(summary, artifact)
}

func (s *Scheduler) publish(summary *domain.RunSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ch == nil {
		return
	}
	select {
	case s.ch <- summary:
	default:
		log.WithField("run-id", summary.RunID).Warn("Summary channel full, dropping run summary")
	}
}
