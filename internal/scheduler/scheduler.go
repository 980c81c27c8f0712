package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	auction "auction-tracker/internal/auctionService"
	"auction-tracker/utils"

	"github.com/robfig/cron/v3"
)

// DefaultSpec runs a pass every ten seconds. Specs accept descriptors
// ("@every 30s", "@hourly") and cron expressions of five fields or six with
// a leading seconds field.
const DefaultSpec = "@every 10s"

var specParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// DueProcessor applies the time-driven transitions that are due at now
type DueProcessor interface {
	ProcessDue(ctx context.Context, now time.Time) (auction.ProcessSummary, error)
}

// CronScheduler periodically opens auctions whose start has arrived and closes
// auctions whose end has passed.
type CronScheduler struct {
	cron      *cron.Cron
	spec      string
	processor DueProcessor
	clock     func() time.Time

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// NewCronScheduler creates a scheduler; an empty spec falls back to DefaultSpec
// and a nil clock to time.Now.
func NewCronScheduler(processor DueProcessor, spec string, clock func() time.Time) *CronScheduler {
	if spec == "" {
		spec = DefaultSpec
	}
	if clock == nil {
		clock = time.Now
	}
	return &CronScheduler{
		cron:      cron.New(cron.WithParser(specParser), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		spec:      spec,
		processor: processor,
		clock:     clock,
	}
}

// Start registers the periodic job and starts the cron runner
func (s *CronScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler: already running")
	}

	jobCtx, cancel := context.WithCancel(ctx)
	if _, err := s.cron.AddFunc(s.spec, func() { s.RunOnce(jobCtx) }); err != nil {
		cancel()
		return fmt.Errorf("scheduler: invalid schedule %q: %w", s.spec, err)
	}

	utils.Info("scheduler: starting", map[string]any{"spec": s.spec})
	s.cron.Start()
	s.running = true
	s.cancel = cancel
	return nil
}

// Stop halts the runner and waits for an in-flight pass to finish
func (s *CronScheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel := s.cancel
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	cancel()
	utils.Info("scheduler: stopped", nil)
}

// RunOnce performs a single pass at the current clock time
func (s *CronScheduler) RunOnce(ctx context.Context) auction.ProcessSummary {
	now := s.clock()
	summary, err := s.processor.ProcessDue(ctx, now)
	if err != nil {
		utils.Error("scheduler: pass finished with errors", map[string]any{
			"time":  now.Format(time.RFC3339),
			"error": err.Error(),
		})
	}
	if len(summary.Opened) > 0 || len(summary.Closed) > 0 {
		utils.Info("scheduler: auctions transitioned", map[string]any{
			"opened": summary.Opened,
			"closed": summary.Closed,
		})
	}
	return summary
}
