package maintenance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/yodaslang/yodas-api/internal/domain"
	"github.com/yodaslang/yodas-api/internal/platform/logger"
	"github.com/yodaslang/yodas-api/internal/store"
)

// DefaultRunTimeout bounds a single sweep.
const DefaultRunTimeout = 30 * time.Second

// ErrAlreadyRunning is returned by Start when the sweeper is already scheduled.
var ErrAlreadyRunning = errors.New("sweeper already running")

// OrphanSweeper periodically deletes linkages whose set no longer exists.
type OrphanSweeper struct {
	linkages   store.LinkageStore
	schedule   cron.Schedule
	spec       string
	runTimeout time.Duration
	logger     *slog.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

// NewOrphanSweeper creates a sweeper for the given standard cron spec
// (five fields or a descriptor such as "@hourly").
func NewOrphanSweeper(linkages store.LinkageStore, spec string, logger *slog.Logger) (*OrphanSweeper, error) {
	if linkages == nil {
		return nil, domain.NewValidationError("linkages", "cannot be nil", domain.ErrValidation)
	}
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, domain.NewValidationError("orphan_sweep_schedule", fmt.Sprintf("%q is not a cron spec", spec), err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &OrphanSweeper{
		linkages:   linkages,
		schedule:   schedule,
		spec:       spec,
		runTimeout: DefaultRunTimeout,
		logger:     logger.With(slog.String("component", "orphan_sweeper")),
	}, nil
}

// RunOnce performs a single sweep and returns the number of linkages removed.
func (s *OrphanSweeper) RunOnce(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(logger.WithLogger(ctx, s.logger), s.runTimeout)
	defer cancel()

	start := time.Now()
	n, err := s.linkages.DeleteOrphans(ctx)
	if err != nil {
		s.logger.Error("orphan sweep failed",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)))
		return 0, err
	}

	s.logger.Debug("orphan sweep finished",
		slog.Int64("removed", n),
		slog.Duration("elapsed", time.Since(start)))
	return n, nil
}

// Start schedules the sweep. Overlapping runs are skipped.
func (s *OrphanSweeper) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}

	cl := cronLogger{s.logger}
	c := cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))
	c.Schedule(s.schedule, cron.FuncJob(func() {
		_, _ = s.RunOnce(context.Background())
	}))
	c.Start()

	s.cron = c
	s.running = true

	s.logger.Info("orphan sweeper started",
		slog.String("schedule", s.spec),
		slog.Time("next_run", s.schedule.Next(time.Now())))
	return nil
}

// Stop unschedules the sweep and waits for a running sweep to finish or
// for ctx to end, whichever comes first.
func (s *OrphanSweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("orphan sweeper stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("orphan sweeper stop timed out")
		return ctx.Err()
	}
}

// Run starts the sweeper and blocks until ctx is canceled, then stops it
// within stopTimeout.
func (s *OrphanSweeper) Run(ctx context.Context, stopTimeout time.Duration) error {
	if err := s.Start(); err != nil {
		return err
	}
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	return s.Stop(stopCtx)
}

// Running reports whether the sweep is scheduled.
func (s *OrphanSweeper) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append([]any{slog.String("error", err.Error())}, keysAndValues...)...)
}
