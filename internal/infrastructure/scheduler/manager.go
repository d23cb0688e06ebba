// Package scheduler provides unified scheduler management using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	sharedConfig "tunemates/internal/shared/config"
	"tunemates/internal/shared/biztime"
	"tunemates/internal/shared/constants"
	"tunemates/internal/shared/logger"
)

// BatchJob defines the interface for a scheduled batch processing job.
// Each Execute call processes a batch and returns the number of rows affected.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// SchedulerManager manages the sweep jobs using a single gocron v2
// scheduler instance. Jobs run once immediately at startup and then on
// their configured interval; a failing run is logged and retried on the
// next tick.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates a new SchedulerManager instance.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterSweepJobs registers the five maintenance sweeps. Per-job
// intervals come from the cleanup config; zero falls back to the default.
func (m *SchedulerManager) RegisterSweepJobs(
	cfg *sharedConfig.CleanupConfig,
	proposalJob BatchJob,
	roomJob BatchJob,
	codeJob BatchJob,
	stateJob BatchJob,
	tokenJob BatchJob,
) error {
	sweeps := []struct {
		name     string
		interval time.Duration
		job      BatchJob
	}{
		{"sweep-proposals", intervalFromHours(cfg.ProposalIntervalHours), proposalJob},
		{"sweep-rooms", intervalFromHours(cfg.RoomIntervalHours), roomJob},
		{"sweep-room-codes", intervalFromHours(cfg.RoomCodeIntervalHours), codeJob},
		{"sweep-spotify-states", intervalFromHours(cfg.SpotifyStateIntervalHours), stateJob},
		{"sweep-app-tokens", intervalFromHours(cfg.TokenIntervalHours), tokenJob},
	}

	for _, sweep := range sweeps {
		sweep := sweep
		_, err := m.scheduler.NewJob(
			gocron.DurationJob(sweep.interval),
			gocron.NewTask(func() {
				ctx, cancel := context.WithTimeout(context.Background(), constants.SweepExecutionTimeout)
				defer cancel()
				m.runSweep(ctx, sweep.name, sweep.job)
			}),
			gocron.WithStartAt(gocron.WithStartImmediately()),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
			gocron.WithTags("cleanup"),
			gocron.WithName(sweep.name),
		)
		if err != nil {
			return err
		}

		m.logger.Infow("registered sweep job", "name", sweep.name, "interval", sweep.interval.String())
	}

	return nil
}

func (m *SchedulerManager) runSweep(ctx context.Context, name string, job BatchJob) {
	startTime := biztime.NowUTC()

	affected, err := job.Execute(ctx)
	if err != nil {
		// Shutdown cancels the context; that is not a sweep failure.
		if ctx.Err() != nil {
			return
		}
		m.logger.Errorw("sweep failed",
			"name", name,
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if affected > 0 {
		m.logger.Infow("sweep completed",
			"name", name,
			"affected", affected,
			"duration", time.Since(startTime),
		)
	} else {
		m.logger.Debugw("sweep completed with nothing to do",
			"name", name,
			"duration", time.Since(startTime),
		)
	}
}

func intervalFromHours(hours float64) time.Duration {
	if hours <= 0 {
		return constants.DefaultSweepInterval
	}
	return time.Duration(hours * float64(time.Hour))
}

// Start starts the scheduler and all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

// IsStarted returns whether the scheduler is running.
func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
