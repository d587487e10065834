package service

import (
	"context"
	"time"

	"subra-settlement/internal/core/ports"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const reconcileJob = "reconcile"

// ReconcileScheduler runs the reconciler on a cron schedule. With a
// JobLocker, only one replica runs a given tick.
type ReconcileScheduler struct {
	cron       *cron.Cron
	reconciler ports.Reconciler
	lock       ports.JobLocker // optional
	schedule   string
	timeout    time.Duration
	log        zerolog.Logger
}

// NewReconcileScheduler creates a scheduler. timeout bounds each run and is
// also the lock lease.
func NewReconcileScheduler(reconciler ports.Reconciler, lock ports.JobLocker, schedule string, timeout time.Duration, log zerolog.Logger) *ReconcileScheduler {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &ReconcileScheduler{
		cron:       cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		reconciler: reconciler,
		lock:       lock,
		schedule:   schedule,
		timeout:    timeout,
		log:        log,
	}
}

// Start registers the job and starts the cron loop.
func (s *ReconcileScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.Run); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info().Str("schedule", s.schedule).Msg("reconciler started")
	return nil
}

// Stop stops scheduling and waits for a running pass to finish.
func (s *ReconcileScheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("reconciler stopped")
}

// Run executes one locked pass.
func (s *ReconcileScheduler) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if s.lock != nil {
		token, err := s.lock.TryLock(ctx, reconcileJob, s.timeout)
		if err != nil || token == "" {
			s.log.Debug().Err(err).Msg("reconcile skipped, lock held elsewhere")
			return
		}
		defer func() {
			if err := s.lock.Unlock(context.WithoutCancel(ctx), reconcileJob, token); err != nil {
				s.log.Warn().Err(err).Msg("failed to release reconcile lock")
			}
		}()
	}

	if _, err := s.reconciler.ReconcileOnce(ctx); err != nil {
		s.log.Error().Err(err).Msg("reconcile pass failed")
	}
}
