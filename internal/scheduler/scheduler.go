// Package scheduler runs periodic jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Job is one unit of scheduled work. The returned count is logged.
type Job func(ctx context.Context) (int, error)

// Scheduler wraps a seconds-precision cron.
type Scheduler struct {
	cron    *cron.Cron
	log     logrus.FieldLogger
	timeout time.Duration
}

// New creates a scheduler evaluating specs in loc. Each run is cancelled after timeout.
func New(loc *time.Location, timeout time.Duration, log logrus.FieldLogger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc), cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		log:     log,
		timeout: timeout,
	}
}

// Add registers job under name. schedule uses six fields: second minute hour dom month dow.
func (s *Scheduler) Add(name, schedule string, job Job) (cron.EntryID, error) {
	id, err := s.cron.AddFunc(schedule, func() { s.run(name, job) })
	if err != nil {
		return 0, fmt.Errorf("invalid schedule %q for %s: %w", schedule, name, err)
	}
	return id, nil
}

// Next reports when the entry fires next.
func (s *Scheduler) Next(id cron.EntryID) time.Time {
	return s.cron.Entry(id).Next
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) run(name string, job Job) {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	n, err := job(ctx)
	entry := s.log.WithFields(logrus.Fields{
		"job":      name,
		"count":    n,
		"duration": time.Since(start).String(),
	})
	if err != nil {
		entry.WithError(err).Error("Scheduled job failed")
		return
	}
	entry.Info("Scheduled job finished")
}
