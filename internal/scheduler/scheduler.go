package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron"
)

// DefaultRepairTimeout bounds a single repair run.
const DefaultRepairTimeout = 10 * time.Minute

// Repairer fixes legacy scheduling data of all active users.
type Repairer interface {
	RepairAll(ctx context.Context) (int, error)
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	repairer  Repairer
	repairAt  string
	timeout   time.Duration
	log       *log.Logger
}

// New creates a new scheduler instance. The repair job runs once a day at
// repairAt (HH:MM) in loc.
func New(repairer Repairer, repairAt string, loc *time.Location, logger *log.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	s := gocron.NewScheduler(loc)
	// A slow run must not overlap with the next one
	s.SingletonModeAll()

	return &Scheduler{
		scheduler: s,
		repairer:  repairer,
		repairAt:  repairAt,
		timeout:   DefaultRepairTimeout,
		log:       logger,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() error {
	job, err := s.scheduler.Every(1).Day().At(s.repairAt).Do(s.runRepair)
	if err != nil {
		return fmt.Errorf("failed to schedule repair job: %w", err)
	}
	job.Tag("repair")

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
	s.log.Info("scheduler started", "repair_at", s.repairAt, "next_run", job.NextRun())
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.log.Info("scheduler stopped")
}

// NextRun returns when the repair job runs next. It is zero before Start.
func (s *Scheduler) NextRun() time.Time {
	_, next := s.scheduler.NextRun()
	return next
}

func (s *Scheduler) runRepair() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.RunRepairNow(ctx); err != nil {
		s.log.Error("scheduled repair failed", "err", err)
	}
}

// RunRepairNow repairs all users immediately and returns the number of
// rewritten words.
func (s *Scheduler) RunRepairNow(ctx context.Context) (int, error) {
	start := time.Now()
	n, err := s.repairer.RepairAll(ctx)
	if err != nil {
		return n, fmt.Errorf("repair: %w", err)
	}
	s.log.Info("repair finished", "words", n, "took", time.Since(start).Round(time.Millisecond))
	return n, nil
}
