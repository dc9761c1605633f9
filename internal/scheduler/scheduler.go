package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/ctaque/weather-app-challenge-sub002/internal/overlay"
)

// refreshTimeout bounds one full refresh cycle, upstream fetches included.
const refreshTimeout = 60 * time.Second

// Scheduler periodically refreshes the overlay snapshots.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *overlay.Service
	interval  time.Duration
}

// New creates a Scheduler driving the given service.
func New(service *overlay.Service, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		interval:  interval,
	}
}

// Start runs one refresh immediately so the API has data as soon as
// possible, then schedules the periodic job.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	runRefresh := func() {
		log.Println("scheduler: running overlay refresh job")

		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		s.service.Refresh(ctx)
		log.Println("scheduler: completed overlay refresh job")
	}

	runRefresh()

	_, err := s.scheduler.Every(minutes).Minutes().Do(runRefresh)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
