package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// jobTimeout bounds a single refresh run.
const jobTimeout = 30 * time.Second

// Refresher re-fetches the displayed location.
type Refresher interface {
	Refresh(ctx context.Context) (weather.WeatherRecord, error)
}

// Scheduler periodically refreshes the displayed weather record.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Refresher
	interval  time.Duration
}

// New creates a new Scheduler.
func New(interval time.Duration, service Refresher) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler. The
// first run happens one interval after Start.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: refresh disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().SingletonMode().Do(s.refresh)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	log.Printf("INFO: scheduler: refreshing every %s", s.interval)
	return nil
}

func (s *Scheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	rec, err := s.service.Refresh(ctx)
	switch {
	case errors.Is(err, weather.ErrNoCurrent):
		log.Println("DEBUG: scheduler: nothing displayed; skipping refresh")
	case err != nil:
		log.Printf("scheduler: refresh failed: %v", err)
	default:
		log.Printf("scheduler: refreshed %s", rec.City)
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
