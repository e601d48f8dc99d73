package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/swellwatch/buoy-tracker/internal/buoy"
)

// Scheduler periodically pulls the observation feed for every registered
// station.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *buoy.Service
	stations  []buoy.Station
	interval  time.Duration
	logger    zerolog.Logger
}

// New creates a Scheduler.
func New(stations []buoy.Station, interval time.Duration, service *buoy.Service, logger zerolog.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		stations:  stations,
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the periodic ingest job and starts the underlying
// scheduler.
func (s *Scheduler) Start() error {
	if len(s.stations) == 0 {
		s.logger.Warn().Msg("no stations configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(s.runIngest)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// runIngest fans out one fetch per station and waits for all of them.
// Failures are logged per station; one bad feed never blocks the rest.
func (s *Scheduler) runIngest() {
	log := s.logger.With().Str("run_id", uuid.NewString()).Logger()
	log.Info().Int("stations", len(s.stations)).Msg("ingest run started")

	var wg sync.WaitGroup
	for _, st := range s.stations {
		st := st
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			n, err := s.service.IngestStation(ctx, st)
			if err != nil {
				log.Error().Err(err).Str("station", st.ID).Msg("ingest failed")
				return
			}
			log.Info().Str("station", st.ID).Int("readings", n).Msg("station ingested")
		}()
	}
	wg.Wait()

	log.Info().Msg("ingest run completed")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
