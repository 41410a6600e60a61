package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/taskforge-hq/taskforge-backend/internal/suggestions/repository"
)

// Scheduler runs the nightly suggestion stats rollup.
type Scheduler struct {
	stats *repository.StatsRepository
	cron  *cron.Cron
}

func NewScheduler(stats *repository.StatsRepository) *Scheduler {
	return &Scheduler{stats: stats}
}

// Start registers the nightly rollup (12:05 AM) and starts the cron loop.
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc("0 5 0 * * *", func() {
		s.runNightlyRollup()
	})
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Cron scheduler started (stats rollup nightly at 12:05AM)")
	c.Start()
	s.cron = c
}

// Stop halts the cron loop, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

func (s *Scheduler) runNightlyRollup() {
	log.Println("Nightly suggestion stats rollup started...")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Roll up yesterday; created_at is always in the past for that day.
	day := time.Now().AddDate(0, 0, -1)
	if err := s.stats.RollupDay(ctx, day); err != nil {
		log.Printf("Stats rollup failed: %v", err)
		return
	}

	log.Println("Nightly suggestion stats rollup finished")
}
