package cron

import (
	"log"

	"techniq-api/core/services"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron          *cron.Cron
	resyncService *services.ResyncService
}

func NewScheduler(resyncService *services.ResyncService) *Scheduler {
	// Create cron with seconds precision and logging
	c := cron.New(cron.WithSeconds(), cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))

	return &Scheduler{
		cron:          c,
		resyncService: resyncService,
	}
}

// Start initializes and starts all scheduled jobs
func (s *Scheduler) Start() error {
	log.Println("Starting cron scheduler...")

	// Schedule rating resync to run every hour
	// Cron expression: "0 0 * * * *" = at minute 0 of every hour
	_, err := s.cron.AddFunc("0 0 * * * *", s.runResync)
	if err != nil {
		log.Printf("Error scheduling rating resync job: %v", err)
		return err
	}

	// Expire assessments stuck in pending/processing, every 6 hours
	_, err = s.cron.AddFunc("0 30 */6 * * *", s.runExpiry)
	if err != nil {
		log.Printf("Error scheduling assessment expiry job: %v", err)
		return err
	}

	s.cron.Start()
	log.Println("Cron scheduler started successfully")

	return nil
}

// Stop gracefully shuts down the scheduler
func (s *Scheduler) Stop() {
	log.Println("Stopping cron scheduler...")
	s.cron.Stop()
	log.Println("Cron scheduler stopped")
}

// runResync re-runs the rating recomputation for players whose rating rows
// lag behind their assessment history.
func (s *Scheduler) runResync() {
	log.Println("Running rating resync job...")

	staleCount, err := s.resyncService.GetStaleRatingsCount()
	if err != nil {
		log.Printf("Error checking stale ratings count: %v", err)
		return
	}

	if staleCount == 0 {
		log.Println("No stale ratings to resync")
		return
	}

	log.Printf("Found %d players with stale ratings", staleCount)

	if err := s.resyncService.ResyncStaleRatings(); err != nil {
		log.Printf("Error during rating resync: %v", err)
		return
	}

	log.Println("Rating resync job completed successfully")
}

// runExpiry fails assessments the producer abandoned.
func (s *Scheduler) runExpiry() {
	log.Println("Running assessment expiry job...")

	if err := s.resyncService.ExpireStuckAssessments(); err != nil {
		log.Printf("Error during assessment expiry: %v", err)
		return
	}

	log.Println("Assessment expiry job completed")
}

// RunNow manually triggers the resync job (useful for testing)
func (s *Scheduler) RunNow() {
	log.Println("Manually triggering rating resync job...")
	s.runResync()
}
