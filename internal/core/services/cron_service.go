package services

import (
	"context"
	"log"
	"time"

	"garderie-api/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

const (
	purgeSessionsSchedule = "30 2 * * *"
	sweepOverdueSchedule  = "0 6 * * *"
	jobTimeout            = 4 * time.Minute
)

// CronService runs the daily maintenance jobs
type CronService struct {
	cron             *cron.Cron
	refreshTokenRepo repositories.RefreshTokenRepository
	payments         *PaymentService
	clock            Clock
}

// NewCronService creates the scheduler in the daycare's timezone
func NewCronService(refreshTokenRepo repositories.RefreshTokenRepository, payments *PaymentService, clock Clock) *CronService {
	return &CronService{
		cron: cron.New(
			cron.WithLocation(clock.Location),
			cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		refreshTokenRepo: refreshTokenRepo,
		payments:         payments,
		clock:            clock,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(purgeSessionsSchedule, s.job(s.PurgeSessions)); err != nil {
		return err
	}
	if s.payments.billing.LateSweepEnabled {
		if _, err := s.cron.AddFunc(sweepOverdueSchedule, s.job(s.SweepOverdue)); err != nil {
			return err
		}
	}
	s.cron.Start()
	log.Printf("⏰ Cron started (%d jobs)", len(s.cron.Entries()))
	return nil
}

// Stop waits for running jobs to finish
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 Cron stopped")
}

// PurgeSessions deletes expired and revoked refresh tokens
func (s *CronService) PurgeSessions(ctx context.Context) error {
	n, err := s.refreshTokenRepo.DeleteStale(ctx, s.clock.now())
	if err != nil {
		return err
	}
	if n > 0 {
		log.Printf("🧹 Purged %d stale sessions", n)
	}
	return nil
}

// SweepOverdue marks overdue pending payments as late
func (s *CronService) SweepOverdue(ctx context.Context) error {
	n, err := s.payments.SweepOverdue(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Printf("⏳ Marked %d payments as late", n)
	}
	return nil
}

func (s *CronService) job(run func(context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		if err := run(ctx); err != nil {
			log.Printf("❌ Cron job failed: %v", err)
		}
	}
}
