package services

import (
	"context"
	"log"
	"time"

	"shiftdesk/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronService runs scheduled maintenance jobs
type CronService struct {
	cron             *cron.Cron
	refreshTokenRepo repositories.RefreshTokenRepository
}

// NewCronService creates a new cron service
func NewCronService(db *gorm.DB) *CronService {
	return &CronService{
		cron:             cron.New(),
		refreshTokenRepo: repositories.NewRefreshTokenRepository(db),
	}
}

// Start schedules all jobs and launches the cron runner
func (s *CronService) Start() {
	// Refresh tokens carry an absolute expiry; a document store would
	// reap them with a TTL index, here a nightly sweep does it.
	s.cron.AddFunc("30 3 * * *", s.purgeExpiredTokens)

	s.cron.Start()
	log.Println("🚀 CronService started")
}

// Stop stops the cron runner, waiting for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) purgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	purged, err := s.refreshTokenRepo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("❌ Refresh token purge failed: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("✅ Purged %d expired refresh tokens", purged)
	}
}
