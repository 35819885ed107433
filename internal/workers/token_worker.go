package workers

import (
	"context"
	"time"

	"empylo_backend/internal/logger"
	"empylo_backend/internal/repositories"

	"gorm.io/gorm"
)

// TokenWorker periodically marks expired verification and reset tokens
// as used so the live-token index stays clean.
type TokenWorker struct {
	db        *gorm.DB
	tokenRepo repositories.TokenRepository
	interval  time.Duration
}

func NewTokenWorker(db *gorm.DB, tokenRepo repositories.TokenRepository, interval time.Duration) *TokenWorker {
	return &TokenWorker{
		db:        db,
		tokenRepo: tokenRepo,
		interval:  interval,
	}
}

func (w *TokenWorker) Start(ctx context.Context) {
	go w.sweepExpired(ctx)
}

func (w *TokenWorker) sweepExpired(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Token worker stopped")
			return
		case <-ticker.C:
			swept, err := w.tokenRepo.ExpireStale(w.db, time.Now())
			if err != nil {
				logger.WorkerLog("token", "sweep expired tokens", err)
				continue
			}
			if swept > 0 {
				logger.Info("Swept expired tokens", "count", swept)
			}
		}
	}
}
