package service

import (
	"context"
	"log"
	"time"

	"github.com/zacharyr0th/patron-gate/internal/config"
)

// CleanupWorker periodically purges expired storage sessions. Expiry itself
// is enforced at read time; the sweep only reclaims dead rows.
type CleanupWorker struct {
	sessionSvc *StorageSessionService
	interval   time.Duration
}

func NewCleanupWorker(sessionSvc *StorageSessionService) *CleanupWorker {
	return &CleanupWorker{
		sessionSvc: sessionSvc,
		interval:   config.SessionCleanupInterval,
	}
}

func (w *CleanupWorker) Start(ctx context.Context) {
	log.Printf("[Cleanup Worker] started, interval %s", w.interval)

	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[Cleanup Worker] stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *CleanupWorker) sweep(ctx context.Context) {
	deleted, err := w.sessionSvc.DeleteExpired(ctx)
	if err != nil {
		log.Printf("[Cleanup Worker] sweep failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("[Cleanup Worker] purged %d expired storage sessions", deleted)
	}
}
