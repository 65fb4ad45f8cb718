package cleanup

import (
	"log"
	"time"

	"github.com/forumhive/gamehub/internal/session"
)

// SnapshotCleaner prunes aged snapshot rows from the store.
type SnapshotCleaner interface {
	CleanupOldSnapshots(daysToKeep int) (int64, error)
}

// Worker periodically sweeps abandoned waiting rooms out of the registry
// and aged finished snapshots out of the store.
type Worker struct {
	Registry      *session.Registry
	Store         SnapshotCleaner
	WaitingMaxAge time.Duration
	RetentionDays int
}

func NewWorker(reg *session.Registry, store SnapshotCleaner, waitingMaxAge time.Duration, retentionDays int) *Worker {
	return &Worker{
		Registry:      reg,
		Store:         store,
		WaitingMaxAge: waitingMaxAge,
		RetentionDays: retentionDays,
	}
}

// Start initiates the background ticker.
func (w *Worker) Start() {
	go w.runCleanup()

	ticker := time.NewTicker(1 * time.Hour)
	go func() {
		for range ticker.C {
			w.runCleanup()
		}
	}()
	log.Println("[CLEANUP] Background worker started")
}

func (w *Worker) runCleanup() {
	log.Println("[CLEANUP] Starting scheduled cleanup task...")

	w.Registry.SweepStale(w.WaitingMaxAge)

	deleted, err := w.Store.CleanupOldSnapshots(w.RetentionDays)
	if err != nil {
		log.Printf("[CLEANUP] Error cleaning up stored snapshots: %v", err)
	} else if deleted > 0 {
		log.Printf("[CLEANUP] Removed %d expired snapshots from database", deleted)
	}
}
