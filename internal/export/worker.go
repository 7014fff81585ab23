package export

import (
	"context"
	"log/slog"

	"uepex/internal/queue"
)

// Rebuilder renders and stores a fresh CSV snapshot.
type Rebuilder interface {
	RebuildCSV(ctx context.Context) (Snapshot, error)
}

// RunWorker consumes registration events and rebuilds the CSV snapshot after
// each one. It returns when ctx is done or the queue closes.
func RunWorker(ctx context.Context, q queue.Queue, r Rebuilder, logger *slog.Logger) error {
	messages, err := q.Consume(ctx)
	if err != nil {
		return err
	}
	for msg := range messages {
		if msg.Type != queue.TypeStudentRegistered {
			logger.Debug("ignoring message", "type", msg.Type)
			continue
		}
		snap, err := r.RebuildCSV(ctx)
		if err != nil {
			logger.Error("csv snapshot rebuild failed", "numero_documento", string(msg.Body), "error", err)
			continue
		}
		logger.Info("csv snapshot rebuilt", "numero_documento", string(msg.Body), "version", snap.Version, "count", snap.Count)
	}
	return ctx.Err()
}
