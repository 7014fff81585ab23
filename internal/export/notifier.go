package export

import (
	"context"
	"errors"
	"fmt"

	"uepex/internal/queue"
	"uepex/internal/student"
)

// Notifier invalidates the CSV snapshot when a student is registered and
// asks the worker to rebuild it.
type Notifier struct {
	snapshots Snapshots
	queue     queue.Queue
}

// NewNotifier builds a notifier; either dependency may be nil.
func NewNotifier(snapshots Snapshots, q queue.Queue) *Notifier {
	return &Notifier{snapshots: snapshots, queue: q}
}

// Registered implements student.Notifier.
func (n *Notifier) Registered(ctx context.Context, rec student.Record) error {
	var errs []error
	if n.snapshots != nil {
		if _, err := n.snapshots.Bump(ctx); err != nil {
			errs = append(errs, fmt.Errorf("bump snapshot version: %w", err))
		}
	}
	if n.queue != nil {
		msg := queue.Message{Type: queue.TypeStudentRegistered, Body: []byte(rec.DocumentNumber)}
		if err := n.queue.Publish(ctx, msg); err != nil {
			errs = append(errs, fmt.Errorf("publish %s: %w", msg.Type, err))
		}
	}
	return errors.Join(errs...)
}
