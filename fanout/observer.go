package fanout

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Observer receives lifecycle events of a Run or Gather call. Hooks run on the
// submitting goroutine (batch and admission events) or on the task's own
// goroutine (task events) and must be safe for concurrent use.
type Observer interface {
	BatchStarted(ctx context.Context, size int)
	TaskAdmitted(ctx context.Context, index int, wait time.Duration)
	TaskStarted(ctx context.Context, index int)
	TaskFinished(ctx context.Context, index int, dur time.Duration, err error, panicked bool)
	BatchJoined(ctx context.Context, wait time.Duration)
}

// Observers combines several observers into one. Nil entries are skipped.
func Observers(obs ...Observer) Observer {
	var list multiObserver
	for _, o := range obs {
		if o != nil {
			list = append(list, o)
		}
	}
	switch len(list) {
	case 0:
		return nil
	case 1:
		return list[0]
	}
	return list
}

type multiObserver []Observer

func (m multiObserver) BatchStarted(ctx context.Context, size int) {
	for _, o := range m {
		o.BatchStarted(ctx, size)
	}
}

func (m multiObserver) TaskAdmitted(ctx context.Context, index int, wait time.Duration) {
	for _, o := range m {
		o.TaskAdmitted(ctx, index, wait)
	}
}

func (m multiObserver) TaskStarted(ctx context.Context, index int) {
	for _, o := range m {
		o.TaskStarted(ctx, index)
	}
}

func (m multiObserver) TaskFinished(ctx context.Context, index int, dur time.Duration, err error, panicked bool) {
	for _, o := range m {
		o.TaskFinished(ctx, index, dur, err, panicked)
	}
}

func (m multiObserver) BatchJoined(ctx context.Context, wait time.Duration) {
	for _, o := range m {
		o.BatchJoined(ctx, wait)
	}
}

type batchKey struct{}

// BatchID returns the ID of the Run or Gather call ctx belongs to. Tasks and
// observers receive a context carrying it.
func BatchID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(batchKey{}).(uuid.UUID)
	return id, ok
}

func withBatchID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, batchKey{}, id)
}
