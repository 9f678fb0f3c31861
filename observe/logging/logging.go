// Package logging adapts a logr.Logger into a fanout.Observer.
//
// Batch and task lifecycle events are logged at V(1); task failures are
// logged as errors. Every line carries the batch ID.
package logging

import (
	"context"
	"time"

	"github.com/go-logr/logr"

	"github.com/NetPo4ki/go-fanout/fanout"
)

type Observer struct {
	log logr.Logger
}

var _ fanout.Observer = (*Observer)(nil)

func New(log logr.Logger) *Observer {
	return &Observer{log: log}
}

func (o *Observer) with(ctx context.Context) logr.Logger {
	if id, ok := fanout.BatchID(ctx); ok {
		return o.log.WithValues("batch", id.String())
	}
	return o.log
}

func (o *Observer) BatchStarted(ctx context.Context, size int) {
	o.with(ctx).V(1).Info("batch started", "tasks", size)
}

func (o *Observer) TaskAdmitted(ctx context.Context, index int, wait time.Duration) {
	o.with(ctx).V(2).Info("task admitted", "index", index, "wait", wait)
}

func (o *Observer) TaskStarted(ctx context.Context, index int) {
	o.with(ctx).V(2).Info("task started", "index", index)
}

func (o *Observer) TaskFinished(ctx context.Context, index int, dur time.Duration, err error, panicked bool) {
	if err != nil {
		o.with(ctx).Error(err, "task failed", "index", index, "duration", dur, "panicked", panicked)
		return
	}
	o.with(ctx).V(1).Info("task finished", "index", index, "duration", dur)
}

func (o *Observer) BatchJoined(ctx context.Context, wait time.Duration) {
	o.with(ctx).V(1).Info("batch joined", "wait", wait)
}
