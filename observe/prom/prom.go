// Package prom exports fanout batch and task events as Prometheus metrics.
package prom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/NetPo4ki/go-fanout/fanout"
)

// Outcome label values of the tasks_total counter.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePanic   = "panic"
)

// Metrics is a fanout.Observer backed by Prometheus collectors.
type Metrics struct {
	batches      prometheus.Counter
	activeTasks  prometheus.Gauge
	tasks        *prometheus.CounterVec
	taskDuration prometheus.Histogram
	admitWait    prometheus.Histogram
	joinWait     prometheus.Histogram
}

var _ fanout.Observer = (*Metrics)(nil)

// New creates the collectors under namespace and registers them with reg.
// A nil reg falls back to prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Run and Gather calls started.",
		}),
		activeTasks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_tasks",
			Help:      "Tasks currently executing.",
		}),
		tasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_total",
			Help:      "Finished tasks by outcome.",
		}, []string{"outcome"}),
		taskDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "task_duration_seconds",
			Help:      "Task execution time.",
			Buckets:   prometheus.DefBuckets,
		}),
		admitWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "admission_wait_seconds",
			Help:      "Time a task waited for a concurrency slot.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		joinWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "join_wait_seconds",
			Help:      "Time between the last submission and the batch join.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	for _, c := range []prometheus.Collector{m.batches, m.activeTasks, m.tasks, m.taskDuration, m.admitWait, m.joinWait} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// BatchStarted counts a batch.
func (m *Metrics) BatchStarted(_ context.Context, _ int) {
	m.batches.Inc()
}

// TaskAdmitted records the admission wait.
func (m *Metrics) TaskAdmitted(_ context.Context, _ int, wait time.Duration) {
	m.admitWait.Observe(wait.Seconds())
}

// TaskStarted increments the active gauge.
func (m *Metrics) TaskStarted(_ context.Context, _ int) {
	m.activeTasks.Inc()
}

// TaskFinished decrements the active gauge and records outcome and duration.
func (m *Metrics) TaskFinished(_ context.Context, _ int, dur time.Duration, err error, panicked bool) {
	m.activeTasks.Dec()
	m.taskDuration.Observe(dur.Seconds())
	switch {
	case panicked:
		m.tasks.WithLabelValues(OutcomePanic).Inc()
	case err != nil:
		m.tasks.WithLabelValues(OutcomeFailure).Inc()
	default:
		m.tasks.WithLabelValues(OutcomeSuccess).Inc()
	}
}

// BatchJoined records the join wait.
func (m *Metrics) BatchJoined(_ context.Context, wait time.Duration) {
	m.joinWait.Observe(wait.Seconds())
}
