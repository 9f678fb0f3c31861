package prom

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NetPo4ki/go-fanout/fanout"
)

func TestMetricsCountGather(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg, "fanout")
	require.NoError(t, err)

	tasks := []fanout.Task[int]{
		fanout.Bind(func(context.Context) (int, error) { return 1, nil }),
		fanout.Bind(func(context.Context) (int, error) { return 0, errors.New("boom") }),
		fanout.Bind(func(context.Context) (int, error) { panic("p") }),
		fanout.Bind(func(context.Context) (int, error) { return 4, nil }),
	}
	res, err := fanout.Gather(context.Background(), tasks, fanout.WithConcurrency(2), fanout.WithObserver(m))
	require.NoError(t, err)
	require.Len(t, res, 4)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.batches))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.activeTasks))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.tasks.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tasks.WithLabelValues(OutcomeFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tasks.WithLabelValues(OutcomePanic)))

	count, err := testutil.GatherAndCount(reg, "fanout_task_duration_seconds", "fanout_admission_wait_seconds", "fanout_join_wait_seconds")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestNewRejectsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg, "dup")
	require.NoError(t, err)
	_, err = New(reg, "dup")
	assert.Error(t, err)
}
