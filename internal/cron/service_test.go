package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/rentalhub-backend/pkg/logger"
	"github.com/angelmondragon/rentalhub-backend/pkg/metrics"
)

type fakeLock struct {
	held       bool
	acquireErr error
	releases   int
}

func (f *fakeLock) Acquire(context.Context) (bool, error) {
	if f.acquireErr != nil {
		return false, f.acquireErr
	}
	if f.held {
		return false, nil
	}
	f.held = true
	return true, nil
}

func (f *fakeLock) Release(context.Context) error {
	f.held = false
	f.releases++
	return nil
}

type testJob struct {
	name string
	err  error
	runs int
}

func (t *testJob) Name() string { return t.name }

func (t *testJob) Run(context.Context) error {
	t.runs++
	return t.err
}

func newTestService(t *testing.T, lock Lock, reg prometheus.Registerer, jobs ...Job) *Service {
	t.Helper()
	registry, err := NewRegistry(jobs...)
	require.NoError(t, err)
	svc, err := NewService(ServiceParams{
		Logger:   logger.New(logger.Options{ServiceName: "cron-test"}),
		Registry: registry,
		Lock:     lock,
		Metrics:  metrics.NewCronJobMetrics(reg),
	})
	require.NoError(t, err)
	return svc
}

func counterValue(t *testing.T, reg *prometheus.Registry, name, job string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "job" && label.GetValue() == job {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestServiceRunCycleRunsAllJobsEvenOnFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	lock := &fakeLock{}
	success := &testJob{name: "success"}
	failure := &testJob{name: "fail", err: errors.New("boom")}
	svc := newTestService(t, lock, reg, success, failure)

	require.NoError(t, svc.runCycle(context.Background()))

	assert.Equal(t, 1, success.runs)
	assert.Equal(t, 1, failure.runs)
	assert.Equal(t, 1, lock.releases)
	assert.False(t, lock.held)
	assert.Equal(t, float64(1), counterValue(t, reg, "rentalhub_job_success_total", "success"))
	assert.Equal(t, float64(1), counterValue(t, reg, "rentalhub_job_failure_total", "fail"))
}

func TestServiceRunCycleSkipsWhenLockHeld(t *testing.T) {
	reg := prometheus.NewRegistry()
	job := &testJob{name: "rental-completion"}
	svc := newTestService(t, &fakeLock{held: true}, reg, job)

	require.NoError(t, svc.runCycle(context.Background()))
	assert.Zero(t, job.runs)
	assert.Equal(t, float64(1), counterValue(t, reg, "rentalhub_job_skipped_total", "rental-completion"))
}

func TestServiceRunCycleLockError(t *testing.T) {
	job := &testJob{name: "a"}
	svc := newTestService(t, &fakeLock{acquireErr: errors.New("redis down")}, nil, job)

	err := svc.runCycle(context.Background())
	require.Error(t, err)
	assert.Zero(t, job.runs)
}

func TestNewServiceSchedule(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "cron-test"})

	_, err := NewService(ServiceParams{Logger: logg, Lock: &fakeLock{}, Schedule: "not a schedule"})
	require.Error(t, err)

	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	svc, err := NewService(ServiceParams{Logger: logg, Lock: &fakeLock{}, Location: berlin})
	require.NoError(t, err)

	from := time.Date(2025, time.April, 10, 12, 0, 0, 0, berlin)
	want := time.Date(2025, time.April, 11, 0, 15, 0, 0, berlin)
	assert.True(t, svc.Next(from).Equal(want), "got %v", svc.Next(from))

	_, err = NewService(ServiceParams{Logger: logg})
	assert.Error(t, err, "lock is required")
}

func TestServiceRunStopsOnCancel(t *testing.T) {
	job := &testJob{name: "a"}
	svc, err := NewService(ServiceParams{
		Logger:     logger.New(logger.Options{ServiceName: "cron-test"}),
		Registry:   mustRegistry(t, job),
		Lock:       &fakeLock{},
		Schedule:   "@yearly",
		RunOnStart: true,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, svc.Run(ctx), context.Canceled)
	assert.Zero(t, job.runs, "canceled context stops the cycle before any job")
}

func mustRegistry(t *testing.T, jobs ...Job) *Registry {
	t.Helper()
	registry, err := NewRegistry(jobs...)
	require.NoError(t, err)
	return registry
}
