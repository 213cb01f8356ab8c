// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/commerce-console/internal/logger"
)

func TestPoller_RunsScheduledJob(t *testing.T) {
	p := NewPoller(time.Second, logger.Nop())
	var runs atomic.Int32
	p.Schedule("dashboard", func(context.Context) error {
		runs.Add(1)
		return nil
	})

	p.Start(context.Background())
	defer p.Stop()

	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
}

func TestPoller_ScheduleAfterStartAndReplace(t *testing.T) {
	p := NewPoller(time.Second, logger.Nop())
	p.Start(context.Background())
	defer p.Stop()

	var first, second atomic.Int32
	p.Schedule("list", func(context.Context) error { first.Add(1); return nil })
	p.Schedule("list", func(context.Context) error { second.Add(1); return nil })
	assert.Equal(t, 1, p.Jobs())

	require.Eventually(t, func() bool { return second.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
	assert.Equal(t, int32(0), first.Load())
}

func TestPoller_Unschedule(t *testing.T) {
	p := NewPoller(time.Second, logger.Nop())
	p.Start(context.Background())
	defer p.Stop()

	var runs atomic.Int32
	p.Schedule("orders", func(context.Context) error { runs.Add(1); return nil })
	p.Unschedule("orders")
	assert.Equal(t, 0, p.Jobs())

	time.Sleep(1500 * time.Millisecond)
	assert.Equal(t, int32(0), runs.Load())
}

func TestPoller_FailingJobKeepsRunning(t *testing.T) {
	p := NewPoller(time.Second, logger.Nop())
	var runs atomic.Int32
	p.Schedule("flaky", func(context.Context) error {
		runs.Add(1)
		return errors.New("backend down")
	})

	p.Start(context.Background())
	defer p.Stop()

	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 4*time.Second, 50*time.Millisecond)
}

func TestPoller_StopCancelsRunningJob(t *testing.T) {
	p := NewPoller(time.Second, logger.Nop())
	started := make(chan struct{})
	var cancelled atomic.Bool
	p.Schedule("slow", func(ctx context.Context) error {
		select {
		case started <- struct{}{}:
		default:
		}
		<-ctx.Done()
		cancelled.Store(true)
		return ctx.Err()
	})

	p.Start(context.Background())
	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not start")
	}

	p.Stop()
	assert.True(t, cancelled.Load())
}

func TestPoller_StopIdle(t *testing.T) {
	p := NewPoller(0, logger.Nop())
	assert.Equal(t, time.Second, p.Interval())

	// Should not panic when never started
	p.Stop()
}
