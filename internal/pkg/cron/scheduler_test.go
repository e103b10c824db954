package cron

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testScheduler() *Scheduler {
	return NewScheduler(slog.New(slog.DiscardHandler))
}

func TestSchedulerRunOnce(t *testing.T) {
	s := testScheduler()

	var first, second atomic.Int32
	s.AddJob("failing", time.Hour, func(ctx context.Context) error {
		first.Add(1)
		return errors.New("boom")
	})
	s.AddJob("healthy", time.Hour, func(ctx context.Context) error {
		second.Add(1)
		return nil
	})

	s.RunOnce(context.Background())

	assert.Equal(t, int32(1), first.Load())
	assert.Equal(t, int32(1), second.Load(), "a failing job must not stop the remaining ones")
}

func TestSchedulerStartRunsImmediately(t *testing.T) {
	s := testScheduler()

	ran := make(chan struct{})
	s.AddJob("sweep", time.Hour, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start()
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
}

func TestSchedulerStopWaits(t *testing.T) {
	s := testScheduler()

	var runs atomic.Int32
	s.AddJob("counter", 10*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load(), "no runs may happen after Stop returns")
}
