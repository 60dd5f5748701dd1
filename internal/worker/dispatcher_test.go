package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherRunsTasks(t *testing.T) {
	d := NewDispatcher(16, 2, time.Second, nil)
	d.Start()

	var ran atomic.Int64
	for i := 0; i < 10; i++ {
		d.Enqueue(Task{Name: "count", Run: func(ctx context.Context) error {
			ran.Add(1)
			return nil
		}})
	}

	d.Close()
	assert.Equal(t, int64(10), ran.Load())
}

func TestDispatcherAbsorbsFailuresAndPanics(t *testing.T) {
	d := NewDispatcher(16, 1, time.Second, nil)
	d.Start()

	var after atomic.Bool
	d.Enqueue(Task{Name: "fail", Run: func(ctx context.Context) error { return errors.New("boom") }})
	d.Enqueue(Task{Name: "panic", Run: func(ctx context.Context) error { panic("boom") }})
	d.Enqueue(Task{Name: "ok", Run: func(ctx context.Context) error {
		after.Store(true)
		return nil
	}})

	d.Close()
	assert.True(t, after.Load(), "worker must survive failed and panicking tasks")
}

func TestDispatcherTimesOutSlowTasks(t *testing.T) {
	d := NewDispatcher(4, 1, 20*time.Millisecond, nil)
	d.Start()

	var sawDeadline atomic.Bool
	d.Enqueue(Task{Name: "slow", Run: func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			sawDeadline.Store(true)
			return ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	}})

	d.Close()
	assert.True(t, sawDeadline.Load())
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	d := NewDispatcher(1, 1, time.Second, nil)
	// Not started: the queue only drains manually, so the second enqueue
	// must drop instead of blocking.
	d.Enqueue(Task{Name: "a", Run: func(ctx context.Context) error { return nil }})

	done := make(chan struct{})
	go func() {
		d.Enqueue(Task{Name: "b", Run: func(ctx context.Context) error { return nil }})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}

	d.Start()
	d.Close()
}
