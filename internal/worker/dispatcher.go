// Package worker runs notification side effects off the request path.
package worker

import (
	"context"
	"sync"
	"time"

	"tripdesk/internal/metrics"

	"github.com/rs/zerolog"
)

// Task is one unit of async work. Name is used only for logging and metrics.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Dispatcher executes tasks on a small worker pool with a bounded queue and a
// per-task timeout. At-most-once: a full queue drops the task, and failures
// are logged, never retried.
type Dispatcher struct {
	queue   chan Task
	timeout time.Duration
	workers int
	log     zerolog.Logger
	wg      sync.WaitGroup

	closeOnce sync.Once
}

func NewDispatcher(queueSize, workers int, timeout time.Duration, logger *zerolog.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 128
	}
	if workers <= 0 {
		workers = 2
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	var log zerolog.Logger
	if logger != nil {
		log = logger.With().Str("component", "dispatcher").Logger()
	}

	return &Dispatcher{
		queue:   make(chan Task, queueSize),
		timeout: timeout,
		workers: workers,
		log:     log,
	}
}

// Start launches the worker pool; workers stop once the queue is closed and
// drained.
func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for task := range d.queue {
				d.runTask(task)
			}
		}()
	}
}

// Enqueue schedules a task. A full queue drops the task rather than blocking
// the caller.
func (d *Dispatcher) Enqueue(task Task) {
	select {
	case d.queue <- task:
	default:
		metrics.IncDispatchDropped()
		d.log.Warn().Str("task", task.Name).Msg("dispatch queue full, task dropped")
	}
}

func (d *Dispatcher) runTask(task Task) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Str("task", task.Name).Any("panic", r).Msg("task panicked")
		}
	}()

	if err := task.Run(ctx); err != nil {
		d.log.Error().Err(err).Str("task", task.Name).Msg("task failed")
	}
}

// Close stops accepting tasks and blocks until in-flight tasks finish.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}
