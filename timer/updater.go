// Package timer provides the periodic updater: a scheduler that runs each
// registered task on its own fixed interval until the updater is stopped.
//
// The decoration pass creates one periodic updater per graph; activation
// units schedule their recurring work (feed polls, refreshes) into it during
// Configure. The updater owns the ticker goroutines; the task functions own
// everything they touch.
package timer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/graphdeco/errors"
	"github.com/c360/graphdeco/metric"
)

// Default timeout for waiting on task goroutines during Stop
const defaultStopTimeout = 5 * time.Second

// Task is a unit of recurring work. The context is canceled when the
// updater stops; tasks should honor it for anything blocking.
type Task func(ctx context.Context) error

// Updater runs registered tasks periodically, each on its own interval.
type Updater struct {
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	names   []string
	stopped bool

	// Statistics (atomic)
	runs     atomic.Int64
	failures atomic.Int64

	metrics *updaterMetrics
}

type updaterMetrics struct {
	tasks    prometheus.Gauge
	runs     *prometheus.CounterVec // by task and status
	duration *prometheus.HistogramVec
}

// Option configures an Updater
type Option func(*Updater)

// WithMetrics registers task metrics with the given registry
func WithMetrics(registry *metric.Registry) Option {
	return func(u *Updater) {
		if registry == nil {
			return
		}
		m := &updaterMetrics{
			tasks: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "graphdeco",
				Subsystem: "timer",
				Name:      "tasks",
				Help:      "Number of scheduled periodic tasks",
			}),
			runs: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "graphdeco",
				Subsystem: "timer",
				Name:      "runs_total",
				Help:      "Total periodic task executions",
			}, []string{"task", "status"}), // status: success, failure
			duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "graphdeco",
				Subsystem: "timer",
				Name:      "run_duration_seconds",
				Help:      "Periodic task execution duration in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
			}, []string{"task"}),
		}
		if err := registry.Register("timer", "tasks", m.tasks); err != nil {
			u.logger.Error("Failed to register timer metrics", "error", err)
			return
		}
		if err := registry.Register("timer", "runs_total", m.runs); err != nil {
			u.logger.Error("Failed to register timer metrics", "error", err)
			return
		}
		if err := registry.Register("timer", "run_duration_seconds", m.duration); err != nil {
			u.logger.Error("Failed to register timer metrics", "error", err)
			return
		}
		u.metrics = m
	}
}

// New creates a periodic updater with no tasks scheduled.
func New(logger *slog.Logger, opts ...Option) *Updater {
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	u := &Updater{
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}

	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Schedule registers a task to run every interval, starting with an
// immediate first run. Returns an error if the updater is already stopped
// or the arguments are unusable.
func (u *Updater) Schedule(name string, every time.Duration, task Task) error {
	if name == "" {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Updater", "Schedule", "task name validation")
	}
	if every <= 0 {
		return errors.WrapInvalid(
			fmt.Errorf("interval must be positive, got %s", every),
			"Updater", "Schedule", "interval validation")
	}
	if task == nil {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Updater", "Schedule", "task function validation")
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if u.stopped {
		return errors.WrapInvalid(errors.ErrAlreadyStopped, "Updater", "Schedule", "lifecycle check")
	}

	u.names = append(u.names, name)
	if u.metrics != nil {
		u.metrics.tasks.Inc()
	}

	u.wg.Add(1)
	go u.run(name, every, task)

	u.logger.Debug("Scheduled periodic task", "task", name, "interval", every)
	return nil
}

func (u *Updater) run(name string, every time.Duration, task Task) {
	defer u.wg.Done()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	u.runOnce(name, task)
	for {
		select {
		case <-u.ctx.Done():
			return
		case <-ticker.C:
			u.runOnce(name, task)
		}
	}
}

func (u *Updater) runOnce(name string, task Task) {
	start := time.Now()
	var err error

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		u.runs.Add(1)
		status := "success"
		if err != nil {
			u.failures.Add(1)
			status = "failure"
			u.logger.Error("Periodic task failed", "task", name, "error", err)
		}
		if u.metrics != nil {
			u.metrics.runs.WithLabelValues(name, status).Inc()
			u.metrics.duration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		}
	}()

	err = task(u.ctx)
}

// Size returns the number of scheduled tasks.
func (u *Updater) Size() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.names)
}

// TaskNames returns the names of scheduled tasks in registration order.
func (u *Updater) TaskNames() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	names := make([]string, len(u.names))
	copy(names, u.names)
	return names
}

// Stats returns total runs and failures across all tasks.
func (u *Updater) Stats() (runs, failures int64) {
	return u.runs.Load(), u.failures.Load()
}

// Stop cancels all task contexts and waits for task goroutines to exit,
// bounded by a fixed timeout. In-flight task executions are canceled, not
// awaited indefinitely. Stop is idempotent.
func (u *Updater) Stop() {
	u.mu.Lock()
	if u.stopped {
		u.mu.Unlock()
		return
	}
	u.stopped = true
	u.mu.Unlock()

	u.cancel()

	done := make(chan struct{})
	go func() {
		u.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(defaultStopTimeout):
		u.logger.Warn("Timed out waiting for periodic tasks to stop", "timeout", defaultStopTimeout)
	}
}
