// Package decorate implements the decoration pass: it discovers named
// sections across an ordered list of configuration sources, resolves each
// section's type against the updater registry, and configures the resulting
// activation units on a shared graph.
//
// Precedence is first-seen-wins across sources: the earliest source defining
// a section name owns it, later definitions are ignored entirely (never
// merged). Failures configuring one unit never prevent sibling units from
// activating; only the backing store becoming unreadable aborts a pass.
package decorate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/c360/graphdeco/graph"
	"github.com/c360/graphdeco/metric"
	"github.com/c360/graphdeco/prefs"
	"github.com/c360/graphdeco/timer"
	"github.com/c360/graphdeco/updater"
)

// Source names used in logs and results
const (
	sourceMain     = "main"
	sourceEmbedded = "embedded"
)

// Decorator turns declarative configuration into live updaters on a graph.
// It holds no durable state between passes.
type Decorator struct {
	registry  *updater.Registry
	logger    *slog.Logger
	metrics   *decoratorMetrics
	timerOpts []timer.Option
}

// New creates a decorator. The metrics registry may be nil to disable
// metrics.
func New(registry *updater.Registry, logger *slog.Logger, metricsRegistry *metric.Registry) *Decorator {
	if logger == nil {
		logger = slog.Default()
	}

	metrics, err := newDecoratorMetrics(metricsRegistry)
	if err != nil {
		logger.Error("Failed to initialize decorator metrics", "error", err)
		metrics = nil // Continue without metrics
	}

	var timerOpts []timer.Option
	if metricsRegistry != nil {
		timerOpts = append(timerOpts, timer.WithMetrics(metricsRegistry))
	}

	return &Decorator{
		registry:  registry,
		logger:    logger,
		metrics:   metrics,
		timerOpts: timerOpts,
	}
}

type namedSource struct {
	name   string
	source prefs.Source
}

// Setup runs one decoration pass over the graph: the main source first, then
// the graph's embedded configuration if present. Absent sources are skipped.
//
// Setup never returns a Go error. The outcome of every section is recorded
// in the Report; a backing-store failure while enumerating a source aborts
// the rest of the pass and is reported in Report.Aborted. Units configured
// before the abort stay configured, there is no rollback.
func (d *Decorator) Setup(ctx context.Context, g *graph.Graph, main prefs.Source) *Report {
	start := time.Now()
	report := &Report{PassID: uuid.NewString()}
	logger := d.logger.With("pass_id", report.PassID)

	// One periodic updater per graph, created up front so units can
	// schedule into it during Configure.
	periodic := g.PeriodicUpdater(true, d.timerOpts...)

	sources := make([]namedSource, 0, 2)
	if main != nil {
		sources = append(sources, namedSource{sourceMain, main})
	}
	if ec := g.EmbeddedConfig(); ec != nil {
		sources = append(sources, namedSource{sourceEmbedded, prefs.FromProperties(ec.Properties)})
	}
	logger.Info("Using configurations",
		"main", main != nil,
		"embedded", g.EmbeddedConfig() != nil)

	seen := make(map[string]struct{})
	for _, ns := range sources {
		names, err := ns.source.ChildNames()
		if err != nil {
			// The backing store itself is unreadable: the one
			// unrecoverable condition. Abort the pass, keep what
			// already activated.
			report.Aborted = err
			logger.Error("Can't read configuration", "source", ns.name, "error", err)
			break
		}

		for _, name := range names {
			result := d.configureSection(ctx, logger, g, ns, name, seen)
			report.Results = append(report.Results, result)
			d.metrics.recordSection(string(result.Status))
		}
	}

	// An updater that ended the pass empty was never needed: drop it so
	// the graph does not carry an idle resource.
	if periodic.Size() == 0 {
		periodic.Stop()
		g.SetPeriodicUpdater(nil)
		logger.Debug("Removed periodic updater, no tasks were scheduled")
	}

	status := passCompleted
	if report.Aborted != nil {
		status = passAborted
	}
	d.metrics.recordPass(status, time.Since(start).Seconds())
	logger.Info("Decoration pass finished",
		"status", status,
		"configured", report.Count(StatusConfigured),
		"failed", report.Count(StatusFailed),
		"skipped", report.Count(StatusSkippedUnknown)+report.Count(StatusShadowed))
	return report
}

// configureSection resolves and activates one section, containing any
// failure within it.
func (d *Decorator) configureSection(
	ctx context.Context,
	logger *slog.Logger,
	g *graph.Graph,
	ns namedSource,
	name string,
	seen map[string]struct{},
) Result {
	if _, done := seen[name]; done {
		return Result{Section: name, Source: ns.name, Status: StatusShadowed}
	}
	// Mark resolved regardless of what happens next: an unrecognized or
	// failing section must not be revisited from a later source.
	seen[name] = struct{}{}

	section := ns.source.Section(name)
	typeName := section.Get("type", "")

	factory, known := d.registry.Resolve(typeName)
	if typeName == "" || !known {
		logger.Info("Skipping section with unknown type",
			"section", name, "source", ns.name, "type", typeName)
		return Result{Section: name, Source: ns.name, Type: typeName, Status: StatusSkippedUnknown}
	}

	logger.Info("Configuring section", "section", name, "source", ns.name, "type", typeName)
	if err := configureUnit(ctx, g, factory, section); err != nil {
		logger.Error("Can't configure section",
			"section", name, "source", ns.name, "type", typeName, "error", err)
		return Result{Section: name, Source: ns.name, Type: typeName, Status: StatusFailed, Err: err}
	}
	return Result{Section: name, Source: ns.name, Type: typeName, Status: StatusConfigured}
}

// configureUnit instantiates and configures one activation unit, converting
// panics from misbehaving factories or units into errors.
func configureUnit(ctx context.Context, g *graph.Graph, factory updater.Factory, section prefs.Source) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	unit := factory()
	if unit == nil {
		return fmt.Errorf("factory returned nil unit")
	}
	return unit.Configure(ctx, g, section)
}

// Shutdown tears down what decoration passes registered on the graph: the
// shutdown coordinator first, then the periodic updater. Calling Shutdown on
// a graph that was never decorated is a no-op.
func (d *Decorator) Shutdown(g *graph.Graph) {
	if s := g.Shutdowner(); s != nil {
		s.Shutdown(g)
	}

	if periodic := g.PeriodicUpdater(false); periodic != nil {
		d.logger.Info("Stopping periodic updater", "tasks", periodic.Size())
		periodic.Stop()
	}
}
