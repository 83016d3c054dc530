// Package graph provides the runtime context a decoration pass operates on:
// the loaded transit graph together with the services activation units
// register into it.
//
// The service set is statically known and exposed through typed accessors
// rather than an open type-keyed map. Each accessor preserves the optional
// semantics the decorator relies on: a service can be absent, created on
// demand, or removed by setting it to nil.
package graph

import (
	"sync"

	"github.com/c360/graphdeco/timer"
)

// Shutdowner is the shutdown coordinator capability. When present on a
// graph, it is invoked first during Decorator.Shutdown and may perform
// arbitrary cleanup (closing connections, flushing state).
type Shutdowner interface {
	Shutdown(g *Graph)
}

// EmbeddedConfig is configuration carried inside the graph itself,
// serialized as flat dotted properties. When present it acts as a secondary
// configuration source during decoration, losing to the primary source on
// conflicting section names.
type EmbeddedConfig struct {
	Properties map[string]string
}

// Graph is the shared runtime context. It is owned by the host; the
// decorator and activation units borrow it per call.
type Graph struct {
	mu       sync.RWMutex
	periodic *timer.Updater
	shutdown Shutdowner
	embedded *EmbeddedConfig

	bikeStations *BikeStationStore
	delays       *DelayStore
	alerts       *AlertStore
}

// New creates a graph with no services registered.
func New() *Graph {
	return &Graph{}
}

// PeriodicUpdater returns the graph's periodic updater. When create is true
// and no updater is registered, a new one is created, registered and
// returned; otherwise absence yields nil.
func (g *Graph) PeriodicUpdater(create bool, opts ...timer.Option) *timer.Updater {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.periodic == nil && create {
		g.periodic = timer.New(nil, opts...)
	}
	return g.periodic
}

// SetPeriodicUpdater registers the periodic updater; nil removes it.
func (g *Graph) SetPeriodicUpdater(u *timer.Updater) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.periodic = u
}

// Shutdowner returns the registered shutdown coordinator, or nil.
func (g *Graph) Shutdowner() Shutdowner {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.shutdown
}

// SetShutdowner registers the shutdown coordinator; nil removes it.
func (g *Graph) SetShutdowner(s Shutdowner) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.shutdown = s
}

// EmbeddedConfig returns the embedded configuration carried by the graph,
// or nil when the graph was built without one.
func (g *Graph) EmbeddedConfig() *EmbeddedConfig {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.embedded
}

// SetEmbeddedConfig attaches embedded configuration to the graph; nil
// removes it.
func (g *Graph) SetEmbeddedConfig(ec *EmbeddedConfig) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.embedded = ec
}

// BikeStations returns the bike-share availability store, creating it when
// create is true.
func (g *Graph) BikeStations(create bool) *BikeStationStore {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.bikeStations == nil && create {
		g.bikeStations = &BikeStationStore{}
	}
	return g.bikeStations
}

// SetBikeStations registers the bike-share store; nil removes it.
func (g *Graph) SetBikeStations(s *BikeStationStore) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.bikeStations = s
}

// Delays returns the stop-time delay store, creating it when create is true.
func (g *Graph) Delays(create bool) *DelayStore {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.delays == nil && create {
		g.delays = &DelayStore{}
	}
	return g.delays
}

// SetDelays registers the delay store; nil removes it.
func (g *Graph) SetDelays(s *DelayStore) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.delays = s
}

// Alerts returns the service alert store, creating it when create is true.
func (g *Graph) Alerts(create bool) *AlertStore {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.alerts == nil && create {
		g.alerts = &AlertStore{}
	}
	return g.alerts
}

// SetAlerts registers the alert store; nil removes it.
func (g *Graph) SetAlerts(s *AlertStore) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.alerts = s
}
