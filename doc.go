// Package graphdeco decorates a loaded transit graph with live subsystems
// discovered from declarative configuration.
//
// # How decoration works
//
// A host loads a graph and calls the decorator with a primary configuration
// source. The decorator enumerates named sections across an ordered source
// list (the primary source first, then configuration embedded in the graph,
// if any), maps each section's "type" key to a registered updater factory,
// and configures one fresh activation unit per section against the graph.
//
// Precedence between sources is first-seen-wins per section name: the
// earliest source defining a name owns it outright, later definitions are
// ignored, never merged. Failures configuring one unit are contained and
// recorded; only an unreadable backing store aborts a pass.
//
// # Packages
//
//   - prefs: configuration sources (map trees, properties, files, NATS KV)
//   - updater: the activation unit contract and the type registry
//   - graph: the shared runtime context and its optional services
//   - timer: the periodic updater tasks are scheduled into
//   - decorate: the decoration pass and shutdown sequencing
//   - updaters/...: the built-in activation units
//   - updaterregistry: central wiring of the built-in units
//
// The cmd/graphdeco binary ties these together for standalone use; hosts
// embedding the module use decorate.Decorator directly.
package graphdeco
