// Package prefs provides the read-only hierarchical configuration sources
// consumed by the decoration pass.
//
// A Source is a tree of named sections. Each section carries string-valued
// keys (a "type" key selects the updater factory) and may contain further
// sub-sections. Sources are snapshots: once constructed they never change,
// which keeps a decoration pass deterministic with respect to its inputs.
//
// Concrete sources:
//   - MapSource: wraps a decoded map tree (JSON, YAML, TOML)
//   - FromProperties: builds a tree from flat dotted properties, the format
//     used by embedded graph configuration
//   - LoadFile: reads a configuration file, dispatching on extension
//   - KVSource: snapshots a NATS JetStream KeyValue bucket where each key
//     holds one JSON-encoded section
package prefs
