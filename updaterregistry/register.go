// Package updaterregistry wires the built-in activation units into an
// updater registry. Hosts embedding graphdeco call Register once at startup
// and may add their own types afterwards.
package updaterregistry

import (
	"github.com/c360/graphdeco/updater"
	"github.com/c360/graphdeco/updaters/alerts"
	"github.com/c360/graphdeco/updaters/bikerental"
	"github.com/c360/graphdeco/updaters/stoptime"
)

// Register registers all built-in updater types:
//
//   - bike-rental: periodic bike-share availability poller
//   - stop-time-updater: scheduled trip delay feed fetcher
//   - real-time-alerts: streaming service alert ingester
func Register(registry *updater.Registry) {
	registry.Register("bike-rental", bikerental.New)
	registry.Register("stop-time-updater", stoptime.New)
	registry.Register("real-time-alerts", alerts.New)
}
