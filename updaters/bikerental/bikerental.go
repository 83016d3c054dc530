// Package bikerental polls a bike-share availability feed and keeps the
// graph's bike station store current.
//
// Section keys:
//
//	type      "bike-rental"
//	url       feed endpoint returning {"stations": [...]} (required)
//	network   station namespace in the store (default "default")
//	frequency poll interval (default 60s)
package bikerental

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/c360/graphdeco/errors"
	"github.com/c360/graphdeco/graph"
	"github.com/c360/graphdeco/prefs"
	"github.com/c360/graphdeco/updater"
)

const defaultFrequency = 60 * time.Second

// Updater is the bike-rental activation unit.
type Updater struct {
	url       string
	network   string
	frequency time.Duration
	client    *http.Client
}

// New creates an unconfigured bike-rental updater.
func New() updater.Configurable {
	return &Updater{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type stationFeed struct {
	Stations []graph.BikeStation `json:"stations"`
}

// Configure validates the section, registers the station store and
// schedules the poll task. The first poll happens on the updater's
// schedule, not inside Configure.
func (u *Updater) Configure(_ context.Context, g *graph.Graph, cfg prefs.Source) error {
	u.url = cfg.Get("url", "")
	if u.url == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "BikeRental", "Configure", "url validation")
	}
	u.network = cfg.Get("network", "default")
	u.frequency = prefs.Duration(cfg, "frequency", defaultFrequency)

	store := g.BikeStations(true)
	task := func(ctx context.Context) error {
		return u.poll(ctx, store)
	}
	return g.PeriodicUpdater(true).Schedule("bike-rental-"+u.network, u.frequency, task)
}

func (u *Updater) poll(ctx context.Context, store *graph.BikeStationStore) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.url, nil)
	if err != nil {
		return errors.WrapInvalid(err, "BikeRental", "poll", "build feed request")
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return errors.WrapTransient(err, "BikeRental", "poll", "fetch station feed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errors.WrapTransient(
			fmt.Errorf("feed returned status %d", resp.StatusCode),
			"BikeRental", "poll", "fetch station feed")
	}

	var feed stationFeed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return errors.WrapInvalid(err, "BikeRental", "poll", "decode station feed")
	}

	store.Replace(u.network, feed.Stations)
	return nil
}
