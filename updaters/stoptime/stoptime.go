// Package stoptime fetches realtime trip delay feeds on a schedule and
// applies them to the graph's delay store.
//
// Section keys:
//
//	type      "stop-time-updater"
//	url       feed endpoint returning {"updates": [...]} (required)
//	feed_id   identifier used in the task name (default "default")
//	frequency poll interval (default 30s)
package stoptime

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

const defaultFrequency = 30 * time.Second

// Updater is the stop-time activation unit.
type Updater struct {
	url       string
	feedID    string
	frequency time.Duration
	client    *http.Client
}

// New creates an unconfigured stop-time updater.
func New() updater.Configurable {
	return &Updater{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type delayFeed struct {
	Updates []graph.StopTimeUpdate `json:"updates"`
}

// Configure validates the section, registers the delay store and schedules
// the fetch task.
func (u *Updater) Configure(_ context.Context, g *graph.Graph, cfg prefs.Source) error {
	u.url = cfg.Get("url", "")
	if u.url == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "StopTime", "Configure", "url validation")
	}
	u.feedID = cfg.Get("feed_id", "default")
	u.frequency = prefs.Duration(cfg, "frequency", defaultFrequency)

	store := g.Delays(true)
	task := func(ctx context.Context) error {
		return u.fetch(ctx, store)
	}
	return g.PeriodicUpdater(true).Schedule("stop-time-"+u.feedID, u.frequency, task)
}

func (u *Updater) fetch(ctx context.Context, store *graph.DelayStore) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.url, nil)
	if err != nil {
		return errors.WrapInvalid(err, "StopTime", "fetch", "build feed request")
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return errors.WrapTransient(err, "StopTime", "fetch", "fetch delay feed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errors.WrapTransient(
			fmt.Errorf("feed returned status %d", resp.StatusCode),
			"StopTime", "fetch", "fetch delay feed")
	}

	var feed delayFeed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return errors.WrapInvalid(err, "StopTime", "fetch", "decode delay feed")
	}

	store.Apply(feed.Updates)
	return nil
}
