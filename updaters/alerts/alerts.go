// Package alerts ingests service alerts from a streaming WebSocket feed
// into the graph's alert store.
//
// Section keys:
//
//	type "real-time-alerts"
//	url  WebSocket endpoint (ws:// or wss://) emitting alert messages
//	     (required)
//
// Each feed message is a JSON object {"action": "put"|"remove",
// "alert": {...}}. The connection lives until graph shutdown; the unit
// registers a shutdown hook that closes it.
package alerts

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/c360/graphdeco/errors"
	"github.com/c360/graphdeco/graph"
	"github.com/c360/graphdeco/prefs"
	"github.com/c360/graphdeco/updater"
)

// Updater is the real-time alert activation unit.
type Updater struct {
	url    string
	logger *slog.Logger
}

// New creates an unconfigured alert updater.
func New() updater.Configurable {
	return &Updater{logger: slog.Default()}
}

type alertMessage struct {
	Action string      `json:"action"`
	Alert  graph.Alert `json:"alert"`
}

// Configure connects to the feed, starts the reader goroutine and registers
// the cleanup hook. A feed that cannot be reached fails configuration; the
// decoration pass contains the failure and moves on.
func (u *Updater) Configure(ctx context.Context, g *graph.Graph, cfg prefs.Source) error {
	u.url = cfg.Get("url", "")
	if u.url == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "Alerts", "Configure", "url validation")
	}
	if !strings.HasPrefix(u.url, "ws://") && !strings.HasPrefix(u.url, "wss://") {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Alerts", "Configure", "websocket url validation")
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return errors.WrapTransient(err, "Alerts", "Configure", "dial alert feed")
	}

	store := g.Alerts(true)
	go u.readLoop(conn, store)

	if hooks := graph.Hooks(g); hooks != nil {
		hooks.Add(func(*graph.Graph) { _ = conn.Close() })
	} else {
		u.logger.Warn("Graph has a foreign shutdown coordinator, alert feed will not be closed on shutdown")
	}
	return nil
}

// readLoop consumes feed messages until the connection closes.
// TODO: reconnect with backoff when the feed drops instead of staying down
// until the next graph load.
func (u *Updater) readLoop(conn *websocket.Conn, store *graph.AlertStore) {
	for {
		var msg alertMessage
		if err := conn.ReadJSON(&msg); err != nil {
			u.logger.Info("Alert feed closed", "url", u.url, "reason", err)
			return
		}

		switch msg.Action {
		case "remove":
			store.Remove(msg.Alert.ID)
		case "put", "":
			if msg.Alert.ID == "" {
				u.logger.Warn("Dropping alert without id", "url", u.url)
				continue
			}
			store.Put(msg.Alert)
		default:
			u.logger.Warn("Unknown alert feed action", "action", msg.Action)
		}
	}
}
