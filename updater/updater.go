// Package updater defines the activation unit contract and the registry
// mapping configuration type discriminators to updater factories.
package updater

import (
	"context"

	"github.com/c360/graphdeco/graph"
	"github.com/c360/graphdeco/prefs"
)

// Configurable is an activation unit: a component instantiated from one
// configuration section and wired into the graph. Configure may register
// periodic tasks, add shutdown hooks, open connections or start background
// work; whatever it registers into the graph owns its lifetime afterwards.
//
// The decorator imposes no timeout on Configure: a hanging unit blocks the
// whole decoration pass. Known limitation, kept deliberately.
type Configurable interface {
	Configure(ctx context.Context, g *graph.Graph, config prefs.Source) error
}

// Factory produces one fresh activation unit. Factories must be cheap and
// side-effect free; all I/O belongs in Configure.
type Factory func() Configurable
