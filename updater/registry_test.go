package updater

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/graphdeco/graph"
	"github.com/c360/graphdeco/prefs"
)

type nopUnit struct{ id string }

func (n *nopUnit) Configure(context.Context, *graph.Graph, prefs.Source) error { return nil }

func TestRegisterAndResolve(t *testing.T) {
	r := NewRegistry()
	r.Register("bike-rental", func() Configurable { return &nopUnit{id: "bikes"} })

	factory, ok := r.Resolve("bike-rental")
	require.True(t, ok)
	require.NotNil(t, factory)

	unit := factory()
	assert.Equal(t, "bikes", unit.(*nopUnit).id)
}

func TestResolveUnknownType(t *testing.T) {
	r := NewRegistry()

	factory, ok := r.Resolve("no-such-type")
	assert.False(t, ok)
	assert.Nil(t, factory)
}

func TestRegisterLastWins(t *testing.T) {
	r := NewRegistry()
	r.Register("bike-rental", func() Configurable { return &nopUnit{id: "old"} })
	r.Register("bike-rental", func() Configurable { return &nopUnit{id: "new"} })

	factory, ok := r.Resolve("bike-rental")
	require.True(t, ok)
	assert.Equal(t, "new", factory().(*nopUnit).id)
	assert.Equal(t, []string{"bike-rental"}, r.Types())
}

func TestRegisterIgnoresInvalid(t *testing.T) {
	r := NewRegistry()
	r.Register("", func() Configurable { return &nopUnit{} })
	r.Register("bike-rental", nil)

	assert.Empty(t, r.Types())
}

func TestTypesSorted(t *testing.T) {
	r := NewRegistry()
	r.Register("stop-time-updater", func() Configurable { return &nopUnit{} })
	r.Register("bike-rental", func() Configurable { return &nopUnit{} })
	r.Register("real-time-alerts", func() Configurable { return &nopUnit{} })

	assert.Equal(t, []string{"bike-rental", "real-time-alerts", "stop-time-updater"}, r.Types())
}
