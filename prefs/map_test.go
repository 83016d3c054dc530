package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSourceChildNames(t *testing.T) {
	src := NewMapSource(map[string]any{
		"citybikes": map[string]any{"type": "bike-rental"},
		"alerts":    map[string]any{"type": "real-time-alerts"},
		"loglevel":  "debug", // scalar, not a section
	})

	names, err := src.ChildNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"alerts", "citybikes"}, names)
}

func TestMapSourceSection(t *testing.T) {
	src := NewMapSource(map[string]any{
		"citybikes": map[string]any{"type": "bike-rental", "url": "https://bikes.example"},
	})

	section := src.Section("citybikes")
	assert.Equal(t, "bike-rental", section.Get("type", ""))
	assert.Equal(t, "https://bikes.example", section.Get("url", ""))

	// Missing sections are empty, not nil
	missing := src.Section("nope")
	require.NotNil(t, missing)
	names, err := missing.ChildNames()
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.Equal(t, "fallback", missing.Get("type", "fallback"))
}

func TestMapSourceGetCoercion(t *testing.T) {
	src := NewMapSource(map[string]any{
		"str":     "hello",
		"bool":    true,
		"int":     42,
		"int64":   int64(7),
		"float":   float64(30), // JSON numbers decode as float64
		"frac":    1.5,
		"section": map[string]any{"k": "v"},
	})

	assert.Equal(t, "hello", src.Get("str", ""))
	assert.Equal(t, "true", src.Get("bool", ""))
	assert.Equal(t, "42", src.Get("int", ""))
	assert.Equal(t, "7", src.Get("int64", ""))
	assert.Equal(t, "30", src.Get("float", ""))
	assert.Equal(t, "1.5", src.Get("frac", ""))
	assert.Equal(t, "def", src.Get("missing", "def"))
	assert.Equal(t, "def", src.Get("section", "def"))
}

func TestEmptySource(t *testing.T) {
	src := Empty()
	names, err := src.ChildNames()
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.Equal(t, "d", src.Get("anything", "d"))
}

func TestNewMapSourceNilData(t *testing.T) {
	src := NewMapSource(nil)
	names, err := src.ChildNames()
	require.NoError(t, err)
	assert.Empty(t, names)
}
