package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
citybikes:
  type: bike-rental
  url: https://bikes.example/stations
mystery:
  type: unknown-x
bare:
  url: https://example
`), 0o600))

	var out bytes.Buffer
	validateCmd.SetOut(&out)
	validateConfigPath = path

	require.NoError(t, runValidate(validateCmd, nil))

	output := out.String()
	assert.Contains(t, output, "bike-rental")
	assert.Contains(t, output, `unknown type "unknown-x"`)
	assert.Contains(t, output, "no type key")
	assert.Contains(t, output, "3 section(s), 2 will be skipped")
}

func TestRunValidateMissingFile(t *testing.T) {
	validateConfigPath = filepath.Join(t.TempDir(), "absent.yaml")
	require.Error(t, runValidate(validateCmd, nil))
}
