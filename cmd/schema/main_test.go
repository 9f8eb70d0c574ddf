package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, generate(out))

	data, err := os.ReadFile(out) //nolint:gosec // test-controlled path
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Contains(t, string(data), `"source"`)
	assert.Contains(t, string(data), `"monitor"`)
}

func TestGenerate_BadPath(t *testing.T) {
	err := generate(filepath.Join(t.TempDir(), "no-such-dir", "schema.json"))
	require.Error(t, err)
}
