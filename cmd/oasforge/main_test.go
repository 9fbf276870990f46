package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleConvert_CrossVersion(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "schema.json")
	out := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"type":"string","nullable":true}`), 0o644))

	err := handleConvert([]string{"-s", "3.0.3", "-t", "3.1.0", "-o", out, in})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"null"`)
	assert.NotContains(t, string(data), "nullable")
}

func TestHandleConvert_BadVersion(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "schema.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"type":"string"}`), 0o644))

	err := handleConvert([]string{"-t", "9.9", in})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "9.9")
}

func TestHandleConvert_MissingArg(t *testing.T) {
	err := handleConvert([]string{"-t", "3.1.0"})
	assert.Error(t, err)
}

func TestHandleRules_BadVersion(t *testing.T) {
	err := handleRules([]string{"-t", "1.0", "required|string"})
	assert.Error(t, err)
}

func TestHandleScan_BadVersion(t *testing.T) {
	err := handleScan([]string{"-t", "bogus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestHandleScan_Synthesizes(t *testing.T) {
	dir := t.TempDir()
	src := `package models

type Widget struct {
	Name  string ` + "`json:\"name\" validate:\"required\"`" + `
	Count *int   ` + "`json:\"count,omitempty\"`" + `
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module scanwidgets\n\ngo 1.24\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "models.go"), []byte(src), 0o644))
	out := filepath.Join(dir, "components.json")

	err := handleScan([]string{"-d", dir, "-t", "3.0.3", "-o", out})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ModelsWidget"`)
	assert.Contains(t, string(data), `"nullable": true`)
	assert.Contains(t, string(data), `"openapi": "3.0.3"`)
}
