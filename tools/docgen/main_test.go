package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/auction-monitor/cmd/auction-monitor/cmd"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		format string
		file   string
	}{
		{format: "markdown", file: "auction-monitor_run.md"},
		{format: "man", file: "auction-monitor-watch.1"},
		{format: "rest", file: "auction-monitor_summary.rst"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			dir := t.TempDir()
			root := cmd.Root()
			root.DisableAutoGenTag = true

			require.NoError(t, generate(root, tt.format, dir))

			_, err := os.Stat(filepath.Join(dir, tt.file))
			assert.NoError(t, err)
		})
	}
}

func TestGenerate_UnknownFormat(t *testing.T) {
	err := generate(cmd.Root(), "pdf", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "pdf"`)
}
