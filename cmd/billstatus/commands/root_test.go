package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"govinfo-billstatus/internal/scrapers/govinfo"

	"github.com/stretchr/testify/require"
)

func runWithArgs(t *testing.T, args ...string) error {
	cfgPath := filepath.Join(t.TempDir(), "billstatus.json5")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{}`), 0600))

	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
	})
	return execute(context.Background())
}

func TestExecuteFlushesTelemetryOnFailure(t *testing.T) {
	flushed := 0
	otelShutdown = func(context.Context) error {
		flushed++
		return nil
	}
	t.Cleanup(func() {
		otelShutdown = nil
	})

	// no bill type token, fails before any request is made
	err := runWithArgs(t, "status", "113xyz1")

	var parseErr *govinfo.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, 1, flushed)
	require.Nil(t, otelShutdown)
}

func TestShutdownTelemetryWithoutSetup(t *testing.T) {
	otelShutdown = nil
	require.NotPanics(t, shutdownTelemetry)
}
