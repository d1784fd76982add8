package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl        string `json:"base_url"`
	MaxConcurrency int    `json:"max_concurrency"`
	Policy         string `json:"policy"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	err := os.WriteFile(path, []byte(contents), 0600)
	require.NoError(t, err)
}

func TestSplitExt(t *testing.T) {
	table := []struct {
		input  string
		prefix string
		ext    string
	}{
		{input: "billstatus.json5", prefix: "billstatus", ext: "json5"},
		{input: "a.b.json", prefix: "a.b", ext: "json"},
		{input: "noext", prefix: "noext", ext: ""},
	}
	for _, row := range table {
		prefix, ext := splitExt(row.input)
		require.Equal(t, row.prefix, prefix)
		require.Equal(t, row.ext, ext)
	}
}

func TestReadConfigMergesLocalOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "billstatus.json5"), `{
		// comments are allowed in json5
		base_url: "https://www.govinfo.gov",
		max_concurrency: 4,
		policy: "fail_fast",
	}`)
	writeFile(t, filepath.Join(dir, "billstatus.local.json5"), `{policy: "best_effort"}`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "billstatus.json5"))
	require.NoError(t, err)
	require.Equal(t, testConfig{
		BaseUrl:        "https://www.govinfo.gov",
		MaxConcurrency: 4,
		Policy:         "best_effort",
	}, cfg)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "billstatus.json5"))
	require.True(t, os.IsNotExist(err))
}

func TestReadRecursively(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0777))
	writeFile(t, filepath.Join(root, "billstatus.json5"), `{max_concurrency: 8}`)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := ReadRecursively[testConfig]("billstatus.json5")
	require.NoError(t, err)
	require.Equal(t, 8, cfg.MaxConcurrency)
}
