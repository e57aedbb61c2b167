package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/strict-types/strict-encoding-sub000/internal/testutil/testlog"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stenc.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadOverlaysDefinedKeys(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, "max_payload = 4096\nlog_level = \"debug\"\noutput_format = \"CBOR\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, uint64(4096), cfg.Limits.MaxPayload)
	require.Equal(t, Default().Limits.MaxSeal, cfg.Limits.MaxSeal)
	require.Equal(t, zerolog.DebugLevel, cfg.Log.Level)
	require.Equal(t, "cbor", cfg.Output.Format)
}

func TestLoadTemplate(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "stenc.toml")
	require.NoError(t, WriteTemplate(path, false))
	require.Error(t, WriteTemplate(path, false))
	require.NoError(t, WriteTemplate(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadRejects(t *testing.T) {
	testlog.Start(t)
	cases := map[string]string{
		"unknown key":  "max_payloads = 1\n",
		"zero payload": "max_payload = 0\n",
		"bad level":    "log_level = \"loud\"\n",
		"bad format":   "output_format = \"json\"\n",
		"bad syntax":   "max_payload = \n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	testlog.Start(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestLoggingConfig(t *testing.T) {
	testlog.Start(t)
	t.Setenv("STENC_LOG_LEVEL", "")
	cfg := Default()
	cfg.Log.Level = zerolog.WarnLevel
	cfg.Log.NoColor = true

	lc := cfg.Logging()
	require.Equal(t, zerolog.WarnLevel, lc.Level)
	require.True(t, lc.NoColor)
}
