package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/strict-types/strict-encoding-sub000/internal/testutil/testlog"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(args, &out)
	return out.String(), err
}

func TestEncodeHex(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		kind, value, want string
	}{
		{"u16", "258", "0201"},
		{"i8", "-1", "ff"},
		{"u32", "0xCAFE", "feca0000"},
		{"bool", "true", "01"},
		{"string", "hi", "0200006869"},
		{"bytes", "abcd", "020000abcd"},
	}
	for _, tc := range cases {
		out, err := runCmd(t, "encode", "--kind", tc.kind, "--", tc.value)
		require.NoError(t, err, tc.kind)
		require.Equal(t, tc.want+"\n", out, tc.kind)
	}

	out, err := runCmd(t, "encode", "-k", "i64", "--", "-0x10")
	require.NoError(t, err)
	require.Equal(t, "f0ffffffffffffff\n", out)

	_, err = runCmd(t, "encode", "--kind", "u8", "256")
	require.Error(t, err)
	_, err = runCmd(t, "encode", "--kind", "f16", "1")
	require.ErrorIs(t, err, errUsage)
}

func TestContainerCommands(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "flag.sten")
	_, err := runCmd(t, "encode", "--kind", "bool", "-o", path, "true")
	require.NoError(t, err)

	out, err := runCmd(t, "inspect", path)
	require.NoError(t, err)
	require.Contains(t, out, "type:     StdLib.Bool\n")
	require.Contains(t, out, "payload:  1 bytes\n")
	require.Contains(t, out, "known:    StdLib.Bool\n")

	out, err = runCmd(t, "verify", path)
	require.NoError(t, err)
	require.Equal(t, "ok StdLib.Bool\n", out)

	out, err = runCmd(t, "dump", path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "00000000  01"), out)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	raw[len(raw)-1] = 0x00
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	_, err = runCmd(t, "verify", path)
	require.Error(t, err)
}

func TestVerifyUnnamed(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "n.sten")
	_, err := runCmd(t, "encode", "--kind", "u64", "-o", path, "9")
	require.NoError(t, err)

	out, err := runCmd(t, "verify", path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "ok (unnamed "), out)
}

func TestTypesYAML(t *testing.T) {
	testlog.Start(t)
	out, err := runCmd(t, "types", "--format", "yaml")
	require.NoError(t, err)
	require.Contains(t, out, "StdLib")
	require.Contains(t, out, "Bool")

	cbor, err := runCmd(t, "types", "-f", "cbor")
	require.NoError(t, err)
	require.NotEmpty(t, cbor)
}

func TestConfigFlag(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "stenc.toml")
	require.NoError(t, os.WriteFile(path, []byte("max_seal = 1\n"), 0o600))

	_, err := runCmd(t, "--config", path, "encode", "--kind", "u16", "1")
	require.Error(t, err)
	out, err := runCmd(t, "-c", path, "encode", "--kind", "u8", "1")
	require.NoError(t, err)
	require.Equal(t, "01\n", out)
}

func TestUsageErrors(t *testing.T) {
	testlog.Start(t)
	_, err := runCmd(t)
	require.ErrorIs(t, err, errUsage)
	_, err = runCmd(t, "frobnicate")
	require.ErrorIs(t, err, errUsage)
	_, err = runCmd(t, "inspect")
	require.ErrorIs(t, err, errUsage)
}
