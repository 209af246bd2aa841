package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// testIDL is a trimmed Raydium AMM V4 IDL: the six table instructions plus
// one that is not in the table.
const testIDL = `{
  "version": "0.3.0",
  "name": "raydium_amm",
  "instructions": [
    {"name": "initialize2", "accounts": [], "args": [{"name": "nonce", "type": "u8"}]},
    {"name": "deposit", "accounts": [], "args": []},
    {"name": "withdraw", "accounts": [], "args": []},
    {"name": "withdrawPnl", "accounts": [], "args": []},
    {"name": "swapBaseIn", "accounts": [], "args": []},
    {"name": "swapBaseOut", "accounts": [], "args": []},
    {"name": "setParams", "accounts": [], "args": []}
  ],
  "metadata": {"address": "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8"}
}`

// writeIDL writes content to raydium_amm_v4.json in a temp dir.
func writeIDL(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "raydium_amm_v4.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
