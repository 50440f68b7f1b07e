package configloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
server:
  port: ":9090"
logging:
  level: debug
rpc:
  url: https://rpc.example.com
registry:
  groupsURL: https://storage.example.com/groups.json
  tokenMetadataURL: https://storage.example.com/tokens.json
  tokenIconBaseURL: https://storage.example.com/icons
program:
  lendingProgramID: MFv2hWf31Z9kbCa1snEPYctwafyhdvnV7FZnsebVacA
engine:
  dustThresholdUsd: "0.05"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "https://rpc.example.com", cfg.RPC.URL)
	assert.Equal(t, "0.05", cfg.Engine.DustThresholdUsd)

	// Defaults kick in for everything left unset.
	assert.Equal(t, int64(10000), cfg.RPC.RequestTimeoutMillis)
	assert.Equal(t, 10, cfg.Registry.CacheTTLMinutes)
	assert.Equal(t, 8, cfg.Engine.MaxConcurrentGroups)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("RPC_URL", "https://override.example.com")
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	assert.Equal(t, "https://override.example.com", cfg.RPC.URL)
}

func TestLoadRejectsMissingRequiredFields(t *testing.T) {
	_, err := Load(writeConfig(t, "server:\n  port: \":8080\"\n"))
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}
