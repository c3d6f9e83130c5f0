package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setenv(t *testing.T, key, value string) {
	t.Helper()
	prev, had := os.LookupEnv(key)
	require.NoError(t, os.Setenv(key, value))
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, prev)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, ":5300", cfg.ListenAddr)
	assert.Equal(t, uint64(0), cfg.MinBet)
	assert.Equal(t, StoreMemory, cfg.StoreBackend)
	assert.Equal(t, "dice:", cfg.RedisPrefix)
	assert.False(t, cfg.VerifySignatures)

	id, err := cfg.Program()
	require.NoError(t, err)
	assert.Equal(t, "Fg6PaFpoGXkYsidMpWTK6W2BeZ7FEfcYkg476zPFsLnS", id.String())
}

func TestParseOverrides(t *testing.T) {
	setenv(t, "DICE_MIN_BET", "10000000")
	setenv(t, "STORE_BACKEND", "redis")
	setenv(t, "DICE_VERIFY_SIGNATURES", "true")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, uint64(10000000), cfg.MinBet)
	assert.Equal(t, StoreRedis, cfg.StoreBackend)
	assert.True(t, cfg.VerifySignatures)
}

func TestParseRejectsInvalid(t *testing.T) {
	t.Run("program id", func(t *testing.T) {
		setenv(t, "DICE_PROGRAM_ID", "not-base58!")
		_, err := Parse()
		assert.Error(t, err)
	})

	t.Run("store backend", func(t *testing.T) {
		setenv(t, "STORE_BACKEND", "postgres")
		_, err := Parse()
		assert.Error(t, err)
	})

	t.Run("log level", func(t *testing.T) {
		setenv(t, "LOG_LEVEL", "loud")
		_, err := Parse()
		assert.Error(t, err)
	})
}

const genesisYAML = `
accounts:
  - address: TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA
    lamports: 2000
vaults:
  - house: 9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin
    lamports: 5000
`

func TestLoadGenesis(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(genesisYAML), 0o644))

	g, err := LoadGenesis(path)
	require.NoError(t, err)
	require.Len(t, g.Accounts, 1)
	require.Len(t, g.Vaults, 1)
	assert.Equal(t, uint64(2000), g.Accounts[0].Lamports)
	assert.Equal(t, uint64(5000), g.Vaults[0].Lamports)

	accounts, vaults, err := g.Allocations()
	require.NoError(t, err)
	assert.Equal(t, "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA", accounts[0].Address.String())
	assert.Equal(t, "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin", vaults[0].Address.String())
}

func TestLoadGenesisErrors(t *testing.T) {
	_, err := LoadGenesis(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	g := &Genesis{Accounts: []GenesisAccount{{Address: "bogus", Lamports: 1}}}
	_, _, err = g.Allocations()
	assert.Error(t, err)
}
