package dice

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKey(t *testing.T) solana.PrivateKey {
	t.Helper()
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	return key
}

func TestVaultAddress(t *testing.T) {
	r := NewResolver(DefaultProgramID)
	assert.Equal(t, DefaultProgramID, r.ProgramID())
	house := newKey(t).PublicKey()

	vault, bump, err := r.VaultAddress(house)
	require.NoError(t, err)

	expected, expectedBump, err := solana.FindProgramAddress([][]byte{[]byte("vault"), house.Bytes()}, DefaultProgramID)
	require.NoError(t, err)
	assert.Equal(t, expected, vault)
	assert.Equal(t, expectedBump, bump)
}

func TestBetAddress(t *testing.T) {
	r := NewResolver(DefaultProgramID)
	vault, _, err := r.VaultAddress(newKey(t).PublicKey())
	require.NoError(t, err)

	t.Run("matches raw seeds", func(t *testing.T) {
		seed := NewSeed(24525)
		addr, bump, err := r.BetAddress(vault, seed)
		require.NoError(t, err)

		le := make([]byte, 16)
		le[0], le[1] = 0xcd, 0x5f // 24525 little-endian
		expected, expectedBump, err := solana.FindProgramAddress([][]byte{[]byte("bet"), vault.Bytes(), le}, DefaultProgramID)
		require.NoError(t, err)
		assert.Equal(t, expected, addr)
		assert.Equal(t, expectedBump, bump)
	})

	t.Run("deterministic", func(t *testing.T) {
		a1, b1, err := r.BetAddress(vault, NewSeed(42))
		require.NoError(t, err)
		a2, b2, err := r.BetAddress(vault, NewSeed(42))
		require.NoError(t, err)
		assert.Equal(t, a1, a2)
		assert.Equal(t, b1, b2)
	})

	t.Run("distinct seeds give distinct addresses", func(t *testing.T) {
		a1, _, err := r.BetAddress(vault, NewSeed(1))
		require.NoError(t, err)
		a2, _, err := r.BetAddress(vault, Seed{Hi: 1})
		require.NoError(t, err)
		assert.NotEqual(t, a1, a2)
	})

	t.Run("depends on the program", func(t *testing.T) {
		other := NewResolver(newKey(t).PublicKey())
		a1, _, err := r.BetAddress(vault, NewSeed(42))
		require.NoError(t, err)
		a2, _, err := other.BetAddress(vault, NewSeed(42))
		require.NoError(t, err)
		assert.NotEqual(t, a1, a2)
	})
}

func TestAddressDerivationFailed(t *testing.T) {
	r := NewResolver(DefaultProgramID)

	// a single seed longer than 32 bytes is rejected by the address scheme
	_, _, err := r.find(make([]byte, 33))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAddressDerivationFailed)

	var de *Error
	require.ErrorAs(t, err, &de)
	assert.False(t, de.Validation())
}
