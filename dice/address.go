package dice

import (
	"github.com/gagliardetto/solana-go"
)

const (
	VaultSeed = "vault"
	BetSeed   = "bet"
)

// DefaultProgramID is the address the dice program is deployed at unless
// configured otherwise.
var DefaultProgramID = solana.MustPublicKeyFromBase58("Fg6PaFpoGXkYsidMpWTK6W2BeZ7FEfcYkg476zPFsLnS")

// Resolver derives program addresses for vaults and bets.
type Resolver struct {
	programID solana.PublicKey
}

func NewResolver(programID solana.PublicKey) *Resolver {
	return &Resolver{programID: programID}
}

func (r *Resolver) ProgramID() solana.PublicKey {
	return r.programID
}

// VaultAddress derives the escrow account of house.
func (r *Resolver) VaultAddress(house solana.PublicKey) (solana.PublicKey, uint8, error) {
	return r.find([]byte(VaultSeed), house.Bytes())
}

// BetAddress derives the address of the bet placed against vault with seed.
func (r *Resolver) BetAddress(vault solana.PublicKey, seed Seed) (solana.PublicKey, uint8, error) {
	return r.find([]byte(BetSeed), vault.Bytes(), seed.Bytes())
}

func (r *Resolver) find(seeds ...[]byte) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(seeds, r.programID)
	if err != nil {
		return solana.PublicKey{}, 0, ErrAddressDerivationFailed.Wrap(err)
	}
	return addr, bump, nil
}
