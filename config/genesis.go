package config

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"sol-dice-bet-service/dice"
)

type GenesisAccount struct {
	Address  string `mapstructure:"address"`
	Lamports uint64 `mapstructure:"lamports"`
}

type GenesisVault struct {
	House    string `mapstructure:"house"`
	Lamports uint64 `mapstructure:"lamports"`
}

// Genesis lists the balances credited when the service boots on empty state.
type Genesis struct {
	Accounts []GenesisAccount `mapstructure:"accounts"`
	Vaults   []GenesisVault   `mapstructure:"vaults"`
}

// LoadGenesis reads a genesis file. The format follows the file extension
// (yaml, toml or json).
func LoadGenesis(path string) (*Genesis, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read genesis file %s", path)
	}

	g := &Genesis{}
	if err := v.Unmarshal(g); err != nil {
		return nil, errors.Wrapf(err, "failed to decode genesis file %s", path)
	}
	return g, nil
}

// Allocations converts the genesis entries into program allocations.
func (g *Genesis) Allocations() (accounts, vaults []dice.Allocation, err error) {
	for _, a := range g.Accounts {
		addr, err := solana.PublicKeyFromBase58(a.Address)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "genesis account %q", a.Address)
		}
		accounts = append(accounts, dice.Allocation{Address: addr, Lamports: a.Lamports})
	}
	for _, v := range g.Vaults {
		house, err := solana.PublicKeyFromBase58(v.House)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "genesis vault house %q", v.House)
		}
		vaults = append(vaults, dice.Allocation{Address: house, Lamports: v.Lamports})
	}
	return accounts, vaults, nil
}
