package dice

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"sol-dice-bet-service/dice/store"
)

const genesisSeed = "genesis"

var ErrGenesisApplied = errors.New("genesis already applied")

// Allocation credits an account with lamports at genesis.
type Allocation struct {
	Address  solana.PublicKey
	Lamports uint64
}

type depositor interface {
	Deposit(txn store.Txn, addr solana.PublicKey, amount uint64) error
}

// ApplyGenesis credits player accounts and house vaults in one transaction.
// Vault allocations name the house; the vault address is derived from it.
// Genesis runs once per store: a marker account records that it ran.
func (p *Program) ApplyGenesis(ctx context.Context, accounts, vaults []Allocation) error {
	d, ok := p.ledger.(depositor)
	if !ok {
		return errors.New("ledger does not support genesis deposits")
	}

	marker, _, err := p.resolver.find([]byte(genesisSeed))
	if err != nil {
		return err
	}

	credits := make([]Allocation, 0, len(accounts)+len(vaults))
	credits = append(credits, accounts...)
	for _, v := range vaults {
		vault, _, err := p.resolver.VaultAddress(v.Address)
		if err != nil {
			return err
		}
		credits = append(credits, Allocation{Address: vault, Lamports: v.Lamports})
	}

	err = p.store.Update(ctx, func(txn store.Txn) error {
		applied, err := txn.Data(marker)
		if err != nil {
			return err
		}
		if applied != nil {
			return ErrGenesisApplied
		}

		for _, c := range credits {
			if c.Lamports == 0 {
				continue
			}
			if err := d.Deposit(txn, c.Address, c.Lamports); err != nil {
				return errors.Wrapf(err, "genesis credit to %s", c.Address)
			}
		}
		txn.SetData(marker, []byte{1})
		return nil
	})
	if err != nil {
		return err
	}

	for _, c := range credits {
		p.log.WithFields(log.Fields{
			"address":  c.Address,
			"lamports": c.Lamports,
			"sol":      FormatSOL(c.Lamports),
		}).Info("genesis credit")
	}
	return nil
}
