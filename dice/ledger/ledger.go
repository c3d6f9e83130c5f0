// Package ledger moves lamports between accounts held in a store.Txn.
package ledger

import (
	"math"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"sol-dice-bet-service/dice/store"
)

var (
	ErrInsufficientFunds = errors.New("ledger: insufficient funds")
	ErrSameAccount       = errors.New("ledger: source and destination are the same account")
	ErrOverflow          = errors.New("ledger: balance overflow")
	ErrZeroAmount        = errors.New("ledger: amount must be positive")
)

// System is the native lamport ledger.
type System struct{}

func (System) Balance(txn store.Txn, addr solana.PublicKey) (uint64, error) {
	return txn.Lamports(addr)
}

// Transfer debits from and credits to by amount. It either updates both
// balances or neither.
func (System) Transfer(txn store.Txn, from, to solana.PublicKey, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}
	if from.Equals(to) {
		return ErrSameAccount
	}

	fromBalance, err := txn.Lamports(from)
	if err != nil {
		return errors.Wrapf(err, "failed to load %s", from)
	}
	toBalance, err := txn.Lamports(to)
	if err != nil {
		return errors.Wrapf(err, "failed to load %s", to)
	}

	if fromBalance < amount {
		return errors.Wrapf(ErrInsufficientFunds, "%s holds %d, needs %d", from, fromBalance, amount)
	}
	if toBalance > math.MaxUint64-amount {
		return errors.Wrapf(ErrOverflow, "crediting %d to %s", amount, to)
	}

	txn.SetLamports(from, fromBalance-amount)
	txn.SetLamports(to, toBalance+amount)
	return nil
}

// Deposit credits addr with freshly minted lamports. Only genesis uses it.
func (System) Deposit(txn store.Txn, addr solana.PublicKey, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}

	balance, err := txn.Lamports(addr)
	if err != nil {
		return errors.Wrapf(err, "failed to load %s", addr)
	}
	if balance > math.MaxUint64-amount {
		return errors.Wrapf(ErrOverflow, "depositing %d to %s", amount, addr)
	}

	txn.SetLamports(addr, balance+amount)
	return nil
}
