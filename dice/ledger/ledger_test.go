package ledger

import (
	"context"
	"math"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sol-dice-bet-service/dice/store"
)

func newAddr(t *testing.T) solana.PublicKey {
	t.Helper()
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	return key.PublicKey()
}

func balances(t *testing.T, s store.Store, addrs ...solana.PublicKey) []uint64 {
	t.Helper()
	out := make([]uint64, len(addrs))
	err := s.View(context.Background(), func(txn store.Txn) error {
		for i, a := range addrs {
			b, err := System{}.Balance(txn, a)
			if err != nil {
				return err
			}
			out[i] = b
		}
		return nil
	})
	require.NoError(t, err)
	return out
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()
	from, to := newAddr(t), newAddr(t)

	tests := []struct {
		name     string
		from     solana.PublicKey
		to       solana.PublicKey
		amount   uint64
		toStart  uint64
		wantErr  error
		wantFrom uint64
		wantTo   uint64
	}{
		{name: "moves funds", from: from, to: to, amount: 1000, wantFrom: 1000, wantTo: 1000},
		{name: "whole balance", from: from, to: to, amount: 2000, wantFrom: 0, wantTo: 2000},
		{name: "insufficient", from: from, to: to, amount: 2001, wantErr: ErrInsufficientFunds, wantFrom: 2000},
		{name: "zero amount", from: from, to: to, amount: 0, wantErr: ErrZeroAmount, wantFrom: 2000},
		{name: "same account", from: from, to: from, amount: 1, wantErr: ErrSameAccount, wantFrom: 2000},
		{name: "overflow", from: from, to: to, amount: 1, toStart: math.MaxUint64, wantErr: ErrOverflow, wantFrom: 2000, wantTo: math.MaxUint64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.NewMemoryStore()
			defer s.Close()

			require.NoError(t, s.Update(ctx, func(txn store.Txn) error {
				txn.SetLamports(from, 2000)
				if tt.toStart > 0 {
					txn.SetLamports(to, tt.toStart)
				}
				return nil
			}))

			err := s.Update(ctx, func(txn store.Txn) error {
				return System{}.Transfer(txn, tt.from, tt.to, tt.amount)
			})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			got := balances(t, s, from, to)
			assert.Equal(t, tt.wantFrom, got[0])
			assert.Equal(t, tt.wantTo, got[1])
		})
	}
}

func TestDeposit(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	defer s.Close()
	addr := newAddr(t)

	require.NoError(t, s.Update(ctx, func(txn store.Txn) error {
		if err := (System{}).Deposit(txn, addr, 300); err != nil {
			return err
		}
		return System{}.Deposit(txn, addr, 200)
	}))
	assert.Equal(t, []uint64{500}, balances(t, s, addr))

	err := s.Update(ctx, func(txn store.Txn) error {
		return System{}.Deposit(txn, addr, math.MaxUint64)
	})
	assert.ErrorIs(t, err, ErrOverflow)
	assert.Equal(t, []uint64{500}, balances(t, s, addr))
}
