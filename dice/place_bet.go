package dice

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"sol-dice-bet-service/dice/ledger"
	"sol-dice-bet-service/dice/store"
)

const (
	MinRoll = 2
	MaxRoll = 96

	// DefaultMinBet keeps the minimum at "strictly positive".
	DefaultMinBet uint64 = 0
)

// Ledger is the transfer primitive bets are paid through.
type Ledger interface {
	Balance(txn store.Txn, addr solana.PublicKey) (uint64, error)
	Transfer(txn store.Txn, from, to solana.PublicKey, amount uint64) error
}

// Program executes dice instructions against a store.
type Program struct {
	resolver *Resolver
	store    store.Store
	ledger   Ledger
	minBet   uint64
	log      *log.Entry
}

type Option func(*Program)

// WithMinBet sets the amount a bet must exceed.
func WithMinBet(lamports uint64) Option {
	return func(p *Program) { p.minBet = lamports }
}

func WithLedger(l Ledger) Option {
	return func(p *Program) { p.ledger = l }
}

func WithLogger(entry *log.Entry) Option {
	return func(p *Program) { p.log = entry }
}

func NewProgram(resolver *Resolver, st store.Store, opts ...Option) *Program {
	p := &Program{
		resolver: resolver,
		store:    st,
		ledger:   ledger.System{},
		minBet:   DefaultMinBet,
		log:      log.WithField("component", "dice_program"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Program) Resolver() *Resolver {
	return p.resolver
}

// BetAddress derives the vault of house and the address of the bet placed
// against it with seed.
func (p *Program) BetAddress(house solana.PublicKey, seed Seed) (vault, bet solana.PublicKey, bump uint8, err error) {
	vault, _, err = p.resolver.VaultAddress(house)
	if err != nil {
		return vault, bet, 0, err
	}
	bet, bump, err = p.resolver.BetAddress(vault, seed)
	return vault, bet, bump, err
}

// PlaceBet records a wager of args.Amount lamports by player against house
// and moves the stake into the house vault. Either the record is written and
// the funds move, or nothing changes. It returns the bet and its address.
//
// Placing a bet with a seed already in use overwrites the existing record.
// Callers pick seeds that do not collide with their open bets.
func (p *Program) PlaceBet(ctx context.Context, player, house solana.PublicKey, args PlaceBetArgs) (*Bet, solana.PublicKey, error) {
	return p.placeBet(ctx, player, house, args, nil)
}

// PlaceSignedBet is PlaceBet for a request authorized by the player's
// signature over args. Each signature places at most one bet.
func (p *Program) PlaceSignedBet(ctx context.Context, player, house solana.PublicKey, args PlaceBetArgs, sig solana.Signature) (*Bet, solana.PublicKey, error) {
	if !args.Verify(player, house, sig) {
		return nil, solana.PublicKey{}, ErrInvalidSignature
	}
	return p.placeBet(ctx, player, house, args, &sig)
}

func (p *Program) placeBet(ctx context.Context, player, house solana.PublicKey, args PlaceBetArgs, sig *solana.Signature) (*Bet, solana.PublicKey, error) {
	vault, betAddr, bump, err := p.BetAddress(house, args.Seed)
	if err != nil {
		return nil, betAddr, err
	}

	entry := p.log.WithFields(log.Fields{
		"player": player,
		"house":  house,
		"seed":   args.Seed,
		"bet":    betAddr,
	})

	var bet *Bet
	err = p.store.Update(ctx, func(txn store.Txn) error {
		if sig != nil {
			used, err := txn.SignatureUsed(*sig)
			if err != nil {
				return errors.Wrap(err, "failed to load signature")
			}
			if used {
				return ErrSignatureReplayed
			}
			txn.UseSignature(*sig)
		}

		vaultBalance, err := p.ledger.Balance(txn, vault)
		if err != nil {
			return errors.Wrap(err, "failed to load vault balance")
		}
		playerBalance, err := p.ledger.Balance(txn, player)
		if err != nil {
			return errors.Wrap(err, "failed to load player balance")
		}

		if err := p.validate(args, vaultBalance, playerBalance); err != nil {
			return err
		}

		slot, err := txn.Slot()
		if err != nil {
			return errors.Wrap(err, "failed to load clock")
		}
		slot++
		txn.SetSlot(slot)

		b := &Bet{
			Slot:   slot,
			Player: player,
			Seed:   args.Seed,
			Roll:   args.Roll,
			Amount: args.Amount,
			Bump:   bump,
		}
		data, err := b.Encode()
		if err != nil {
			return errors.Wrap(err, "failed to encode bet")
		}
		txn.SetData(betAddr, data)

		if err := p.ledger.Transfer(txn, player, vault, args.Amount); err != nil {
			return ErrTransferFailed.Wrap(err)
		}

		bet = b
		return nil
	})
	if err != nil {
		entry.WithError(err).Warn("bet rejected")
		return nil, betAddr, err
	}

	entry.WithFields(log.Fields{
		"slot":   bet.Slot,
		"roll":   bet.Roll,
		"amount": bet.Amount,
		"sol":    FormatSOL(bet.Amount),
	}).Info("bet placed")

	return bet, betAddr, nil
}

// validate checks the request in a fixed order so each rule fails on its own.
func (p *Program) validate(args PlaceBetArgs, vaultBalance, playerBalance uint64) error {
	if args.Roll <= MinRoll {
		return ErrRollTooLow
	}
	if args.Roll >= MaxRoll {
		return ErrRollTooHigh
	}
	if args.Amount <= p.minBet {
		return ErrBetTooSmall
	}
	if args.Amount >= vaultBalance {
		return ErrBetTooLarge
	}
	if playerBalance < args.Amount {
		return ErrInsufficientFunds
	}
	return nil
}

// Bet loads the bet placed against house with seed, along with its address.
func (p *Program) Bet(ctx context.Context, house solana.PublicKey, seed Seed) (*Bet, solana.PublicKey, error) {
	_, betAddr, _, err := p.BetAddress(house, seed)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}

	var bet *Bet
	err = p.store.View(ctx, func(txn store.Txn) error {
		data, err := txn.Data(betAddr)
		if err != nil {
			return err
		}
		if data == nil {
			return ErrBetNotFound
		}
		bet, err = DecodeBet(data)
		return err
	})
	if err != nil {
		return nil, betAddr, err
	}
	return bet, betAddr, nil
}

func (p *Program) Balance(ctx context.Context, addr solana.PublicKey) (uint64, error) {
	var balance uint64
	err := p.store.View(ctx, func(txn store.Txn) (err error) {
		balance, err = p.ledger.Balance(txn, addr)
		return err
	})
	return balance, err
}
