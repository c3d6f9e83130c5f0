package store

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

var (
	ErrConflict = errors.New("store: concurrent write to a watched key")
	ErrClosed   = errors.New("store: closed")
)

// Store is the durable state of the program: account lamports, account data
// and the clock sysvar.
type Store interface {
	// Update runs fn inside a transaction. Writes made through the Txn are
	// applied together when fn returns nil and discarded otherwise.
	Update(ctx context.Context, fn func(Txn) error) error
	// View runs fn against a read-only snapshot. Writes are discarded.
	View(ctx context.Context, fn func(Txn) error) error
	Close() error
}

// Txn is a buffered view of the state. Reads observe the transaction's own
// writes.
type Txn interface {
	Lamports(addr solana.PublicKey) (uint64, error)
	SetLamports(addr solana.PublicKey, lamports uint64)
	// Data returns nil when the account holds no data.
	Data(addr solana.PublicKey) ([]byte, error)
	SetData(addr solana.PublicKey, data []byte)
	Slot() (uint64, error)
	SetSlot(slot uint64)
	// SignatureUsed reports whether sig was consumed by a committed
	// transaction.
	SignatureUsed(sig solana.Signature) (bool, error)
	UseSignature(sig solana.Signature)
}

const (
	lamportsPrefix  = "lamports/"
	dataPrefix      = "data/"
	signaturePrefix = "sig/"
	clockKey        = "sysvar/clock"
)

func lamportsKey(addr solana.PublicKey) string {
	return lamportsPrefix + addr.String()
}

func dataKey(addr solana.PublicKey) string {
	return dataPrefix + addr.String()
}

func signatureKey(sig solana.Signature) string {
	return signaturePrefix + sig.String()
}
