package store

import (
	"sort"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// getter reads a committed value. ok is false when the key is absent.
type getter func(key string) (value []byte, ok bool, err error)

// txn buffers writes on top of a getter until the owning store commits them.
type txn struct {
	get    getter
	writes map[string][]byte
}

func newTxn(get getter) *txn {
	return &txn{
		get:    get,
		writes: make(map[string][]byte),
	}
}

func (t *txn) read(key string) ([]byte, bool, error) {
	if v, ok := t.writes[key]; ok {
		return v, true, nil
	}
	return t.get(key)
}

func (t *txn) readUint(key string) (uint64, error) {
	v, ok, err := t.read(key)
	if err != nil || !ok {
		return 0, err
	}
	n, err := strconv.ParseUint(string(v), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "store: corrupt value at %s", key)
	}
	return n, nil
}

func (t *txn) writeUint(key string, n uint64) {
	t.writes[key] = []byte(strconv.FormatUint(n, 10))
}

func (t *txn) Lamports(addr solana.PublicKey) (uint64, error) {
	return t.readUint(lamportsKey(addr))
}

func (t *txn) SetLamports(addr solana.PublicKey, lamports uint64) {
	t.writeUint(lamportsKey(addr), lamports)
}

func (t *txn) Data(addr solana.PublicKey) ([]byte, error) {
	v, ok, err := t.read(dataKey(addr))
	if err != nil || !ok {
		return nil, err
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (t *txn) SetData(addr solana.PublicKey, data []byte) {
	v := make([]byte, len(data))
	copy(v, data)
	t.writes[dataKey(addr)] = v
}

func (t *txn) Slot() (uint64, error) {
	return t.readUint(clockKey)
}

func (t *txn) SetSlot(slot uint64) {
	t.writeUint(clockKey, slot)
}

func (t *txn) SignatureUsed(sig solana.Signature) (bool, error) {
	_, ok, err := t.read(signatureKey(sig))
	return ok, err
}

func (t *txn) UseSignature(sig solana.Signature) {
	t.writes[signatureKey(sig)] = []byte{1}
}

// keys returns the buffered keys in a stable order so commits are applied
// deterministically.
func (t *txn) keys() []string {
	keys := make([]string, 0, len(t.writes))
	for k := range t.writes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
