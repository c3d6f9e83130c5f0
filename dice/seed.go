package dice

import (
	"encoding/binary"
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// Seed is the caller-chosen 128-bit nonce that selects a bet's address.
type Seed struct {
	Hi uint64
	Lo uint64
}

var maxSeed = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

func NewSeed(v uint64) Seed {
	return Seed{Lo: v}
}

// ParseSeed parses a base-10 unsigned 128-bit integer.
func ParseSeed(s string) (Seed, error) {
	if strings.HasPrefix(s, "+") {
		return Seed{}, errors.Errorf("invalid seed %q: want an unsigned 128-bit integer", s)
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 || n.Cmp(maxSeed) > 0 {
		return Seed{}, errors.Errorf("invalid seed %q: want an unsigned 128-bit integer", s)
	}

	var buf [16]byte
	n.FillBytes(buf[:])
	return Seed{
		Hi: binary.BigEndian.Uint64(buf[:8]),
		Lo: binary.BigEndian.Uint64(buf[8:]),
	}, nil
}

// Bytes returns the 16-byte little-endian encoding used in address seeds.
func (s Seed) Bytes() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint64(buf[:8], s.Lo)
	binary.LittleEndian.PutUint64(buf[8:], s.Hi)
	return buf
}

func (s Seed) BigInt() *big.Int {
	n := new(big.Int).SetUint64(s.Hi)
	n.Lsh(n, 64)
	return n.Or(n, new(big.Int).SetUint64(s.Lo))
}

func (s Seed) String() string {
	return s.BigInt().String()
}
