package dice

import (
	"bytes"
	"crypto/sha256"
	"io"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// BetDiscriminator tags account data holding a Bet.
var BetDiscriminator = discriminator("account:Bet")

// BetSpace is the encoded size of a Bet, discriminator included.
const BetSpace = 8 + 8 + 32 + 16 + 1 + 8 + 1

// Bet is an outstanding wager waiting for resolution.
type Bet struct {
	Slot   uint64
	Player solana.PublicKey
	Seed   Seed
	Roll   uint8
	Amount uint64
	Bump   uint8
}

func discriminator(name string) [8]byte {
	var d [8]byte
	sum := sha256.Sum256([]byte(name))
	copy(d[:], sum[:8])
	return d
}

func (b Bet) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteBytes(BetDiscriminator[:], false); err != nil {
		return err
	}
	return b.encodeFields(enc)
}

func (b Bet) encodeFields(enc *bin.Encoder) error {
	if err := enc.WriteUint64(b.Slot, bin.LE); err != nil {
		return err
	}
	if err := enc.WriteBytes(b.Player[:], false); err != nil {
		return err
	}
	if err := enc.WriteBytes(b.Seed.Bytes(), false); err != nil {
		return err
	}
	if err := enc.WriteUint8(b.Roll); err != nil {
		return err
	}
	if err := enc.WriteUint64(b.Amount, bin.LE); err != nil {
		return err
	}
	return enc.WriteUint8(b.Bump)
}

func (b *Bet) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	disc, err := dec.ReadNBytes(8)
	if err != nil {
		return err
	}
	if !bytes.Equal(disc, BetDiscriminator[:]) {
		return ErrAccountDiscriminatorMismatch
	}

	if b.Slot, err = dec.ReadUint64(bin.LE); err != nil {
		return err
	}
	player, err := dec.ReadNBytes(32)
	if err != nil {
		return err
	}
	b.Player = solana.PublicKeyFromBytes(player)
	if b.Seed.Lo, err = dec.ReadUint64(bin.LE); err != nil {
		return err
	}
	if b.Seed.Hi, err = dec.ReadUint64(bin.LE); err != nil {
		return err
	}
	if b.Roll, err = dec.ReadUint8(); err != nil {
		return err
	}
	if b.Amount, err = dec.ReadUint64(bin.LE); err != nil {
		return err
	}
	b.Bump, err = dec.ReadUint8()
	return err
}

// Encode returns the account data for b.
func (b Bet) Encode() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := b.MarshalWithEncoder(bin.NewBorshEncoder(buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeBet parses account data written by Encode.
func DecodeBet(data []byte) (*Bet, error) {
	if len(data) < BetSpace {
		return nil, ErrAccountDiscriminatorMismatch.Wrap(io.ErrUnexpectedEOF)
	}

	bet := new(Bet)
	if err := bet.UnmarshalWithDecoder(bin.NewBorshDecoder(data)); err != nil {
		return nil, err
	}
	return bet, nil
}

// Message returns the bet fields without the discriminator, the payload a
// resolver of the bet signs over. Resolution itself happens outside this
// service.
func (b Bet) Message() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := b.encodeFields(bin.NewBorshEncoder(buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
