package dice

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

var PlaceBetDiscriminator = discriminator("global:place_bet")

// PlaceBetArgs are the instruction arguments of a place-bet request.
type PlaceBetArgs struct {
	Seed   Seed
	Roll   uint8
	Amount uint64
}

func (a PlaceBetArgs) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteBytes(PlaceBetDiscriminator[:], false); err != nil {
		return err
	}
	if err := enc.WriteBytes(a.Seed.Bytes(), false); err != nil {
		return err
	}
	if err := enc.WriteUint8(a.Roll); err != nil {
		return err
	}
	return enc.WriteUint64(a.Amount, bin.LE)
}

// Data returns the instruction data of the request.
func (a PlaceBetArgs) Data() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := a.MarshalWithEncoder(bin.NewBorshEncoder(buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SigningMessage is the payload a player signs to authorize a bet against
// house.
func (a PlaceBetArgs) SigningMessage(house solana.PublicKey) ([]byte, error) {
	data, err := a.Data()
	if err != nil {
		return nil, err
	}
	return append(house.Bytes(), data...), nil
}

func (a PlaceBetArgs) Sign(player solana.PrivateKey, house solana.PublicKey) (solana.Signature, error) {
	msg, err := a.SigningMessage(house)
	if err != nil {
		return solana.Signature{}, err
	}
	return player.Sign(msg)
}

func (a PlaceBetArgs) Verify(player, house solana.PublicKey, sig solana.Signature) bool {
	msg, err := a.SigningMessage(house)
	if err != nil {
		return false
	}
	return sig.Verify(player, msg)
}
