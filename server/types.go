package server

import (
	"sol-dice-bet-service/dice"

	"github.com/gagliardetto/solana-go"
)

type PlaceBetRequest struct {
	Player string `json:"player"`
	House  string `json:"house"`
	Seed   string `json:"seed"`
	Roll   uint32 `json:"roll"`
	Amount uint64 `json:"amount"`
	// Signature is the player's base58 ed25519 signature over the signing
	// message of the instruction.
	Signature string `json:"signature,omitempty"`
}

type GetBetRequest struct {
	House string `json:"house"`
	Seed  string `json:"seed"`
}

type BetReply struct {
	Address string `json:"address"`
	Slot    uint64 `json:"slot"`
	Player  string `json:"player"`
	Seed    string `json:"seed"`
	Roll    uint32 `json:"roll"`
	Amount  uint64 `json:"amount"`
	Bump    uint32 `json:"bump"`
	SOL     string `json:"sol"`
}

type GetBalanceRequest struct {
	Address string `json:"address"`
}

type BalanceReply struct {
	Address  string `json:"address"`
	Lamports uint64 `json:"lamports"`
	SOL      string `json:"sol"`
}

func newBetReply(addr solana.PublicKey, bet *dice.Bet) *BetReply {
	return &BetReply{
		Address: addr.String(),
		Slot:    bet.Slot,
		Player:  bet.Player.String(),
		Seed:    bet.Seed.String(),
		Roll:    uint32(bet.Roll),
		Amount:  bet.Amount,
		Bump:    uint32(bet.Bump),
		SOL:     dice.FormatSOL(bet.Amount),
	}
}
