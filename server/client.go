package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// DiceClient is the client API of the dice.Dice service.
type DiceClient interface {
	PlaceBet(ctx context.Context, in *PlaceBetRequest, opts ...grpc.CallOption) (*BetReply, error)
	GetBet(ctx context.Context, in *GetBetRequest, opts ...grpc.CallOption) (*BetReply, error)
	GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*BalanceReply, error)
}

type diceClient struct {
	cc grpc.ClientConnInterface
}

func NewDiceClient(cc grpc.ClientConnInterface) DiceClient {
	return &diceClient{cc}
}

// Dial connects to a dice service without transport security.
func Dial(ctx context.Context, addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		withClientUnaryInterceptor(),
	}, opts...)
	return grpc.DialContext(ctx, addr, opts...)
}

func (c *diceClient) invoke(ctx context.Context, method string, in, out interface{}, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *diceClient) PlaceBet(ctx context.Context, in *PlaceBetRequest, opts ...grpc.CallOption) (*BetReply, error) {
	out := new(BetReply)
	if err := c.invoke(ctx, "/dice.Dice/PlaceBet", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *diceClient) GetBet(ctx context.Context, in *GetBetRequest, opts ...grpc.CallOption) (*BetReply, error) {
	out := new(BetReply)
	if err := c.invoke(ctx, "/dice.Dice/GetBet", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *diceClient) GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*BalanceReply, error) {
	out := new(BalanceReply)
	if err := c.invoke(ctx, "/dice.Dice/GetBalance", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
