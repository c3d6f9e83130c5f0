package server

import (
	"context"
	"math"
	"net"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"sol-dice-bet-service/config"
	"sol-dice-bet-service/dice"
	"sol-dice-bet-service/dice/store"
)

// DiceServer is the server API of the dice.Dice service.
type DiceServer interface {
	PlaceBet(context.Context, *PlaceBetRequest) (*BetReply, error)
	GetBet(context.Context, *GetBetRequest) (*BetReply, error)
	GetBalance(context.Context, *GetBalanceRequest) (*BalanceReply, error)
}

type DiceService struct {
	conf    *config.DiceServiceConfig
	store   store.Store
	program *dice.Program
	server  *grpc.Server
	log     *log.Entry
}

// NewDiceService opens the configured store, applies the genesis file if
// one is set and prepares the gRPC server.
func NewDiceService(conf *config.DiceServiceConfig) (*DiceService, error) {
	log.Println("Dice service init...")

	var (
		st  store.Store
		err error
	)
	switch conf.StoreBackend {
	case config.StoreRedis:
		st, err = store.NewRedisStore(store.RedisOptions{
			Addr:     conf.RedisAddr,
			Password: conf.RedisPassword,
			DB:       conf.RedisDB,
			Prefix:   conf.RedisPrefix,
		})
		if err != nil {
			return nil, err
		}
	default:
		st = store.NewMemoryStore()
	}

	s, err := newDiceService(conf, st)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	if conf.GenesisFile != "" {
		if err := s.applyGenesis(context.Background(), conf.GenesisFile); err != nil {
			_ = st.Close()
			return nil, err
		}
	}

	return s, nil
}

func newDiceService(conf *config.DiceServiceConfig, st store.Store) (*DiceService, error) {
	programID, err := conf.Program()
	if err != nil {
		return nil, err
	}

	entry := log.WithField("component", "dice_service")
	program := dice.NewProgram(dice.NewResolver(programID), st,
		dice.WithMinBet(conf.MinBet),
		dice.WithLogger(log.WithField("component", "dice_program")),
	)

	s := &DiceService{
		conf:    conf,
		store:   st,
		program: program,
		server:  grpc.NewServer(grpc.UnaryInterceptor(serverUnaryInterceptor)),
		log:     entry,
	}
	RegisterDiceServer(s.server, s)

	entry.WithFields(log.Fields{
		"program": program.Resolver().ProgramID(),
		"store":   conf.StoreBackend,
		"min_bet": conf.MinBet,
	}).Info("dice service ready")

	return s, nil
}

func (s *DiceService) applyGenesis(ctx context.Context, path string) error {
	g, err := config.LoadGenesis(path)
	if err != nil {
		return err
	}
	accounts, vaults, err := g.Allocations()
	if err != nil {
		return err
	}

	err = s.program.ApplyGenesis(ctx, accounts, vaults)
	if errors.Is(err, dice.ErrGenesisApplied) {
		s.log.Info("genesis already applied, skipping")
		return nil
	}
	return err
}

// Serve accepts connections on lis until Stop is called.
func (s *DiceService) Serve(lis net.Listener) error {
	s.log.Infof("listening on %s", lis.Addr())
	return s.server.Serve(lis)
}

// Run listens on the configured address and serves until ctx is done.
func (s *DiceService) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.conf.ListenAddr)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", s.conf.ListenAddr)
	}

	errc := make(chan error, 1)
	go func() { errc <- s.Serve(lis) }()

	select {
	case err := <-errc:
		_ = s.store.Close()
		return err
	case <-ctx.Done():
		s.Stop()
		return nil
	}
}

func (s *DiceService) Stop() {
	s.log.Println("Dice service stopping...")
	s.server.GracefulStop()
	if err := s.store.Close(); err != nil {
		s.log.WithError(err).Error("failed to close store")
	}
}

func (s *DiceService) PlaceBet(ctx context.Context, req *PlaceBetRequest) (*BetReply, error) {
	player, err := solana.PublicKeyFromBase58(req.Player)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid player: %v", err)
	}
	house, err := solana.PublicKeyFromBase58(req.House)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid house: %v", err)
	}
	seed, err := dice.ParseSeed(req.Seed)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if req.Roll > math.MaxUint8 {
		return nil, status.Errorf(codes.InvalidArgument, "roll %d does not fit in a byte", req.Roll)
	}

	args := dice.PlaceBetArgs{Seed: seed, Roll: uint8(req.Roll), Amount: req.Amount}

	var (
		bet  *dice.Bet
		addr solana.PublicKey
	)
	if s.conf.VerifySignatures {
		sig, sigErr := solana.SignatureFromBase58(req.Signature)
		if sigErr != nil {
			return nil, status.Errorf(codes.Unauthenticated, "invalid signature: %v", sigErr)
		}
		bet, addr, err = s.program.PlaceSignedBet(ctx, player, house, args, sig)
	} else {
		bet, addr, err = s.program.PlaceBet(ctx, player, house, args)
	}
	if err != nil {
		return nil, toStatus(err)
	}

	return newBetReply(addr, bet), nil
}

func (s *DiceService) GetBet(ctx context.Context, req *GetBetRequest) (*BetReply, error) {
	house, err := solana.PublicKeyFromBase58(req.House)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid house: %v", err)
	}
	seed, err := dice.ParseSeed(req.Seed)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	bet, addr, err := s.program.Bet(ctx, house, seed)
	if err != nil {
		return nil, toStatus(err)
	}
	return newBetReply(addr, bet), nil
}

func (s *DiceService) GetBalance(ctx context.Context, req *GetBalanceRequest) (*BalanceReply, error) {
	addr, err := solana.PublicKeyFromBase58(req.Address)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid address: %v", err)
	}

	lamports, err := s.program.Balance(ctx, addr)
	if err != nil {
		return nil, toStatus(err)
	}
	return &BalanceReply{
		Address:  addr.String(),
		Lamports: lamports,
		SOL:      dice.FormatSOL(lamports),
	}, nil
}

// toStatus maps program and store errors onto gRPC codes. The message keeps
// the program error name first.
func toStatus(err error) error {
	code := codes.Internal

	var de *dice.Error
	switch {
	case errors.As(err, &de):
		switch {
		case de.Validation():
			code = codes.FailedPrecondition
		case de.Code == dice.CodeTransferFailed:
			code = codes.Aborted
		case de.Code == dice.CodeBetNotFound:
			code = codes.NotFound
		case de.Code == dice.CodeInvalidSignature:
			code = codes.Unauthenticated
		case de.Code == dice.CodeSignatureReplayed:
			code = codes.AlreadyExists
		}
	case errors.Is(err, store.ErrConflict):
		code = codes.Aborted
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	}

	return status.Error(code, err.Error())
}

func RegisterDiceServer(s *grpc.Server, srv DiceServer) {
	s.RegisterService(&diceServiceDesc, srv)
}

func placeBetHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PlaceBetRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DiceServer).PlaceBet(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/dice.Dice/PlaceBet"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DiceServer).PlaceBet(ctx, req.(*PlaceBetRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getBetHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetBetRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DiceServer).GetBet(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/dice.Dice/GetBet"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DiceServer).GetBet(ctx, req.(*GetBetRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getBalanceHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetBalanceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DiceServer).GetBalance(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/dice.Dice/GetBalance"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DiceServer).GetBalance(ctx, req.(*GetBalanceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var diceServiceDesc = grpc.ServiceDesc{
	ServiceName: "dice.Dice",
	HandlerType: (*DiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "PlaceBet", Handler: placeBetHandler},
		{MethodName: "GetBet", Handler: getBetHandler},
		{MethodName: "GetBalance", Handler: getBalanceHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dice.proto",
}
