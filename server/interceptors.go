package server

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

const clientTimeout = 5 * time.Second

func withClientUnaryInterceptor() grpc.DialOption {
	return grpc.WithUnaryInterceptor(clientUnaryInterceptor)
}

func clientUnaryInterceptor(ctx context.Context, method string, req interface{}, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
	start := time.Now()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, clientTimeout)
		defer cancel()
	}

	err := invoker(ctx, method, req, reply, cc, opts...)

	log.WithFields(log.Fields{
		"method":   method,
		"duration": time.Since(start),
	}).WithError(err).Debug("invoked RPC")

	return err
}

func serverUnaryInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	entry := log.WithFields(log.Fields{
		"method":   info.FullMethod,
		"duration": time.Since(start),
		"code":     status.Code(err),
	})
	if err != nil {
		entry.WithError(err).Warn("handled RPC")
	} else {
		entry.Info("handled RPC")
	}

	return resp, err
}
