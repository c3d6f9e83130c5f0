package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"sol-dice-bet-service/config"
	"sol-dice-bet-service/server"
)

func main() {
	cfg := config.GetConfig()
	cfg.SetupLogging()

	service, err := server.NewDiceService(&cfg)
	if err != nil {
		log.Fatalf("failed to init dice service: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := service.Run(ctx); err != nil {
		log.Fatalf("dice service stopped: %v", err)
	}
}
