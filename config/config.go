package config

import (
	"github.com/caarlos0/env/v6"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type DiceServiceConfig struct {
	ProgramID        string `env:"DICE_PROGRAM_ID" envDefault:"Fg6PaFpoGXkYsidMpWTK6W2BeZ7FEfcYkg476zPFsLnS"`
	ListenAddr       string `env:"DICE_LISTEN_ADDR" envDefault:":5300"`
	MinBet           uint64 `env:"DICE_MIN_BET" envDefault:"0"`
	VerifySignatures bool   `env:"DICE_VERIFY_SIGNATURES" envDefault:"false"`
	StoreBackend     string `env:"STORE_BACKEND" envDefault:"memory"`
	RedisAddr        string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword    string `env:"REDIS_PASSWORD"`
	RedisDB          int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix      string `env:"REDIS_PREFIX" envDefault:"dice:"`
	GenesisFile      string `env:"GENESIS_FILE"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	LogJSON          bool   `env:"LOG_JSON" envDefault:"false"`
}

// Parse reads the configuration from the environment and validates it.
func Parse() (DiceServiceConfig, error) {
	cfg := DiceServiceConfig{}
	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.Wrap(err, "cannot parse ENV vars")
	}
	if _, err := cfg.Program(); err != nil {
		return cfg, err
	}
	if cfg.StoreBackend != StoreMemory && cfg.StoreBackend != StoreRedis {
		return cfg, errors.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return cfg, errors.Wrap(err, "invalid LOG_LEVEL")
	}
	return cfg, nil
}

func GetConfig() DiceServiceConfig {
	cfg, err := Parse()
	if err != nil {
		log.Fatal("Cannot load configuration: ", err)
	}
	return cfg
}

func (c *DiceServiceConfig) Program() (solana.PublicKey, error) {
	id, err := solana.PublicKeyFromBase58(c.ProgramID)
	if err != nil {
		return solana.PublicKey{}, errors.Wrapf(err, "invalid DICE_PROGRAM_ID %q", c.ProgramID)
	}
	return id, nil
}

// SetupLogging applies the configured level and format to the standard logger.
func (c *DiceServiceConfig) SetupLogging() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if c.LogJSON {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
