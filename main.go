package main

import (
	"fmt"

	"github.com/tabuparty/gameserver/config"
	"github.com/tabuparty/gameserver/logger"
	"github.com/tabuparty/gameserver/persistence"
	"github.com/tabuparty/gameserver/server"
)

func main() {
	// Initialize logger
	logger.Init()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open the word bank
	store, err := openWordStore(cfg)
	if err != nil {
		logger.Log.Fatalf("Failed to open word bank: %v", err)
	}
	defer store.Close()
	logger.Log.Infof("Word bank ready (%s backend)", cfg.WordBank.Backend)

	// Initialize Game Server
	gameServer := server.NewGameServer(cfg, store)

	// Start Server
	logger.Log.Infof("Starting game server on %s", cfg.Server.HTTPAddress)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}

func openWordStore(cfg *config.Config) (persistence.WordStore, error) {
	pg := cfg.WordBank.Postgres
	switch cfg.WordBank.Backend {
	case "", "file":
		return persistence.NewFileStore(cfg.WordBank.File)
	case "postgres":
		return persistence.NewPostgreSQL(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
	case "gorm":
		return persistence.NewGormPostgreSQL(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
	default:
		return nil, fmt.Errorf("unknown wordbank backend %q", cfg.WordBank.Backend)
	}
}
