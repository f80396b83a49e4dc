// Command tgserver runs the threshold group-encryption coordinator: userset
// lifecycle, shard dealing and decryption session orchestration over HTTP.
package main

import (
	"flag"
	"os"

	"github.com/Caqil/threshold-encrypt/internal/config"
	"github.com/Caqil/threshold-encrypt/internal/server"
	"github.com/Caqil/threshold-encrypt/internal/session"
	"github.com/Caqil/threshold-encrypt/internal/storage"
	"github.com/Caqil/threshold-encrypt/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Global().Error().Err(err).Msg("load config")
		os.Exit(1)
	}

	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	})
	logger.SetGlobal(log)

	store, err := storage.Open(cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}

	sessions := session.NewManager(cfg.Session.TTL)
	srv := server.New(store, sessions, log)

	log.Info().
		Str("addr", cfg.Server.Addr()).
		Dur("session_ttl", cfg.Session.TTL).
		Msg("coordinator listening")

	if err := srv.Run(cfg.Server.Addr(), cfg.Session.PruneInterval); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
