package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tyoppar01/pokemon-battle-v3/internal/api"
	"github.com/tyoppar01/pokemon-battle-v3/internal/constants"
	"github.com/tyoppar01/pokemon-battle-v3/internal/logging"
	"github.com/tyoppar01/pokemon-battle-v3/internal/service"
	"github.com/tyoppar01/pokemon-battle-v3/internal/version"
)

func main() {
	warnMissingEnv([]string{constants.EnvTokenSecret, constants.EnvGoogleClientID, constants.EnvGoogleClientSecret})

	path := configPath()
	cfg := loadConfigOrExit(path)
	logging.Info("Configuration loaded", logging.Fields{
		"config_path": path,
		"species":     len(cfg.Pokedex.All()),
		"version":     version.Get().Version,
	})

	repo := createRepositoryOrExit(cfg.DatabaseDSN)
	catalog := service.NewCatalog(cfg.Pokedex, repo)
	arena := service.NewArena(repo, cfg.Pokedex)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	startIdleSweeper(ctx, arena, cfg.IdleTimeout)

	handler := api.NewHandler(repo, cfg.Pokedex, catalog, arena)
	authHandler := api.NewAuthHandler(repo, cfg.TokenTTL)
	router := api.NewRouter(handler, authHandler, cfg.AllowedOrigins)

	srv := &http.Server{Addr: cfg.ServerAddress, Handler: router}
	if err := serve(ctx, srv); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
