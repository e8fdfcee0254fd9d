package main

import (
	"os"

	"github.com/tyoppar01/pokemon-battle-v3/internal/config"
	"github.com/tyoppar01/pokemon-battle-v3/internal/constants"
	"github.com/tyoppar01/pokemon-battle-v3/internal/logging"
	"github.com/tyoppar01/pokemon-battle-v3/internal/storage"
)

// configPath returns POKEBATTLE_CONFIG or the default file in the working
// directory.
func configPath() string {
	if p := os.Getenv(constants.EnvConfigPath); p != "" {
		return p
	}
	return constants.DefaultConfigPath
}

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid pokebattle configuration", err, logging.Fields{
			"config_path": path,
			"hint":        "species_list entries need name, type, hp, attack, defense, speed {base,growth} and special_move {name}",
		})
	}
	return cfg
}

func createRepositoryOrExit(dsn string) storage.Repository {
	db, err := storage.OpenAndMigrate(dsn)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewRepository(db)
}

// warnMissingEnv logs the optional environment variables that are unset.
func warnMissingEnv(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Warn("Environment variable not set", logging.Fields{"var": v})
		}
	}
}
