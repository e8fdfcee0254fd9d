package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/tyoppar01/pokemon-battle-v3/internal/constants"
	"github.com/tyoppar01/pokemon-battle-v3/internal/game"
	"github.com/tyoppar01/pokemon-battle-v3/internal/keys"
)

const (
	defaultAddress     = ":5050"
	defaultTokenTTL    = 60 * time.Minute
	defaultIdleTimeout = 30 * time.Minute
)

type statEntry struct {
	Base   int `json:"base"`
	Growth int `json:"growth"`
}

type speciesEntry struct {
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Description  string    `json:"description"`
	DefaultLevel int       `json:"default_level"`
	HP           statEntry `json:"hp"`
	Attack       statEntry `json:"attack"`
	Defense      statEntry `json:"defense"`
	Speed        statEntry `json:"speed"`
	SpecialMove  struct {
		Name     string `json:"name"`
		Type     string `json:"type"`
		Accuracy int    `json:"accuracy"`
	} `json:"special_move"`
}

type rawConfig struct {
	SpeciesList []speciesEntry `json:"species_list"`
	Server      *struct {
		Address string `json:"address"`
	} `json:"server"`
	Database *struct {
		DSN string `json:"dsn"`
	} `json:"database"`
	Auth *struct {
		TokenTTLMinutes int `json:"token_ttl_minutes"`
	} `json:"auth"`
	CORS *struct {
		AllowedOrigins []string `json:"allowed_origins"`
	} `json:"cors"`
	Battle *struct {
		IdleTimeoutMinutes int `json:"idle_timeout_minutes"`
	} `json:"battle"`
}

// LoadedConfig is the validated runtime configuration.
type LoadedConfig struct {
	ServerAddress  string
	DatabaseDSN    string
	TokenTTL       time.Duration
	AllowedOrigins []string
	IdleTimeout    time.Duration
	// Pokedex is built from species_list, or the built-in table when the
	// file has none.
	Pokedex *game.Pokedex
}

// Default returns the configuration used when no file is present.
func Default() *LoadedConfig {
	return &LoadedConfig{
		ServerAddress: defaultAddress,
		DatabaseDSN:   constants.DefaultDatabase,
		TokenTTL:      defaultTokenTTL,
		IdleTimeout:   defaultIdleTimeout,
		Pokedex:       game.DefaultPokedex(),
	}
}

// LoadConfig reads the configuration file at path. A missing file yields
// Default(); a present but invalid file is an error. POKEBATTLE_DB, when set,
// overrides database.dsn.
func LoadConfig(path string) (*LoadedConfig, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		applyEnv(cfg)
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if rc.Server != nil && rc.Server.Address != "" {
		cfg.ServerAddress = rc.Server.Address
	}
	if rc.Database != nil && strings.TrimSpace(rc.Database.DSN) != "" {
		cfg.DatabaseDSN = strings.TrimSpace(rc.Database.DSN)
	}
	if rc.Auth != nil && rc.Auth.TokenTTLMinutes != 0 {
		if rc.Auth.TokenTTLMinutes < 0 {
			return nil, fmt.Errorf("config file %s: auth.token_ttl_minutes must be positive", path)
		}
		cfg.TokenTTL = time.Duration(rc.Auth.TokenTTLMinutes) * time.Minute
	}
	if rc.CORS != nil {
		for _, o := range rc.CORS.AllowedOrigins {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}
	if rc.Battle != nil && rc.Battle.IdleTimeoutMinutes != 0 {
		if rc.Battle.IdleTimeoutMinutes < 0 {
			return nil, fmt.Errorf("config file %s: battle.idle_timeout_minutes must be positive", path)
		}
		cfg.IdleTimeout = time.Duration(rc.Battle.IdleTimeoutMinutes) * time.Minute
	}

	if len(rc.SpeciesList) > 0 {
		species, err := toSpecies(path, rc.SpeciesList)
		if err != nil {
			return nil, err
		}
		p, err := game.NewPokedex(species)
		if err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		cfg.Pokedex = p
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *LoadedConfig) {
	if dsn := strings.TrimSpace(os.Getenv(constants.EnvDatabaseDSN)); dsn != "" {
		cfg.DatabaseDSN = dsn
	}
}

// toSpecies converts the file entries, checking what the pokedex cannot see
// on its own: readable type names and unique names across entries.
func toSpecies(path string, entries []speciesEntry) ([]game.Species, error) {
	out := make([]game.Species, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("config file %s: species entry missing 'name'", path)
		}
		k := keys.SpeciesKey(e.Name)
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("config file %s: duplicate species name '%s'", path, e.Name)
		}
		seen[k] = struct{}{}

		t, err := game.ParseType(e.Type)
		if err != nil {
			return nil, fmt.Errorf("config file %s: species '%s': %w", path, e.Name, err)
		}
		moveType := t
		if e.SpecialMove.Type != "" {
			if moveType, err = game.ParseType(e.SpecialMove.Type); err != nil {
				return nil, fmt.Errorf("config file %s: species '%s' special_move: %w", path, e.Name, err)
			}
		}
		acc := e.SpecialMove.Accuracy
		if acc == 0 {
			acc = 100
		}
		lvl := e.DefaultLevel
		if lvl == 0 {
			lvl = 1
		}
		out = append(out, game.Species{
			Name:         strings.TrimSpace(e.Name),
			Type:         t,
			Description:  e.Description,
			DefaultLevel: lvl,
			HP:           game.StatLine{Base: e.HP.Base, Growth: e.HP.Growth},
			Attack:       game.StatLine{Base: e.Attack.Base, Growth: e.Attack.Growth},
			Defense:      game.StatLine{Base: e.Defense.Base, Growth: e.Defense.Growth},
			Speed:        game.StatLine{Base: e.Speed.Base, Growth: e.Speed.Growth},
			Special:      game.SpecialMoveTemplate{Name: e.SpecialMove.Name, Type: moveType, Accuracy: acc},
		})
	}
	return out, nil
}
