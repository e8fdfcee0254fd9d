package api

import (
	"github.com/tyoppar01/pokemon-battle-v3/internal/game"
	"github.com/tyoppar01/pokemon-battle-v3/internal/service"
	"github.com/tyoppar01/pokemon-battle-v3/internal/storage"
)

// Handler groups the trainer, catalog and battle HTTP handlers.
type Handler struct {
	repo    storage.Repository
	pokedex *game.Pokedex
	catalog *service.Catalog
	arena   *service.Arena
}

func NewHandler(repo storage.Repository, pokedex *game.Pokedex, catalog *service.Catalog, arena *service.Arena) *Handler {
	return &Handler{repo: repo, pokedex: pokedex, catalog: catalog, arena: arena}
}
