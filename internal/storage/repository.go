package storage

import (
	"errors"

	"github.com/tyoppar01/pokemon-battle-v3/internal/game"
)

// ErrNotFound is returned when a trainer or roster slot does not exist.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	CreateTrainer(t *game.Trainer) error
	// GetTrainer loads a trainer with its roster ordered by slot.
	GetTrainer(id string) (*game.Trainer, error)
	ListTrainers() ([]game.Trainer, error)
	// UpdateTrainer saves the trainer's name and gender.
	UpdateTrainer(t *game.Trainer) error
	DeleteTrainer(id string) error

	// AddCreature appends c to the end of the roster. It fails with
	// game.ErrTeamFull once the roster holds limit creatures.
	AddCreature(trainerID string, c *game.OwnedCreature, limit int) error
	// RemoveCreature deletes the creature in slot and closes the gap.
	RemoveCreature(trainerID string, slot int) error
	ListCreatures(trainerID string) ([]game.OwnedCreature, error)
	// CountCreaturesBySpecies returns how many roster entries exist per species.
	CountCreaturesBySpecies() (map[string]int64, error)

	// RecordBattleResult adds one battle to both trainers and one win to winnerID.
	RecordBattleResult(winnerID, loserID string) error
	// GetTopTrainers returns trainers ordered by wins desc, then battles played desc.
	GetTopTrainers(limit int) ([]game.Trainer, error)

	FindTrainerByEmail(email string) (*game.Trainer, error)
	// UpsertGoogleTrainer returns the trainer linked to email, creating it
	// with name when none exists.
	UpsertGoogleTrainer(email, name string) (*game.Trainer, error)
}
