package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/tyoppar01/pokemon-battle-v3/internal/game"
	"github.com/tyoppar01/pokemon-battle-v3/internal/storage"
)

// TrainerRepo is the minimal repository interface required by the trainer
// operations. Using a small interface simplifies testing.
type TrainerRepo interface {
	CreateTrainer(t *game.Trainer) error
	GetTrainer(id string) (*game.Trainer, error)
	ListTrainers() ([]game.Trainer, error)
	UpdateTrainer(t *game.Trainer) error
	DeleteTrainer(id string) error
	AddCreature(trainerID string, c *game.OwnedCreature, limit int) error
	RemoveCreature(trainerID string, slot int) error
	ListCreatures(trainerID string) ([]game.OwnedCreature, error)
}

var (
	ErrInvalidTrainerID  = errors.New("invalid user id format")
	ErrTrainerNotFound   = errors.New("user not found")
	ErrInvalidName       = errors.New("name must be 3-20 characters of letters, digits or spaces")
	ErrInvalidGender     = errors.New("gender must be Male, Female or Unknown")
	ErrRosterFull        = errors.New("team already has six pokemon")
	ErrInvalidRosterSlot = errors.New("invalid pokemon index")
)

const (
	minNameLen = 3
	maxNameLen = 20
)

var trainerNameRegex = regexp.MustCompile(`^[a-zA-Z0-9 ]+$`)

// TrainerInput carries the editable trainer fields.
type TrainerInput struct {
	Name   string `json:"username"`
	Gender string `json:"gender"`
}

func validateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < minNameLen || len(trimmed) > maxNameLen || !trainerNameRegex.MatchString(trimmed) {
		return "", ErrInvalidName
	}
	return trimmed, nil
}

func normalizeGender(g string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(g)) {
	case "", "unknown":
		return game.GenderUnknown, nil
	case "male":
		return game.GenderMale, nil
	case "female":
		return game.GenderFemale, nil
	}
	return "", ErrInvalidGender
}

// ValidateTrainerID checks that id is a UUID before it reaches the store.
func ValidateTrainerID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidTrainerID
	}
	return nil
}

// SanitizeTrainerName turns an arbitrary display name (for example a Google
// profile name) into one that passes validation.
func SanitizeTrainerName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == ' ' {
			b.WriteRune(r)
		}
	}
	s := strings.Join(strings.Fields(b.String()), " ")
	if len(s) > maxNameLen {
		s = strings.TrimSpace(s[:maxNameLen])
	}
	if len(s) < minNameLen {
		return "Trainer"
	}
	return s
}

func CreateTrainer(repo TrainerRepo, in TrainerInput) (*game.Trainer, error) {
	name, err := validateName(in.Name)
	if err != nil {
		return nil, err
	}
	gender, err := normalizeGender(in.Gender)
	if err != nil {
		return nil, err
	}
	t := &game.Trainer{Name: name, Gender: gender}
	if err := repo.CreateTrainer(t); err != nil {
		return nil, err
	}
	t.Creatures = []game.OwnedCreature{}
	return t, nil
}

func GetTrainer(repo TrainerRepo, id string) (*game.Trainer, error) {
	if err := ValidateTrainerID(id); err != nil {
		return nil, err
	}
	t, err := repo.GetTrainer(id)
	if err != nil {
		return nil, mapNotFound(err, ErrTrainerNotFound)
	}
	return t, nil
}

func ListTrainers(repo TrainerRepo) ([]game.Trainer, error) {
	out, err := repo.ListTrainers()
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []game.Trainer{}
	}
	return out, nil
}

func UpdateTrainer(repo TrainerRepo, id string, in TrainerInput) (*game.Trainer, error) {
	t, err := GetTrainer(repo, id)
	if err != nil {
		return nil, err
	}
	if t.Name, err = validateName(in.Name); err != nil {
		return nil, err
	}
	if t.Gender, err = normalizeGender(in.Gender); err != nil {
		return nil, err
	}
	if err := repo.UpdateTrainer(t); err != nil {
		return nil, mapNotFound(err, ErrTrainerNotFound)
	}
	return t, nil
}

func DeleteTrainer(repo TrainerRepo, id string) error {
	if err := ValidateTrainerID(id); err != nil {
		return err
	}
	return mapNotFound(repo.DeleteTrainer(id), ErrTrainerNotFound)
}

// AddPokemonRequest names a species to add to a roster. Level 0 means the
// species' default level; an empty name means the species name.
type AddPokemonRequest struct {
	Species string `json:"species"`
	Name    string `json:"name"`
	Level   int    `json:"level"`
}

// AddPokemon validates the request against the species table and appends
// the creature to the end of the trainer's roster.
func AddPokemon(repo TrainerRepo, pokedex *game.Pokedex, id string, req AddPokemonRequest) (*game.OwnedCreature, error) {
	if err := ValidateTrainerID(id); err != nil {
		return nil, err
	}
	c, err := pokedex.NewCreature(req.Species, req.Name, req.Level)
	if err != nil {
		return nil, err
	}
	oc := &game.OwnedCreature{Species: c.Species, Name: c.Name, Level: c.Level}
	if err := repo.AddCreature(id, oc, game.MaxTeamSize); err != nil {
		if errors.Is(err, game.ErrTeamFull) {
			return nil, ErrRosterFull
		}
		return nil, mapNotFound(err, ErrTrainerNotFound)
	}
	return oc, nil
}

func RemovePokemon(repo TrainerRepo, id string, index int) error {
	t, err := GetTrainer(repo, id)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(t.Creatures) {
		return ErrInvalidRosterSlot
	}
	return mapNotFound(repo.RemoveCreature(id, index), ErrInvalidRosterSlot)
}

func ListPokemon(repo TrainerRepo, id string) ([]game.OwnedCreature, error) {
	if err := ValidateTrainerID(id); err != nil {
		return nil, err
	}
	out, err := repo.ListCreatures(id)
	if err != nil {
		return nil, mapNotFound(err, ErrTrainerNotFound)
	}
	return out, nil
}

// BuildTeam rebuilds a stored roster into fresh, full-health creatures.
func BuildTeam(pokedex *game.Pokedex, t *game.Trainer) (*game.Team, error) {
	t.SortCreatures()
	team, err := game.NewTeam()
	if err != nil {
		return nil, err
	}
	for _, oc := range t.Creatures {
		c, err := pokedex.NewCreature(oc.Species, oc.Name, oc.Level)
		if err != nil {
			return nil, fmt.Errorf("%s's %s: %w", t.Name, oc.Name, err)
		}
		if err := team.Add(c); err != nil {
			return nil, err
		}
	}
	return team, nil
}

func mapNotFound(err, to error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return to
	}
	return err
}
