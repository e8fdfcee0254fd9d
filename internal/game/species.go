package game

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tyoppar01/pokemon-battle-v3/internal/keys"
)

const MaxLevel = 100

var (
	ErrUnknownSpecies = errors.New("unknown species")
	ErrInvalidLevel   = errors.New("level must be between 1 and 100")
)

// StatLine is a linear stat formula: Base + level*Growth.
type StatLine struct {
	Base   int `json:"base"`
	Growth int `json:"growth"`
}

func (s StatLine) At(level int) int { return s.Base + level*s.Growth }

// SpecialMoveTemplate describes a species' special move. Its power is taken
// from the creature's Attack stat when the creature is built.
type SpecialMoveTemplate struct {
	Name     string `json:"name"`
	Type     Type   `json:"type"`
	Accuracy int    `json:"accuracy"`
}

// Species is one row of the species table.
type Species struct {
	Name         string              `json:"name"`
	Type         Type                `json:"type"`
	Description  string              `json:"description"`
	DefaultLevel int                 `json:"default_level"`
	HP           StatLine            `json:"hp"`
	Attack       StatLine            `json:"attack"`
	Defense      StatLine            `json:"defense"`
	Speed        StatLine            `json:"speed"`
	Special      SpecialMoveTemplate `json:"special_move"`
}

// TackleName is the normal move every species knows.
const TackleName = "Tackle"

// DefaultSpecies is the built-in species table.
var DefaultSpecies = []Species{
	{
		Name: "Pikachu", Type: Electric, DefaultLevel: 5,
		Description: "An Electric mouse that stores charge in its cheeks.",
		HP:          StatLine{35, 4}, Attack: StatLine{55, 3}, Defense: StatLine{40, 2}, Speed: StatLine{90, 5},
		Special: SpecialMoveTemplate{Name: "Thunder Shock", Type: Electric, Accuracy: 100},
	},
	{
		Name: "Squirtle", Type: Water, DefaultLevel: 5,
		Description: "A sturdy Water turtle that sprays from its mouth.",
		HP:          StatLine{44, 5}, Attack: StatLine{48, 3}, Defense: StatLine{65, 3}, Speed: StatLine{43, 2},
		Special: SpecialMoveTemplate{Name: "Water Gun", Type: Water, Accuracy: 100},
	},
	{
		Name: "Charmander", Type: Fire, DefaultLevel: 1,
		Description: "A Fire lizard whose tail flame shows its health.",
		HP:          StatLine{39, 4}, Attack: StatLine{52, 4}, Defense: StatLine{43, 2}, Speed: StatLine{65, 3},
		Special: SpecialMoveTemplate{Name: "Ember", Type: Fire, Accuracy: 100},
	},
	{
		Name: "Bulbasaur", Type: Grass, DefaultLevel: 1,
		Description: "A Grass seedling that grows with its trainer.",
		HP:          StatLine{45, 5}, Attack: StatLine{49, 3}, Defense: StatLine{49, 3}, Speed: StatLine{45, 3},
		Special: SpecialMoveTemplate{Name: "Vine Whip", Type: Grass, Accuracy: 100},
	},
	{
		Name: "Aron", Type: Steel, DefaultLevel: 1,
		Description: "A small Steel armour that eats iron ore.",
		HP:          StatLine{50, 5}, Attack: StatLine{70, 3}, Defense: StatLine{100, 4}, Speed: StatLine{30, 1},
		Special: SpecialMoveTemplate{Name: "Metal Claw", Type: Steel, Accuracy: 95},
	},
	{
		Name: "Gengar", Type: Ghost, DefaultLevel: 1,
		Description: "A Ghost that hides in shadows.",
		HP:          StatLine{60, 4}, Attack: StatLine{65, 4}, Defense: StatLine{60, 2}, Speed: StatLine{110, 6},
		Special: SpecialMoveTemplate{Name: "Shadow Ball", Type: Ghost, Accuracy: 100},
	},
	{
		Name: "Mewtwo", Type: Psychic, DefaultLevel: 99,
		Description: "A Psychic created by genetic manipulation.",
		HP:          StatLine{106, 5}, Attack: StatLine{110, 5}, Defense: StatLine{90, 4}, Speed: StatLine{130, 6},
		Special: SpecialMoveTemplate{Name: "Psychic", Type: Psychic, Accuracy: 100},
	},
	{
		Name: "Snorlax", Type: Normal, DefaultLevel: 30,
		Description: "A Normal sleeper that blocks roads.",
		HP:          StatLine{160, 8}, Attack: StatLine{110, 4}, Defense: StatLine{65, 3}, Speed: StatLine{30, 1},
		Special: SpecialMoveTemplate{Name: "Body Slam", Type: Normal, Accuracy: 100},
	},
}

// Pokedex is an immutable species registry and creature factory.
type Pokedex struct {
	byKey map[string]Species
	order []string
}

// NewPokedex validates and indexes a species table.
func NewPokedex(species []Species) (*Pokedex, error) {
	if len(species) == 0 {
		return nil, errors.New("species table is empty")
	}
	p := &Pokedex{byKey: make(map[string]Species, len(species))}
	for _, s := range species {
		k := keys.SpeciesKey(s.Name)
		if k == "" {
			return nil, errors.New("species entry missing name")
		}
		if _, dup := p.byKey[k]; dup {
			return nil, fmt.Errorf("duplicate species %q", s.Name)
		}
		if !s.Type.Valid() || !s.Special.Type.Valid() {
			return nil, fmt.Errorf("species %q: %w", s.Name, ErrUnknownType)
		}
		if s.HP.At(1) <= 0 || s.Attack.At(1) <= 0 || s.Defense.At(1) < 0 || s.Speed.At(1) < 0 {
			return nil, fmt.Errorf("species %q: stats must be positive at level 1", s.Name)
		}
		if s.DefaultLevel < 1 || s.DefaultLevel > MaxLevel {
			return nil, fmt.Errorf("species %q: %w", s.Name, ErrInvalidLevel)
		}
		if strings.TrimSpace(s.Special.Name) == "" {
			return nil, fmt.Errorf("species %q: special move needs a name", s.Name)
		}
		p.byKey[k] = s
		p.order = append(p.order, k)
	}
	return p, nil
}

var defaultPokedex = mustPokedex(DefaultSpecies)

func mustPokedex(species []Species) *Pokedex {
	p, err := NewPokedex(species)
	if err != nil {
		panic(err)
	}
	return p
}

// DefaultPokedex returns the registry over DefaultSpecies.
func DefaultPokedex() *Pokedex { return defaultPokedex }

// Lookup finds a species by name, case-insensitively.
func (p *Pokedex) Lookup(name string) (Species, bool) {
	s, ok := p.byKey[keys.SpeciesKey(name)]
	return s, ok
}

// All returns every species in table order.
func (p *Pokedex) All() []Species {
	out := make([]Species, 0, len(p.order))
	for _, k := range p.order {
		out = append(out, p.byKey[k])
	}
	return out
}

// Types returns the distinct creature types present, sorted by name.
func (p *Pokedex) Types() []Type {
	seen := map[Type]struct{}{}
	out := []Type{}
	for _, k := range p.order {
		t := p.byKey[k].Type
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// NewCreature builds a full-health creature of the given species. An empty
// name uses the species name; level 0 uses the species' default level.
func (p *Pokedex) NewCreature(species, name string, level int) (*Creature, error) {
	s, ok := p.Lookup(species)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpecies, species)
	}
	if level == 0 {
		level = s.DefaultLevel
	}
	if level < 1 || level > MaxLevel {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLevel, level)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.Name
	}
	atk := s.Attack.At(level)
	c := &Creature{
		Name:    name,
		Species: s.Name,
		Type:    s.Type,
		Level:   level,
		MaxHP:   s.HP.At(level),
		Attack:  atk,
		Defense: s.Defense.At(level),
		Speed:   s.Speed.At(level),
		NormalMove: Move{
			Name: TackleName, Type: Normal, Power: atk, Accuracy: 100, Kind: NormalMove,
		},
		SpecialMove: Move{
			Name: s.Special.Name, Type: s.Special.Type, Power: atk, Accuracy: s.Special.Accuracy, Kind: SpecialMove,
		},
	}
	c.hp = c.MaxHP
	return c, nil
}

// NewCreature builds a creature from the default species table.
func NewCreature(species, name string, level int) (*Creature, error) {
	return defaultPokedex.NewCreature(species, name, level)
}

// BuildCreature assembles a full-health creature from explicit stats. Used by
// drivers that carry their own stat blocks (fixtures, imports).
func BuildCreature(name, species string, t Type, level, maxHP, attack, defense, speed int, normal, special Move) *Creature {
	normal.Kind = NormalMove
	special.Kind = SpecialMove
	c := &Creature{
		Name: name, Species: species, Type: t, Level: level,
		MaxHP: maxHP, Attack: attack, Defense: defense, Speed: speed,
		NormalMove: normal, SpecialMove: special,
	}
	if maxHP > 0 {
		c.hp = maxHP
	}
	return c
}
