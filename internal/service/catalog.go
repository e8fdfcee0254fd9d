package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tyoppar01/pokemon-battle-v3/internal/dedupe"
	"github.com/tyoppar01/pokemon-battle-v3/internal/game"
)

var (
	ErrSpeciesNotFound = errors.New("pokemon not found")
	ErrInvalidStat     = errors.New("stat must be one of hp, attack, defense, speed")
)

// SpeciesCounter reports how often each species appears in stored rosters.
type SpeciesCounter interface {
	CountCreaturesBySpecies() (map[string]int64, error)
}

// PlayableSpecies is a species as it plays at its default level.
type PlayableSpecies struct {
	Name        string    `json:"name"`
	Type        game.Type `json:"type"`
	Description string    `json:"description"`
	Level       int       `json:"level"`
	HP          int       `json:"hp"`
	Attack      int       `json:"attack"`
	Defense     int       `json:"defense"`
	Speed       int       `json:"speed"`
	NormalMove  game.Move `json:"normal_move"`
	SpecialMove game.Move `json:"special_move"`
}

// CatalogStatistics summarises the species table and roster usage.
type CatalogStatistics struct {
	TotalSpecies   int              `json:"total_species"`
	SpeciesPerType map[string]int   `json:"species_per_type"`
	AverageHP      float64          `json:"average_hp"`
	AverageAttack  float64          `json:"average_attack"`
	AverageDefense float64          `json:"average_defense"`
	AverageSpeed   float64          `json:"average_speed"`
	Owned          map[string]int64 `json:"owned"`
	MostOwned      string           `json:"most_owned,omitempty"`
}

// Catalog answers read-only questions about the species table.
type Catalog struct {
	pokedex  *game.Pokedex
	counter  SpeciesCounter
	playable []PlayableSpecies
}

func NewCatalog(pokedex *game.Pokedex, counter SpeciesCounter) *Catalog {
	c := &Catalog{pokedex: pokedex, counter: counter}
	for _, s := range pokedex.All() {
		cr, err := pokedex.NewCreature(s.Name, "", 0)
		if err != nil {
			// NewPokedex already validated every row.
			panic(fmt.Sprintf("catalog: species %s: %v", s.Name, err))
		}
		c.playable = append(c.playable, PlayableSpecies{
			Name:        s.Name,
			Type:        s.Type,
			Description: s.Description,
			Level:       cr.Level,
			HP:          cr.MaxHP,
			Attack:      cr.Attack,
			Defense:     cr.Defense,
			Speed:       cr.Speed,
			NormalMove:  cr.NormalMove,
			SpecialMove: cr.SpecialMove,
		})
	}
	return c
}

// Playable returns every species in table order.
func (c *Catalog) Playable() []PlayableSpecies {
	out := make([]PlayableSpecies, len(c.playable))
	copy(out, c.playable)
	return out
}

func (c *Catalog) ByName(name string) (PlayableSpecies, error) {
	s, ok := c.pokedex.Lookup(name)
	if !ok {
		return PlayableSpecies{}, ErrSpeciesNotFound
	}
	for _, p := range c.playable {
		if p.Name == s.Name {
			return p, nil
		}
	}
	return PlayableSpecies{}, ErrSpeciesNotFound
}

func (c *Catalog) Exists(name string) bool {
	_, ok := c.pokedex.Lookup(name)
	return ok
}

func (c *Catalog) Types() []game.Type { return c.pokedex.Types() }

// FilterByType returns the species of the named type. An unknown type name
// fails with game.ErrUnknownType; a known type with no species is empty.
func (c *Catalog) FilterByType(typeName string) ([]PlayableSpecies, error) {
	t, err := game.ParseType(typeName)
	if err != nil {
		return nil, err
	}
	out := []PlayableSpecies{}
	for _, p := range c.playable {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out, nil
}

func statOf(stat string) (func(PlayableSpecies) int, error) {
	switch strings.ToLower(strings.TrimSpace(stat)) {
	case "hp":
		return func(p PlayableSpecies) int { return p.HP }, nil
	case "attack":
		return func(p PlayableSpecies) int { return p.Attack }, nil
	case "defense":
		return func(p PlayableSpecies) int { return p.Defense }, nil
	case "speed":
		return func(p PlayableSpecies) int { return p.Speed }, nil
	}
	return nil, ErrInvalidStat
}

// SortByStat orders species by the stat, highest first. Ties keep table order.
func (c *Catalog) SortByStat(stat string) ([]PlayableSpecies, error) {
	get, err := statOf(stat)
	if err != nil {
		return nil, err
	}
	out := c.Playable()
	sort.SliceStable(out, func(i, j int) bool { return get(out[i]) > get(out[j]) })
	return out, nil
}

// Statistics computes the catalog summary. Concurrent callers share one
// computation.
func (c *Catalog) Statistics() (*CatalogStatistics, error) {
	v, err, _ := dedupe.StatsGroup.Do(dedupe.KeyCatalogStatistics, func() (interface{}, error) {
		return c.computeStatistics()
	})
	if err != nil {
		return nil, err
	}
	return v.(*CatalogStatistics), nil
}

func (c *Catalog) computeStatistics() (*CatalogStatistics, error) {
	st := &CatalogStatistics{
		TotalSpecies:   len(c.playable),
		SpeciesPerType: map[string]int{},
		Owned:          map[string]int64{},
	}
	if st.TotalSpecies == 0 {
		return st, nil
	}
	var hp, atk, def, spd int
	for _, p := range c.playable {
		st.SpeciesPerType[p.Type.String()]++
		hp += p.HP
		atk += p.Attack
		def += p.Defense
		spd += p.Speed
	}
	n := float64(st.TotalSpecies)
	st.AverageHP = float64(hp) / n
	st.AverageAttack = float64(atk) / n
	st.AverageDefense = float64(def) / n
	st.AverageSpeed = float64(spd) / n

	if c.counter != nil {
		counts, err := c.counter.CountCreaturesBySpecies()
		if err != nil {
			return nil, err
		}
		var best int64
		// Walk table order so ties resolve the same way every time.
		for _, p := range c.playable {
			owned := counts[p.Name]
			st.Owned[p.Name] = owned
			if owned > best {
				best = owned
				st.MostOwned = p.Name
			}
		}
	}
	return st, nil
}
