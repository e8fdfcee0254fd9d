package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Type is the elemental type of a creature or a move.
type Type int

const (
	Normal Type = iota
	Fire
	Water
	Grass
	Electric
	Psychic
	Ghost
	Steel
	Ground
	Rock
	Flying
	Ice
	Fighting
	Poison
	Dark
	Fairy
)

var ErrUnknownType = errors.New("unknown type")

var typeNames = [...]string{
	Normal:   "Normal",
	Fire:     "Fire",
	Water:    "Water",
	Grass:    "Grass",
	Electric: "Electric",
	Psychic:  "Psychic",
	Ghost:    "Ghost",
	Steel:    "Steel",
	Ground:   "Ground",
	Rock:     "Rock",
	Flying:   "Flying",
	Ice:      "Ice",
	Fighting: "Fighting",
	Poison:   "Poison",
	Dark:     "Dark",
	Fairy:    "Fairy",
}

// AllTypes lists every type in declaration order.
func AllTypes() []Type {
	out := make([]Type, len(typeNames))
	for i := range typeNames {
		out[i] = Type(i)
	}
	return out
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// Valid reports whether t is one of the declared types.
func (t Type) Valid() bool {
	return t >= 0 && int(t) < len(typeNames)
}

// ParseType resolves a type name, ignoring case and surrounding spaces.
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	for i, n := range typeNames {
		if strings.EqualFold(n, s) {
			return Type(i), nil
		}
	}
	return Normal, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

func (t Type) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, int(t))
	}
	return json.Marshal(t.String())
}

func (t *Type) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseType(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
