package game

import "fmt"

// MoveKind separates untyped normal attacks from typed special attacks.
type MoveKind int

const (
	NormalMove MoveKind = iota
	SpecialMove
)

func (k MoveKind) String() string {
	if k == SpecialMove {
		return "special"
	}
	return "normal"
}

// ParseMoveKind accepts "normal" or "special".
func ParseMoveKind(s string) (MoveKind, error) {
	switch s {
	case "normal", "Normal":
		return NormalMove, nil
	case "special", "Special":
		return SpecialMove, nil
	}
	return NormalMove, fmt.Errorf("unknown move kind %q", s)
}

func (k MoveKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *MoveKind) UnmarshalText(b []byte) error {
	v, err := ParseMoveKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Move is immutable move metadata. Accuracy is informational only.
type Move struct {
	Name     string   `json:"name"`
	Type     Type     `json:"type"`
	Power    int      `json:"power"`
	Accuracy int      `json:"accuracy"`
	Kind     MoveKind `json:"kind"`
}

// Creature is a combat entity. Current HP is the only field that changes
// during a battle and it is only reachable through ApplyDamage.
type Creature struct {
	Name        string
	Species     string
	Type        Type
	Level       int
	MaxHP       int
	Attack      int
	Defense     int
	Speed       int
	NormalMove  Move
	SpecialMove Move

	hp int
}

// CurrentHP returns the remaining hit points, always within [0, MaxHP].
func (c *Creature) CurrentHP() int { return c.hp }

// Fainted reports whether the creature has no hit points left.
func (c *Creature) Fainted() bool { return c.hp == 0 }

// ApplyDamage lowers current HP by n, clamping at zero.
func (c *Creature) ApplyDamage(n int) {
	if n <= 0 {
		return
	}
	c.hp -= n
	if c.hp < 0 {
		c.hp = 0
	}
}

// Move returns the creature's move of the given kind.
func (c *Creature) Move(kind MoveKind) Move {
	if kind == SpecialMove {
		return c.SpecialMove
	}
	return c.NormalMove
}

// CreatureSnapshot is a read-only copy of a creature, used by views and DTOs.
type CreatureSnapshot struct {
	Name        string `json:"name"`
	Species     string `json:"species"`
	Type        Type   `json:"type"`
	Level       int    `json:"level"`
	MaxHP       int    `json:"max_hp"`
	CurrentHP   int    `json:"current_hp"`
	Attack      int    `json:"attack"`
	Defense     int    `json:"defense"`
	Speed       int    `json:"speed"`
	NormalMove  Move   `json:"normal_move"`
	SpecialMove Move   `json:"special_move"`
	Fainted     bool   `json:"fainted"`
}

func (c *Creature) Snapshot() CreatureSnapshot {
	return CreatureSnapshot{
		Name:        c.Name,
		Species:     c.Species,
		Type:        c.Type,
		Level:       c.Level,
		MaxHP:       c.MaxHP,
		CurrentHP:   c.hp,
		Attack:      c.Attack,
		Defense:     c.Defense,
		Speed:       c.Speed,
		NormalMove:  c.NormalMove,
		SpecialMove: c.SpecialMove,
		Fainted:     c.Fainted(),
	}
}
