package game

import (
	"errors"
	"fmt"
)

// MaxTeamSize is the largest roster a trainer may bring into battle.
const MaxTeamSize = 6

var (
	ErrTeamFull    = errors.New("team already has six creatures")
	ErrInvalidSlot = errors.New("invalid team slot")
)

// Team is an ordered roster with one active slot. Order is significant: slot
// 0 leads when a battle starts.
type Team struct {
	members []*Creature
	active  int
}

// NewTeam builds a team from creatures in order.
func NewTeam(creatures ...*Creature) (*Team, error) {
	t := &Team{}
	for _, c := range creatures {
		if err := t.Add(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Add appends a creature to the end of the roster.
func (t *Team) Add(c *Creature) error {
	if c == nil {
		return fmt.Errorf("%w: nil creature", ErrInvalidSlot)
	}
	if len(t.members) >= MaxTeamSize {
		return ErrTeamFull
	}
	t.members = append(t.members, c)
	return nil
}

func (t *Team) Len() int { return len(t.members) }

// At returns the creature in slot i, or nil when i is out of range.
func (t *Team) At(i int) *Creature {
	if i < 0 || i >= len(t.members) {
		return nil
	}
	return t.members[i]
}

func (t *Team) ActiveIndex() int { return t.active }

// Active returns the creature in the active slot, or nil for an empty team.
func (t *Team) Active() *Creature { return t.At(t.active) }

// SetActive moves the active slot to i, which must hold a conscious creature.
func (t *Team) SetActive(i int) error {
	c := t.At(i)
	if c == nil {
		return fmt.Errorf("%w: slot %d out of range [0,%d)", ErrInvalidSlot, i, len(t.members))
	}
	if c.Fainted() {
		return fmt.Errorf("%w: %s in slot %d has fainted", ErrInvalidSlot, c.Name, i)
	}
	t.active = i
	return nil
}

// ResetActive returns the active slot to the lead position without checks.
func (t *Team) ResetActive() { t.active = 0 }

// Alive returns the conscious creatures in roster order.
func (t *Team) Alive() []*Creature {
	out := make([]*Creature, 0, len(t.members))
	for _, c := range t.members {
		if !c.Fainted() {
			out = append(out, c)
		}
	}
	return out
}

func (t *Team) HasAlive() bool {
	for _, c := range t.members {
		if !c.Fainted() {
			return true
		}
	}
	return false
}

// FirstAlive returns the lowest-index conscious creature and its slot, or
// (nil, -1) when the whole team has fainted.
func (t *Team) FirstAlive() (*Creature, int) {
	for i, c := range t.members {
		if !c.Fainted() {
			return c, i
		}
	}
	return nil, -1
}

// Defeated reports whether every creature has fainted.
func (t *Team) Defeated() bool { return !t.HasAlive() }

// Snapshots copies every member for read-only use.
func (t *Team) Snapshots() []CreatureSnapshot {
	out := make([]CreatureSnapshot, len(t.members))
	for i, c := range t.members {
		out[i] = c.Snapshot()
	}
	return out
}
