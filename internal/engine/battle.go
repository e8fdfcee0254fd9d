package engine

import (
	"errors"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/tyoppar01/pokemon-battle-v3/internal/game"
)

var (
	ErrIllegalState  = errors.New("illegal battle state")
	ErrInvalidTarget = errors.New("invalid switch target")
	ErrEmptyTeam     = errors.New("team has no creatures")
)

// Side identifies one of the two trainers in a battle.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) Other() Side {
	if s == Left {
		return Right
	}
	return Left
}

func (s Side) Valid() bool { return s == Left || s == Right }

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// ParseSide accepts "left" or "right".
func ParseSide(s string) (Side, error) {
	switch s {
	case "left", "Left":
		return Left, nil
	case "right", "Right":
		return Right, nil
	}
	return Left, fmt.Errorf("unknown side %q", s)
}

func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Side) UnmarshalText(b []byte) error {
	v, err := ParseSide(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Trainer is a named participant and the team it brings.
type Trainer struct {
	Name string
	Team *game.Team
}

// Battle is a single-threaded, deterministic two-trainer battle. It does no
// I/O; callers that share a Battle across goroutines must serialise access.
type Battle struct {
	trainers [2]Trainer
	status   *fsm.FSM
	turn     int
	current  Side

	// owesSwitch is set when the active creature of pending fainted and the
	// side still has a conscious creature to bring in.
	owesSwitch bool
	pending    Side

	log battleLog
}

// New prepares a battle in the not-started state.
func New(left, right Trainer) *Battle {
	return &Battle{
		trainers: [2]Trainer{left, right},
		status:   newStatusMachine(),
		current:  Left,
	}
}

func (b *Battle) Status() Status { return Status(b.status.Current()) }

func (b *Battle) Turn() int { return b.turn }

func (b *Battle) CurrentSide() Side { return b.current }

// Trainer returns the participant on side s.
func (b *Battle) Trainer(s Side) Trainer { return b.trainers[s] }

// PendingSwitch reports which side must bring in a new creature, if any.
func (b *Battle) PendingSwitch() (Side, bool) {
	return b.pending, b.owesSwitch
}

// Winner returns the winning side once the battle is over.
func (b *Battle) Winner() (Side, bool) {
	switch b.Status() {
	case StatusPlayer1Won:
		return Left, true
	case StatusPlayer2Won:
		return Right, true
	}
	return Left, false
}

// Start puts both lead creatures into play and opens turn 1 for Left.
func (b *Battle) Start() error {
	if st := b.Status(); st != StatusNotStarted {
		return fmt.Errorf("%w: cannot start a battle that is %s", ErrIllegalState, st)
	}
	for _, s := range []Side{Left, Right} {
		t := b.trainers[s]
		if t.Team == nil || t.Team.Len() == 0 {
			return fmt.Errorf("%w: %s has no creatures", ErrEmptyTeam, t.Name)
		}
		if !t.Team.HasAlive() {
			return fmt.Errorf("%w: %s has no conscious creature", ErrEmptyTeam, t.Name)
		}
	}
	for _, s := range []Side{Left, Right} {
		team := b.trainers[s].Team
		team.ResetActive()
		if team.Active().Fainted() {
			_, i := team.FirstAlive()
			if err := team.SetActive(i); err != nil {
				panic(fmt.Sprintf("engine: lead slot for %s: %v", s, err))
			}
		}
	}
	fire(b.status, eventStart)
	b.turn = 1
	b.current = Left
	b.log.addf(b.turn, "Battle started! %s vs %s", b.trainers[Left].Name, b.trainers[Right].Name)
	return nil
}

// Attack resolves the current side's move of the given kind against the
// opposing active creature.
func (b *Battle) Attack(kind game.MoveKind) error {
	if err := b.requireInProgress(); err != nil {
		return err
	}
	if b.owesSwitch {
		return fmt.Errorf("%w: %s must switch in a creature first", ErrIllegalState, b.trainers[b.pending].Name)
	}
	if kind != game.NormalMove && kind != game.SpecialMove {
		return fmt.Errorf("%w: unknown move kind %d", ErrIllegalState, int(kind))
	}
	atkSide, defSide := b.current, b.current.Other()
	attacker := b.trainers[atkSide].Team.Active()
	defender := b.trainers[defSide].Team.Active()
	if attacker.Fainted() {
		return fmt.Errorf("%w: %s has fainted", ErrIllegalState, attacker.Name)
	}

	damage, tier := CalculateDamage(attacker, defender, kind)
	defender.ApplyDamage(damage)

	move := attacker.Move(kind)
	b.log.addf(b.turn, "%s's %s used %s for %d damage!", b.trainers[atkSide].Name, attacker.Name, move.Name, damage)
	if kind == game.SpecialMove && tier != game.NormalEffective {
		b.log.add(b.turn, tier.Message())
	}

	if defender.Fainted() {
		b.log.addf(b.turn, "%s's %s was defeated!", b.trainers[defSide].Name, defender.Name)
		b.checkBattleEnd(defSide)
		return nil
	}
	b.advance()
	return nil
}

// Switch brings the creature in slot index into play for side. A voluntary
// switch uses up the side's turn; a forced switch after a faint does not,
// and the side that caused the faint moves next.
func (b *Battle) Switch(side Side, index int) error {
	if err := b.requireInProgress(); err != nil {
		return err
	}
	if !side.Valid() {
		return fmt.Errorf("%w: unknown side %d", ErrInvalidTarget, int(side))
	}
	forced := b.owesSwitch
	switch {
	case forced && side != b.pending:
		return fmt.Errorf("%w: waiting for %s to switch", ErrIllegalState, b.trainers[b.pending].Name)
	case !forced && side != b.current:
		return fmt.Errorf("%w: it is not %s's turn", ErrIllegalState, b.trainers[side].Name)
	}

	team := b.trainers[side].Team
	target := team.At(index)
	switch {
	case target == nil:
		return fmt.Errorf("%w: slot %d out of range [0,%d)", ErrInvalidTarget, index, team.Len())
	case index == team.ActiveIndex():
		return fmt.Errorf("%w: %s is already in battle", ErrInvalidTarget, target.Name)
	case target.Fainted():
		return fmt.Errorf("%w: %s has fainted", ErrInvalidTarget, target.Name)
	}
	if err := team.SetActive(index); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}

	b.log.addf(b.turn, "%s switched to %s!", b.trainers[side].Name, target.Name)
	if forced {
		b.owesSwitch = false
		return nil
	}
	b.advance()
	return nil
}

// SwitchTargets lists the slots side could switch to right now: conscious
// creatures other than the active one.
func (b *Battle) SwitchTargets(side Side) []int {
	if !side.Valid() {
		return nil
	}
	team := b.trainers[side].Team
	if team == nil {
		return nil
	}
	out := []int{}
	for i := 0; i < team.Len(); i++ {
		if i != team.ActiveIndex() && !team.At(i).Fainted() {
			out = append(out, i)
		}
	}
	return out
}

// Log returns a copy of the formatted log lines in order.
func (b *Battle) Log() []string { return b.log.lines() }

// Entries returns a copy of the structured log entries.
func (b *Battle) Entries() []Entry { return b.log.copyEntries() }

// Transcript renders the whole log as newline-separated text.
func (b *Battle) Transcript() string { return b.log.joined() }

func (b *Battle) requireInProgress() error {
	if st := b.Status(); st != StatusInProgress {
		return fmt.Errorf("%w: battle is %s", ErrIllegalState, st)
	}
	return nil
}

// advance hands the move to the other side and opens the next turn.
func (b *Battle) advance() {
	b.current = b.current.Other()
	b.turn++
}

// checkBattleEnd runs after loser's active creature fainted. Either loser
// owes a forced switch or the opponent has won.
func (b *Battle) checkBattleEnd(loser Side) {
	if b.trainers[loser].Team.HasAlive() {
		b.owesSwitch = true
		b.pending = loser
		return
	}
	winner := loser.Other()
	fire(b.status, winEvent(winner))
	b.log.addf(b.turn, "%s wins the battle!", b.trainers[winner].Name)
}
