package engine

import "github.com/tyoppar01/pokemon-battle-v3/internal/game"

// SideView is the read-only state of one trainer.
type SideView struct {
	Trainer       string                  `json:"trainer"`
	ActiveIndex   int                     `json:"active_index"`
	Active        *game.CreatureSnapshot  `json:"active"`
	Team          []game.CreatureSnapshot `json:"team"`
	Remaining     int                     `json:"remaining"`
	SwitchTargets []int                   `json:"switch_targets"`
}

// View is a detached projection of a battle. Mutating it never affects the
// battle it came from.
type View struct {
	Status        Status   `json:"status"`
	Turn          int      `json:"turn"`
	CurrentSide   Side     `json:"current_side"`
	PendingSwitch *Side    `json:"pending_switch,omitempty"`
	Winner        string   `json:"winner,omitempty"`
	Left          SideView `json:"left"`
	Right         SideView `json:"right"`
	Log           []string `json:"log"`
}

func (b *Battle) View() View {
	v := View{
		Status:      b.Status(),
		Turn:        b.turn,
		CurrentSide: b.current,
		Left:        b.sideView(Left),
		Right:       b.sideView(Right),
		Log:         b.log.lines(),
	}
	if s, ok := b.PendingSwitch(); ok {
		v.PendingSwitch = &s
	}
	if w, ok := b.Winner(); ok {
		v.Winner = b.trainers[w].Name
	}
	return v
}

// Side returns the view of side s.
func (v View) Side(s Side) SideView {
	if s == Right {
		return v.Right
	}
	return v.Left
}

func (b *Battle) sideView(s Side) SideView {
	t := b.trainers[s]
	sv := SideView{Trainer: t.Name, SwitchTargets: []int{}}
	if t.Team == nil {
		return sv
	}
	sv.ActiveIndex = t.Team.ActiveIndex()
	if c := t.Team.Active(); c != nil {
		snap := c.Snapshot()
		sv.Active = &snap
	}
	sv.Team = t.Team.Snapshots()
	sv.Remaining = len(t.Team.Alive())
	if b.Status() == StatusInProgress {
		sv.SwitchTargets = b.SwitchTargets(s)
	}
	return sv
}
