package engine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
)

// Status is the lifecycle state of a battle.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusPlayer1Won Status = "player1_won"
	StatusPlayer2Won Status = "player2_won"
)

// Terminal reports whether no further action can change the battle.
func (s Status) Terminal() bool {
	return s == StatusPlayer1Won || s == StatusPlayer2Won
}

const (
	eventStart     = "start"
	eventLeftWins  = "left_wins"
	eventRightWins = "right_wins"
)

// newStatusMachine wires the only legal transitions:
// not_started -> in_progress -> {player1_won, player2_won}.
func newStatusMachine() *fsm.FSM {
	return fsm.NewFSM(
		string(StatusNotStarted),
		fsm.Events{
			{Name: eventStart, Src: []string{string(StatusNotStarted)}, Dst: string(StatusInProgress)},
			{Name: eventLeftWins, Src: []string{string(StatusInProgress)}, Dst: string(StatusPlayer1Won)},
			{Name: eventRightWins, Src: []string{string(StatusInProgress)}, Dst: string(StatusPlayer2Won)},
		},
		fsm.Callbacks{},
	)
}

// fire runs a transition that the caller already validated. A failure here
// means the battle's bookkeeping is inconsistent, so it aborts.
func fire(m *fsm.FSM, event string) {
	if err := m.Event(context.Background(), event); err != nil {
		panic(fmt.Sprintf("engine: status transition %q from %q: %v", event, m.Current(), err))
	}
}

func winEvent(winner Side) string {
	if winner == Left {
		return eventLeftWins
	}
	return eventRightWins
}
