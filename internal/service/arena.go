package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tyoppar01/pokemon-battle-v3/internal/constants"
	"github.com/tyoppar01/pokemon-battle-v3/internal/engine"
	"github.com/tyoppar01/pokemon-battle-v3/internal/game"
	"github.com/tyoppar01/pokemon-battle-v3/internal/logging"
)

var (
	ErrBattleNotFound = errors.New("battle not found")
	ErrNotParticipant = errors.New("only participants may act in this battle")
	ErrNotYourSide    = errors.New("cannot act for the opposing trainer")
	ErrSameTrainer    = errors.New("a trainer cannot battle themselves")
)

// ArenaRepo is what the arena needs from storage: rosters to build teams
// from and a place to record results.
type ArenaRepo interface {
	GetTrainer(id string) (*game.Trainer, error)
	RecordBattleResult(winnerID, loserID string) error
}

// MatchView is a battle view plus the identity of the battle and its
// participants.
type MatchView struct {
	ID          string `json:"id"`
	LeftUserID  string `json:"left_user_id"`
	RightUserID string `json:"right_user_id"`
	Expired     bool   `json:"expired,omitempty"`
	engine.View
}

// match owns one engine.Battle. The battle itself is single-threaded, so
// every access goes through mu.
type match struct {
	mu         sync.Mutex
	id         string
	userIDs    [2]string
	battle     *engine.Battle
	lastAction time.Time
	recorded   bool
	expired    bool
	nextSub    int
	subs       map[int]chan MatchView
}

func (m *match) view() MatchView {
	return MatchView{
		ID:          m.id,
		LeftUserID:  m.userIDs[engine.Left],
		RightUserID: m.userIDs[engine.Right],
		Expired:     m.expired,
		View:        m.battle.View(),
	}
}

func (m *match) sideOf(userID string) (engine.Side, bool) {
	switch userID {
	case m.userIDs[engine.Left]:
		return engine.Left, true
	case m.userIDs[engine.Right]:
		return engine.Right, true
	}
	return engine.Left, false
}

// broadcast hands v to every subscriber. A slow subscriber loses stale
// views, never the latest one.
func (m *match) broadcast(v MatchView) {
	for _, ch := range m.subs {
		select {
		case ch <- v:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- v:
			default:
			}
		}
	}
}

func (m *match) closeSubscribers() {
	for id, ch := range m.subs {
		close(ch)
		delete(m.subs, id)
	}
}

// Arena hosts the live battles of the server.
type Arena struct {
	repo    ArenaRepo
	pokedex *game.Pokedex
	now     func() time.Time
	log     logging.Logger

	mu      sync.RWMutex
	matches map[string]*match
}

func NewArena(repo ArenaRepo, pokedex *game.Pokedex) *Arena {
	return &Arena{
		repo:    repo,
		pokedex: pokedex,
		now:     time.Now,
		log:     logging.With(logging.Fields{constants.LogFieldComponent: "arena"}),
		matches: map[string]*match{},
	}
}

// Create starts a battle between two stored trainers. The caller must be
// one of them.
func (a *Arena) Create(callerID, leftID, rightID string) (MatchView, error) {
	for _, id := range []string{leftID, rightID} {
		if err := ValidateTrainerID(id); err != nil {
			return MatchView{}, err
		}
	}
	if leftID == rightID {
		return MatchView{}, ErrSameTrainer
	}
	if callerID != leftID && callerID != rightID {
		return MatchView{}, ErrNotParticipant
	}

	var trainers [2]engine.Trainer
	for i, id := range []string{leftID, rightID} {
		t, err := a.repo.GetTrainer(id)
		if err != nil {
			return MatchView{}, mapNotFound(err, ErrTrainerNotFound)
		}
		team, err := BuildTeam(a.pokedex, t)
		if err != nil {
			return MatchView{}, err
		}
		trainers[i] = engine.Trainer{Name: t.Name, Team: team}
	}

	b := engine.New(trainers[engine.Left], trainers[engine.Right])
	if err := b.Start(); err != nil {
		return MatchView{}, err
	}
	m := &match{
		id:         uuid.NewString(),
		userIDs:    [2]string{leftID, rightID},
		battle:     b,
		lastAction: a.now(),
		subs:       map[int]chan MatchView{},
	}

	a.mu.Lock()
	a.matches[m.id] = m
	a.mu.Unlock()

	a.log.Info("battle created", logging.Fields{constants.LogFieldBattleID: m.id, "left_user_id": leftID, "right_user_id": rightID})
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view(), nil
}

func (a *Arena) lookup(id string) (*match, error) {
	a.mu.RLock()
	m, ok := a.matches[id]
	a.mu.RUnlock()
	if !ok {
		return nil, ErrBattleNotFound
	}
	return m, nil
}

func (a *Arena) Get(id string) (MatchView, error) {
	m, err := a.lookup(id)
	if err != nil {
		return MatchView{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view(), nil
}

// Log returns the formatted battle log.
func (a *Arena) Log(id string) ([]string, error) {
	m, err := a.lookup(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.battle.Log(), nil
}

// Attack uses the caller's move of the given kind. It is only accepted on
// the caller's own turn.
func (a *Arena) Attack(callerID, id string, kind game.MoveKind) (MatchView, error) {
	return a.act(callerID, id, func(m *match, side engine.Side) error {
		if m.battle.Status() == engine.StatusInProgress && side != m.battle.CurrentSide() {
			return fmt.Errorf("%w: it is not your turn", engine.ErrIllegalState)
		}
		return m.battle.Attack(kind)
	})
}

// Switch brings the caller's creature in slot index into play. side may be
// nil; when given it must be the caller's own side.
func (a *Arena) Switch(callerID, id string, side *engine.Side, index int) (MatchView, error) {
	return a.act(callerID, id, func(m *match, own engine.Side) error {
		if side != nil && *side != own {
			if !side.Valid() {
				return fmt.Errorf("%w: unknown side %d", engine.ErrInvalidTarget, int(*side))
			}
			return ErrNotYourSide
		}
		return m.battle.Switch(own, index)
	})
}

func (a *Arena) act(callerID, id string, fn func(*match, engine.Side) error) (MatchView, error) {
	m, err := a.lookup(id)
	if err != nil {
		return MatchView{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.expired {
		return MatchView{}, ErrBattleNotFound
	}
	side, ok := m.sideOf(callerID)
	if !ok {
		return MatchView{}, ErrNotParticipant
	}
	if err := fn(m, side); err != nil {
		return MatchView{}, err
	}
	m.lastAction = a.now()
	a.recordResult(m)
	v := m.view()
	m.broadcast(v)
	return v, nil
}

// recordResult writes the statistics of a finished battle. It runs at most
// once per battle; a storage failure is logged and not retried.
func (a *Arena) recordResult(m *match) {
	if m.recorded {
		return
	}
	winner, done := m.battle.Winner()
	if !done {
		return
	}
	m.recorded = true
	winnerID, loserID := m.userIDs[winner], m.userIDs[winner.Other()]
	fields := logging.Fields{constants.LogFieldBattleID: m.id, "winner_id": winnerID, "loser_id": loserID, constants.LogFieldTurn: m.battle.Turn()}
	if err := a.repo.RecordBattleResult(winnerID, loserID); err != nil {
		a.log.Error("failed to record battle result", err, fields)
		return
	}
	a.log.Info("battle finished", fields)
}

// Subscribe returns a channel that receives the current view at once and a
// fresh view after every accepted action. The channel is closed by cancel
// or when the battle expires.
func (a *Arena) Subscribe(id string) (<-chan MatchView, func(), error) {
	m, err := a.lookup(id)
	if err != nil {
		return nil, nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.expired {
		return nil, nil, ErrBattleNotFound
	}
	ch := make(chan MatchView, 4)
	key := m.nextSub
	m.nextSub++
	m.subs[key] = ch
	ch <- m.view()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if c, ok := m.subs[key]; ok {
				close(c)
				delete(m.subs, key)
			}
		})
	}
	return ch, cancel, nil
}

// Len reports how many battles are hosted.
func (a *Arena) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.matches)
}

// Expire drops battles with no accepted action for longer than idle.
// Unfinished battles are abandoned without a result; their subscribers get a
// final view marked expired. It returns how many battles were dropped.
func (a *Arena) Expire(idle time.Duration) int {
	cutoff := a.now().Add(-idle)
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for id, m := range a.matches {
		m.mu.Lock()
		if m.lastAction.After(cutoff) {
			m.mu.Unlock()
			continue
		}
		m.expired = true
		if !m.battle.Status().Terminal() {
			a.log.Warn("idle battle expired", logging.Fields{constants.LogFieldBattleID: id, constants.LogFieldTurn: m.battle.Turn()})
			m.broadcast(m.view())
		}
		m.closeSubscribers()
		m.mu.Unlock()
		delete(a.matches, id)
		n++
	}
	return n
}

// RunSweeper expires idle battles every interval until ctx is done.
func (a *Arena) RunSweeper(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := a.Expire(idle); n > 0 {
				a.log.Info("idle sweep finished", logging.Fields{constants.LogFieldCount: n})
			}
		}
	}
}
