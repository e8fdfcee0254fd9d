package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tyoppar01/pokemon-battle-v3/internal/engine"
	"github.com/tyoppar01/pokemon-battle-v3/internal/game"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestArena(repo *mockRepo) (*Arena, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	a := NewArena(repo, game.DefaultPokedex())
	a.now = clock.now
	return a, clock
}

func TestArenaCreate_Validation(t *testing.T) {
	repo := newMockRepo()
	ash := repo.seedTrainer("Ash", "Pikachu")
	gary := repo.seedTrainer("Gary", "Squirtle")
	empty := repo.seedTrainer("Nobody")
	a, _ := newTestArena(repo)

	cases := []struct {
		name        string
		caller      string
		left, right string
		want        error
	}{
		{"bad id", ash.ID, "nope", gary.ID, ErrInvalidTrainerID},
		{"same trainer", ash.ID, ash.ID, ash.ID, ErrSameTrainer},
		{"outsider", uuid.NewString(), ash.ID, gary.ID, ErrNotParticipant},
		{"unknown trainer", ash.ID, ash.ID, uuid.NewString(), ErrTrainerNotFound},
		{"empty roster", ash.ID, ash.ID, empty.ID, engine.ErrEmptyTeam},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := a.Create(tc.caller, tc.left, tc.right); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
	if a.Len() != 0 {
		t.Fatalf("rejected battles must not be registered")
	}
}

func TestArena_PlayToVictoryRecordsOnce(t *testing.T) {
	repo := newMockRepo()
	ash := repo.seedTrainer("Ash", "Pikachu")
	gary := repo.seedTrainer("Gary", "Squirtle")
	a, _ := newTestArena(repo)

	v, err := a.Create(gary.ID, ash.ID, gary.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if v.Status != engine.StatusInProgress || v.Turn != 1 || v.LeftUserID != ash.ID {
		t.Fatalf("unexpected view: %+v", v)
	}

	if _, err := a.Attack(gary.ID, v.ID, game.NormalMove); !errors.Is(err, engine.ErrIllegalState) {
		t.Fatalf("expected ErrIllegalState on the wrong turn, got %v", err)
	}
	if _, err := a.Attack(uuid.NewString(), v.ID, game.NormalMove); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}

	v, err = a.Attack(ash.ID, v.ID, game.SpecialMove)
	if err != nil {
		t.Fatalf("attack: %v", err)
	}
	if v.Status != engine.StatusPlayer1Won || v.Winner != "Ash" {
		t.Fatalf("expected Ash to win, got %+v", v.View)
	}
	if len(repo.results) != 1 || repo.results[0] != [2]string{ash.ID, gary.ID} {
		t.Fatalf("expected one recorded result, got %v", repo.results)
	}

	if _, err := a.Attack(gary.ID, v.ID, game.NormalMove); !errors.Is(err, engine.ErrIllegalState) {
		t.Fatalf("expected ErrIllegalState after the end, got %v", err)
	}
	if len(repo.results) != 1 {
		t.Fatalf("result recorded twice: %v", repo.results)
	}

	lines, err := a.Log(v.ID)
	if err != nil || len(lines) != 5 {
		t.Fatalf("log: %v %v", err, lines)
	}
}

func TestArena_Switch(t *testing.T) {
	repo := newMockRepo()
	ash := repo.seedTrainer("Ash", "Pikachu", "Charmander")
	gary := repo.seedTrainer("Gary", "Squirtle", "Bulbasaur")
	a, _ := newTestArena(repo)
	v, err := a.Create(ash.ID, ash.ID, gary.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	right := engine.Right
	if _, err := a.Switch(ash.ID, v.ID, &right, 1); !errors.Is(err, ErrNotYourSide) {
		t.Fatalf("expected ErrNotYourSide, got %v", err)
	}
	bogus := engine.Side(7)
	if _, err := a.Switch(ash.ID, v.ID, &bogus, 1); !errors.Is(err, engine.ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}
	if _, err := a.Switch(ash.ID, v.ID, nil, 0); !errors.Is(err, engine.ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget for the active slot, got %v", err)
	}

	v, err = a.Switch(ash.ID, v.ID, nil, 1)
	if err != nil {
		t.Fatalf("switch: %v", err)
	}
	if v.Turn != 2 || v.CurrentSide != engine.Right || v.Left.ActiveIndex != 1 {
		t.Fatalf("unexpected view after switch: %+v", v.View)
	}

	// Water Gun is super effective on the incoming Charmander.
	v, err = a.Attack(gary.ID, v.ID, game.SpecialMove)
	if err != nil {
		t.Fatalf("attack: %v", err)
	}
	if v.PendingSwitch == nil || *v.PendingSwitch != engine.Left || v.Left.Remaining != 1 {
		t.Fatalf("expected Ash to owe a switch, got %+v", v.View)
	}
}

func TestArena_ForcedSwitchAfterFaint(t *testing.T) {
	repo := newMockRepo()
	ash := repo.seedTrainer("Ash", "Pikachu")
	gary := repo.seedTrainer("Gary", "Squirtle", "Bulbasaur")
	a, _ := newTestArena(repo)
	v, _ := a.Create(ash.ID, ash.ID, gary.ID)

	v, err := a.Attack(ash.ID, v.ID, game.SpecialMove)
	if err != nil {
		t.Fatalf("attack: %v", err)
	}
	if v.PendingSwitch == nil || *v.PendingSwitch != engine.Right {
		t.Fatalf("expected Gary to owe a switch, got %+v", v.View)
	}
	v, err = a.Switch(gary.ID, v.ID, nil, 1)
	if err != nil {
		t.Fatalf("forced switch: %v", err)
	}
	if v.Turn != 1 || v.CurrentSide != engine.Left || v.PendingSwitch != nil {
		t.Fatalf("forced switch must not pass the turn: %+v", v.View)
	}
	if len(repo.results) != 0 {
		t.Fatalf("no result expected yet")
	}
}

func TestArena_SubscribeReceivesViews(t *testing.T) {
	repo := newMockRepo()
	ash := repo.seedTrainer("Ash", "Pikachu")
	gary := repo.seedTrainer("Gary", "Squirtle")
	a, _ := newTestArena(repo)
	v, _ := a.Create(ash.ID, ash.ID, gary.ID)

	ch, cancel, err := a.Subscribe(v.ID)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer cancel()
	first := <-ch
	if first.Turn != 1 || first.Status != engine.StatusInProgress {
		t.Fatalf("unexpected initial view: %+v", first.View)
	}
	if _, err := a.Attack(ash.ID, v.ID, game.NormalMove); err != nil {
		t.Fatalf("attack: %v", err)
	}
	next := <-ch
	if next.Turn != 2 {
		t.Fatalf("expected turn 2, got %d", next.Turn)
	}

	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatalf("channel should be closed after cancel")
	}
	if _, _, err := a.Subscribe("missing"); !errors.Is(err, ErrBattleNotFound) {
		t.Fatalf("expected ErrBattleNotFound, got %v", err)
	}
}

func TestArena_ExpireIdle(t *testing.T) {
	repo := newMockRepo()
	ash := repo.seedTrainer("Ash", "Pikachu")
	gary := repo.seedTrainer("Gary", "Squirtle")
	misty := repo.seedTrainer("Misty", "Squirtle")
	a, clock := newTestArena(repo)

	stale, _ := a.Create(ash.ID, ash.ID, gary.ID)
	ch, cancel, _ := a.Subscribe(stale.ID)
	defer cancel()
	<-ch

	clock.advance(20 * time.Minute)
	fresh, _ := a.Create(misty.ID, misty.ID, gary.ID)
	clock.advance(15 * time.Minute)

	if n := a.Expire(30 * time.Minute); n != 1 {
		t.Fatalf("expected one expired battle, got %d", n)
	}
	if _, err := a.Get(stale.ID); !errors.Is(err, ErrBattleNotFound) {
		t.Fatalf("expected stale battle gone, got %v", err)
	}
	if _, err := a.Get(fresh.ID); err != nil {
		t.Fatalf("fresh battle should survive: %v", err)
	}

	last, ok := <-ch
	if !ok || !last.Expired {
		t.Fatalf("expected a final expired view, got %+v (open=%v)", last, ok)
	}
	if _, ok := <-ch; ok {
		t.Fatalf("subscriber channel should be closed")
	}
	if len(repo.results) != 0 {
		t.Fatalf("expired battles must not record results")
	}
}

func TestArena_RunSweeperStopsWithContext(t *testing.T) {
	repo := newMockRepo()
	a, _ := newTestArena(repo)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.RunSweeper(ctx, time.Millisecond, time.Minute)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("sweeper did not stop")
	}
}

func TestArena_ConcurrentActionsAreSerialised(t *testing.T) {
	repo := newMockRepo()
	ash := repo.seedTrainer("Ash", "Snorlax")
	gary := repo.seedTrainer("Gary", "Snorlax")
	a, _ := newTestArena(repo)
	v, _ := a.Create(ash.ID, ash.ID, gary.ID)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); _, _ = a.Attack(ash.ID, v.ID, game.NormalMove) }()
		go func() { defer wg.Done(); _, _ = a.Attack(gary.ID, v.ID, game.NormalMove) }()
	}
	wg.Wait()

	got, _ := a.Get(v.ID)
	lines, _ := a.Log(v.ID)
	if got.Status == engine.StatusInProgress && len(lines) != got.Turn {
		t.Fatalf("each accepted attack adds one line: turn %d, %d lines", got.Turn, len(lines))
	}
}
