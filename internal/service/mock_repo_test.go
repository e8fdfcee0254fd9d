package service

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/tyoppar01/pokemon-battle-v3/internal/game"
	"github.com/tyoppar01/pokemon-battle-v3/internal/storage"
)

// mockRepo keeps trainers in memory and records battle results.
type mockRepo struct {
	mu       sync.Mutex
	trainers map[string]*game.Trainer
	results  [][2]string
	counts   map[string]int64
	countErr error
	calls    int
}

func newMockRepo() *mockRepo {
	return &mockRepo{trainers: map[string]*game.Trainer{}}
}

func (m *mockRepo) CreateTrainer(t *game.Trainer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	cp := *t
	m.trainers[t.ID] = &cp
	return nil
}

func (m *mockRepo) GetTrainer(id string) (*game.Trainer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.trainers[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *t
	cp.Creatures = append([]game.OwnedCreature(nil), t.Creatures...)
	return &cp, nil
}

func (m *mockRepo) ListTrainers() ([]game.Trainer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []game.Trainer
	for _, t := range m.trainers {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockRepo) UpdateTrainer(t *game.Trainer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.trainers[t.ID]
	if !ok {
		return storage.ErrNotFound
	}
	cur.Name, cur.Gender = t.Name, t.Gender
	return nil
}

func (m *mockRepo) DeleteTrainer(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trainers[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.trainers, id)
	return nil
}

func (m *mockRepo) AddCreature(trainerID string, c *game.OwnedCreature, limit int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.trainers[trainerID]
	if !ok {
		return storage.ErrNotFound
	}
	if len(t.Creatures) >= limit {
		return game.ErrTeamFull
	}
	c.TrainerID = trainerID
	c.Slot = len(t.Creatures)
	t.Creatures = append(t.Creatures, *c)
	return nil
}

func (m *mockRepo) RemoveCreature(trainerID string, slot int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.trainers[trainerID]
	if !ok || slot < 0 || slot >= len(t.Creatures) {
		return storage.ErrNotFound
	}
	t.Creatures = append(t.Creatures[:slot], t.Creatures[slot+1:]...)
	for i := range t.Creatures {
		t.Creatures[i].Slot = i
	}
	return nil
}

func (m *mockRepo) ListCreatures(trainerID string) ([]game.OwnedCreature, error) {
	t, err := m.GetTrainer(trainerID)
	if err != nil {
		return nil, err
	}
	return t.Creatures, nil
}

func (m *mockRepo) RecordBattleResult(winnerID, loserID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, [2]string{winnerID, loserID})
	return nil
}

func (m *mockRepo) CountCreaturesBySpecies() (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.counts, m.countErr
}

// seedTrainer stores a trainer with the given species at level 5.
func (m *mockRepo) seedTrainer(name string, species ...string) *game.Trainer {
	t := &game.Trainer{ID: uuid.NewString(), Name: name, Gender: game.GenderUnknown}
	for i, s := range species {
		t.Creatures = append(t.Creatures, game.OwnedCreature{Species: s, Name: s, Level: 5, Slot: i, TrainerID: t.ID})
	}
	m.trainers[t.ID] = t
	return t
}
