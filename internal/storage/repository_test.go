package storage

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/tyoppar01/pokemon-battle-v3/internal/game"
)

func newTestRepo(t *testing.T) Repository {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := OpenAndMigrate(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewRepository(db)
}

func createTrainer(t *testing.T, repo Repository, name string) *game.Trainer {
	t.Helper()
	tr := &game.Trainer{Name: name, Gender: game.GenderUnknown}
	if err := repo.CreateTrainer(tr); err != nil {
		t.Fatalf("create trainer: %v", err)
	}
	if tr.ID == "" {
		t.Fatalf("expected generated id")
	}
	return tr
}

func TestTrainerCRUD(t *testing.T) {
	repo := newTestRepo(t)
	ash := createTrainer(t, repo, "Ash")

	got, err := repo.GetTrainer(ash.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Ash" || len(got.Creatures) != 0 {
		t.Fatalf("unexpected trainer: %+v", got)
	}

	got.Name = "Ash Ketchum"
	got.Gender = game.GenderMale
	if err := repo.UpdateTrainer(got); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = repo.GetTrainer(ash.ID)
	if got.Name != "Ash Ketchum" || got.Gender != game.GenderMale {
		t.Fatalf("update not persisted: %+v", got)
	}

	if err := repo.UpdateTrainer(&game.Trainer{ID: "missing", Name: "X"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	createTrainer(t, repo, "Misty")
	all, err := repo.ListTrainers()
	if err != nil || len(all) != 2 {
		t.Fatalf("list: %v %d", err, len(all))
	}

	if err := repo.DeleteTrainer(ash.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetTrainer(ash.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.DeleteTrainer(ash.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestRosterSlots(t *testing.T) {
	repo := newTestRepo(t)
	ash := createTrainer(t, repo, "Ash")

	for _, sp := range []string{"Pikachu", "Bulbasaur", "Charmander"} {
		if err := repo.AddCreature(ash.ID, &game.OwnedCreature{Species: sp, Name: sp, Level: 5}, 3); err != nil {
			t.Fatalf("add %s: %v", sp, err)
		}
	}
	if err := repo.AddCreature(ash.ID, &game.OwnedCreature{Species: "Squirtle", Name: "Squirtle", Level: 5}, 3); !errors.Is(err, game.ErrTeamFull) {
		t.Fatalf("expected ErrTeamFull, got %v", err)
	}
	if err := repo.AddCreature("missing", &game.OwnedCreature{Species: "Squirtle"}, 6); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := repo.RemoveCreature(ash.ID, 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := repo.RemoveCreature(ash.ID, 5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	list, err := repo.ListCreatures(ash.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Species != "Pikachu" || list[1].Species != "Charmander" || list[1].Slot != 1 {
		t.Fatalf("unexpected roster after removal: %+v", list)
	}

	tr, _ := repo.GetTrainer(ash.ID)
	if len(tr.Creatures) != 2 || tr.Creatures[0].Slot != 0 {
		t.Fatalf("preloaded roster not ordered: %+v", tr.Creatures)
	}

	if _, err := repo.ListCreatures("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCountCreaturesBySpecies(t *testing.T) {
	repo := newTestRepo(t)
	a := createTrainer(t, repo, "Ash")
	b := createTrainer(t, repo, "Brock")
	_ = repo.AddCreature(a.ID, &game.OwnedCreature{Species: "Pikachu", Level: 5}, 6)
	_ = repo.AddCreature(b.ID, &game.OwnedCreature{Species: "Pikachu", Level: 9}, 6)
	_ = repo.AddCreature(b.ID, &game.OwnedCreature{Species: "Aron", Level: 9}, 6)

	counts, err := repo.CountCreaturesBySpecies()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts["Pikachu"] != 2 || counts["Aron"] != 1 || len(counts) != 2 {
		t.Fatalf("unexpected counts: %v", counts)
	}

	if err := repo.DeleteTrainer(b.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	counts, _ = repo.CountCreaturesBySpecies()
	if counts["Pikachu"] != 1 || counts["Aron"] != 0 {
		t.Fatalf("roster of deleted trainer still counted: %v", counts)
	}
}

func TestRecordBattleResultAndLeaderboard(t *testing.T) {
	repo := newTestRepo(t)
	ash := createTrainer(t, repo, "Ash")
	gary := createTrainer(t, repo, "Gary")
	misty := createTrainer(t, repo, "Misty")

	steps := [][2]string{{ash.ID, gary.ID}, {ash.ID, misty.ID}, {gary.ID, misty.ID}}
	for _, s := range steps {
		if err := repo.RecordBattleResult(s[0], s[1]); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if err := repo.RecordBattleResult("missing", gary.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	top, err := repo.GetTopTrainers(10)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("expected 3 trainers, got %d", len(top))
	}
	if top[0].ID != ash.ID || top[0].Wins != 2 || top[0].BattlesPlayed != 2 {
		t.Fatalf("unexpected leader: %+v", top[0])
	}
	if top[1].ID != gary.ID || top[1].Wins != 1 || top[1].BattlesPlayed != 2 {
		t.Fatalf("unexpected second: %+v", top[1])
	}
	if top[2].ID != misty.ID || top[2].Wins != 0 || top[2].BattlesPlayed != 2 {
		t.Fatalf("unexpected third: %+v", top[2])
	}

	top, _ = repo.GetTopTrainers(1)
	if len(top) != 1 {
		t.Fatalf("limit not applied: %d", len(top))
	}
}

func TestUpsertGoogleTrainer(t *testing.T) {
	repo := newTestRepo(t)
	first, err := repo.UpsertGoogleTrainer("Ash@Example.com", "Ash")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	second, err := repo.UpsertGoogleTrainer("ash@example.com ", "Someone Else")
	if err != nil {
		t.Fatalf("upsert again: %v", err)
	}
	if first.ID != second.ID || second.Name != "Ash" {
		t.Fatalf("expected the same trainer, got %+v and %+v", first, second)
	}
	if _, err := repo.FindTrainerByEmail("nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Trainers created without e-mail must not collide on the unique index.
	createTrainer(t, repo, "Brock")
	createTrainer(t, repo, "Misty")
}

func TestIsPostgresDSN(t *testing.T) {
	cases := map[string]bool{
		"postgres://u:p@localhost/db": true,
		"postgresql://localhost/db":   true,
		"./data/pokebattle.db":        false,
		"file::memory:?cache=shared":  false,
	}
	for dsn, want := range cases {
		if got := IsPostgresDSN(dsn); got != want {
			t.Fatalf("IsPostgresDSN(%q) = %v", dsn, got)
		}
	}
}
