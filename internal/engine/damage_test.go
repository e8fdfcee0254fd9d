package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyoppar01/pokemon-battle-v3/internal/game"
)

func creature(t *testing.T, species string, level int) *game.Creature {
	t.Helper()
	c, err := game.NewCreature(species, "", level)
	require.NoError(t, err)
	return c
}

func TestCalculateDamage_KnownValues(t *testing.T) {
	tests := []struct {
		name     string
		attacker *game.Creature
		defender *game.Creature
		kind     game.MoveKind
		want     int
		tier     game.Effectiveness
	}{
		{"thunder shock on squirtle", creature(t, "Pikachu", 5), creature(t, "Squirtle", 5), game.SpecialMove, 114, game.SuperEffective},
		{"tackle on squirtle", creature(t, "Pikachu", 5), creature(t, "Squirtle", 5), game.NormalMove, 38, game.NormalEffective},
		{"ember on squirtle", creature(t, "Charmander", 5), creature(t, "Squirtle", 5), game.SpecialMove, 30, game.NotVeryEffective},
		{"water gun on pikachu", creature(t, "Squirtle", 5), creature(t, "Pikachu", 5), game.SpecialMove, 63, game.NormalEffective},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, tier := CalculateDamage(tt.attacker, tt.defender, tt.kind)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.tier, tier)
		})
	}
}

func TestCalculateDamage_NormalIgnoresTypes(t *testing.T) {
	// Ghost special on Ghost is super effective; Tackle is not.
	a := creature(t, "Gengar", 10)
	d := creature(t, "Gengar", 10)
	n, tier := CalculateDamage(a, d, game.NormalMove)
	assert.Equal(t, BaseDamage(a, d), n)
	assert.Equal(t, game.NormalEffective, tier)
}

func TestCalculateDamage_SpecialMatchesFormula(t *testing.T) {
	pokedex := game.DefaultPokedex()
	for _, as := range pokedex.All() {
		for _, ds := range pokedex.All() {
			for _, level := range []int{1, 7, 50, 100} {
				a, err := pokedex.NewCreature(as.Name, "", level)
				require.NoError(t, err)
				d, err := pokedex.NewCreature(ds.Name, "", level)
				require.NoError(t, err)

				base := BaseDamage(a, d)
				assert.GreaterOrEqual(t, base, 0)
				assert.Equal(t, int(math.Floor(float64(a.Attack*100)/float64(100+d.Defense))), base)

				got, tier := CalculateDamage(a, d, game.SpecialMove)
				want := int(math.Floor(float64(base) * 1.5 * game.Lookup(a.SpecialMove.Type, d.Type).Multiplier()))
				assert.Equal(t, want, got, "%s L%d -> %s", as.Name, level, ds.Name)
				assert.Equal(t, game.Lookup(a.SpecialMove.Type, d.Type), tier)
			}
		}
	}
}

func TestBaseDamage_ZeroAttack(t *testing.T) {
	a := game.BuildCreature("Rock", "Rock", game.Rock, 1, 10, 0, 10, 1, game.Move{}, game.Move{Type: game.Rock})
	d := creature(t, "Snorlax", 1)
	assert.Equal(t, 0, BaseDamage(a, d))
	got, _ := CalculateDamage(a, d, game.SpecialMove)
	assert.Equal(t, 0, got)
}
