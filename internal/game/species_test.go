package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreature_Stats(t *testing.T) {
	tests := []struct {
		species string
		level   int
		hp      int
		atk     int
		def     int
		spd     int
	}{
		{"Pikachu", 5, 55, 70, 50, 115},
		{"Squirtle", 5, 69, 63, 80, 53},
		{"Charmander", 1, 43, 56, 45, 68},
		{"Mewtwo", 50, 356, 360, 290, 430},
	}
	for _, tt := range tests {
		t.Run(tt.species, func(t *testing.T) {
			c, err := NewCreature(tt.species, "", tt.level)
			require.NoError(t, err)
			assert.Equal(t, tt.hp, c.MaxHP)
			assert.Equal(t, tt.hp, c.CurrentHP())
			assert.Equal(t, tt.atk, c.Attack)
			assert.Equal(t, tt.def, c.Defense)
			assert.Equal(t, tt.spd, c.Speed)
			assert.Equal(t, tt.level, c.Level)
		})
	}
}

func TestNewCreature_Moves(t *testing.T) {
	c, err := NewCreature("pikachu", "Sparky", 5)
	require.NoError(t, err)

	assert.Equal(t, "Sparky", c.Name)
	assert.Equal(t, "Pikachu", c.Species)
	assert.Equal(t, Electric, c.Type)

	assert.Equal(t, TackleName, c.NormalMove.Name)
	assert.Equal(t, Normal, c.NormalMove.Type)
	assert.Equal(t, NormalMove, c.NormalMove.Kind)
	assert.Equal(t, c.Attack, c.NormalMove.Power)

	assert.Equal(t, "Thunder Shock", c.SpecialMove.Name)
	assert.Equal(t, Electric, c.SpecialMove.Type)
	assert.Equal(t, SpecialMove, c.SpecialMove.Kind)
	assert.Equal(t, c.SpecialMove, c.Move(SpecialMove))
	assert.Equal(t, c.NormalMove, c.Move(NormalMove))
}

func TestNewCreature_DefaultsAndErrors(t *testing.T) {
	c, err := NewCreature("Snorlax", "  ", 0)
	require.NoError(t, err)
	assert.Equal(t, "Snorlax", c.Name)
	assert.Equal(t, 30, c.Level)

	_, err = NewCreature("Missingno", "", 5)
	assert.ErrorIs(t, err, ErrUnknownSpecies)

	_, err = NewCreature("Pikachu", "", MaxLevel+1)
	assert.ErrorIs(t, err, ErrInvalidLevel)
	_, err = NewCreature("Pikachu", "", -3)
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestNewPokedex_Validation(t *testing.T) {
	good := DefaultSpecies[0]

	_, err := NewPokedex(nil)
	assert.Error(t, err)

	_, err = NewPokedex([]Species{good, good})
	assert.Error(t, err)

	bad := good
	bad.Name = "Glitch"
	bad.Type = Type(42)
	_, err = NewPokedex([]Species{bad})
	assert.ErrorIs(t, err, ErrUnknownType)

	bad = good
	bad.Name = "Ghosty"
	bad.DefaultLevel = 0
	_, err = NewPokedex([]Species{bad})
	assert.ErrorIs(t, err, ErrInvalidLevel)

	bad = good
	bad.Name = "Mute"
	bad.Special.Name = ""
	_, err = NewPokedex([]Species{bad})
	assert.Error(t, err)
}

func TestPokedex_LookupAndTypes(t *testing.T) {
	p := DefaultPokedex()

	s, ok := p.Lookup("  MEWTWO ")
	require.True(t, ok)
	assert.Equal(t, Psychic, s.Type)

	_, ok = p.Lookup("agumon")
	assert.False(t, ok)

	all := p.All()
	require.Len(t, all, len(DefaultSpecies))
	assert.Equal(t, "Pikachu", all[0].Name)

	types := p.Types()
	assert.Len(t, types, 8)
	for i := 1; i < len(types); i++ {
		assert.Less(t, types[i-1].String(), types[i].String())
	}
}

func TestBuildCreature(t *testing.T) {
	c := BuildCreature("Dummy", "Dummy", Rock, 10, 40, 30, 20, 10,
		Move{Name: "Tackle", Type: Normal, Power: 30},
		Move{Name: "Rock Throw", Type: Rock, Power: 30})
	assert.Equal(t, 40, c.CurrentHP())
	assert.Equal(t, SpecialMove, c.SpecialMove.Kind)
	assert.Equal(t, NormalMove, c.NormalMove.Kind)
}
