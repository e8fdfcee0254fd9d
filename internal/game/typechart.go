package game

// Effectiveness classifies how well a move type hits a defending type.
type Effectiveness int

const (
	NormalEffective Effectiveness = iota
	SuperEffective
	NotVeryEffective
)

func (e Effectiveness) String() string {
	switch e {
	case SuperEffective:
		return "super_effective"
	case NotVeryEffective:
		return "not_very_effective"
	default:
		return "normal"
	}
}

// Multiplier returns the damage factor of the tier: 2.0, 1.0 or 0.5.
func (e Effectiveness) Multiplier() float64 {
	switch e {
	case SuperEffective:
		return 2.0
	case NotVeryEffective:
		return 0.5
	default:
		return 1.0
	}
}

// Message is the battle log line announcing the tier. NormalEffective has none.
func (e Effectiveness) Message() string {
	switch e {
	case SuperEffective:
		return "It's super effective!"
	case NotVeryEffective:
		return "It's not very effective…"
	default:
		return ""
	}
}

func (e Effectiveness) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

type matchup struct {
	attacking Type
	defending Type
}

// typeChart is read-only after package init and shared by every battle.
var typeChart = map[matchup]Effectiveness{
	{Fire, Grass}: SuperEffective,
	{Fire, Steel}: SuperEffective,
	{Fire, Water}: NotVeryEffective,
	{Fire, Fire}:  NotVeryEffective,
	{Fire, Rock}:  NotVeryEffective,

	{Water, Fire}:   SuperEffective,
	{Water, Ground}: SuperEffective,
	{Water, Rock}:   SuperEffective,
	{Water, Water}:  NotVeryEffective,
	{Water, Grass}:  NotVeryEffective,

	{Grass, Water}:  SuperEffective,
	{Grass, Ground}: SuperEffective,
	{Grass, Rock}:   SuperEffective,
	{Grass, Fire}:   NotVeryEffective,
	{Grass, Grass}:  NotVeryEffective,
	{Grass, Flying}: NotVeryEffective,
	{Grass, Steel}:  NotVeryEffective,

	{Electric, Water}:    SuperEffective,
	{Electric, Flying}:   SuperEffective,
	{Electric, Electric}: NotVeryEffective,
	{Electric, Grass}:    NotVeryEffective,

	{Psychic, Fighting}: SuperEffective,
	{Psychic, Poison}:   SuperEffective,
	{Psychic, Psychic}:  NotVeryEffective,
	{Psychic, Steel}:    NotVeryEffective,

	{Ghost, Psychic}: SuperEffective,
	{Ghost, Ghost}:   SuperEffective,
	{Ghost, Dark}:    NotVeryEffective,

	{Steel, Rock}:     SuperEffective,
	{Steel, Ice}:      SuperEffective,
	{Steel, Fairy}:    SuperEffective,
	{Steel, Fire}:     NotVeryEffective,
	{Steel, Water}:    NotVeryEffective,
	{Steel, Electric}: NotVeryEffective,
	{Steel, Steel}:    NotVeryEffective,

	{Normal, Rock}:  NotVeryEffective,
	{Normal, Steel}: NotVeryEffective,
}

// Lookup returns the tier for a move of type attacking hitting a creature of
// type defending. Pairs absent from the chart are NormalEffective.
func Lookup(attacking, defending Type) Effectiveness {
	if e, ok := typeChart[matchup{attacking, defending}]; ok {
		return e
	}
	return NormalEffective
}
