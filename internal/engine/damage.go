package engine

import "github.com/tyoppar01/pokemon-battle-v3/internal/game"

// BaseDamage is the stat trade between attacker and defender:
// floor(Attack*100 / (100+Defense)).
func BaseDamage(attacker, defender *game.Creature) int {
	def := defender.Defense
	if def < 0 {
		def = 0
	}
	base := attacker.Attack * 100 / (100 + def)
	if base < 0 {
		return 0
	}
	return base
}

// CalculateDamage returns the damage a move of the given kind deals and the
// effectiveness tier that applied. Normal moves ignore the type chart.
// Special moves deal floor(base * 1.5 * multiplier); the product is computed
// in integers as base*3*h/4 where h is the multiplier in halves, so the
// result never depends on float rounding.
func CalculateDamage(attacker, defender *game.Creature, kind game.MoveKind) (int, game.Effectiveness) {
	base := BaseDamage(attacker, defender)
	if kind != game.SpecialMove {
		return base, game.NormalEffective
	}
	tier := game.Lookup(attacker.SpecialMove.Type, defender.Type)
	return base * 3 * halves(tier) / 4, tier
}

func halves(e game.Effectiveness) int {
	switch e {
	case game.SuperEffective:
		return 4
	case game.NotVeryEffective:
		return 1
	default:
		return 2
	}
}
