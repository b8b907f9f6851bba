package ai

import (
	"github.com/mcoot/ricotte-api/internal/dependencies/random"
	"github.com/mcoot/ricotte-api/internal/model"
)

// RandomStrategy attacks a random living target with a random living unit
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChooseCounterAttack picks the attacking unit first, then the target
func (s *RandomStrategy) ChooseCounterAttack(battle *model.Battle, attacker, defender *model.Player) (CounterAttack, bool) {
	attackers := attacker.AliveUnits()
	targets := defender.AliveUnits()
	if len(attackers) == 0 || len(targets) == 0 {
		return CounterAttack{}, false
	}
	return CounterAttack{
		AttackingUnit: attackers[s.random.Intn(len(attackers))].JoinNumber,
		DefendingUnit: targets[s.random.Intn(len(targets))].JoinNumber,
	}, true
}
