package ai

import (
	"fmt"

	"github.com/mcoot/ricotte-api/internal/dependencies/random"
	"github.com/mcoot/ricotte-api/internal/model"
)

// StrategyRandom is the name of the random counter-attack strategy
const StrategyRandom = "random"

// CounterAttack is a single attack chosen by a strategy
type CounterAttack struct {
	AttackingUnit int
	DefendingUnit int
}

// Strategy decides how the AI opponent strikes back after a player's attack
type Strategy interface {
	// ChooseCounterAttack picks one of the attacker's living units and one of the
	// defender's living units. ok is false when either side has nothing left.
	ChooseCounterAttack(battle *model.Battle, attacker, defender *model.Player) (attack CounterAttack, ok bool)
}

// Registry resolves strategies by the name stored on a battle
type Registry map[string]Strategy

// NewRegistry creates a registry with the built-in strategies
func NewRegistry(rnd random.Random) Registry {
	return Registry{
		StrategyRandom: NewRandomStrategy(rnd),
	}
}

// Get returns the named strategy
func (r Registry) Get(name string) (Strategy, error) {
	s, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("unknown counter-attack strategy %q", name)
	}
	return s, nil
}
