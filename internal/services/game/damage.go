package game

import "github.com/mcoot/ricotte-api/internal/model"

// minDamage keeps every hit meaningful so battles always finish
const minDamage = 1

// Damage returns the hp an attacker takes from a defender
func Damage(attacker, defender model.UnitStatus) int {
	return max(attacker.Atk-defender.Def, minDamage)
}

// strike applies one hit; hp never drops below zero
func strike(attacker, defender *model.Unit) {
	hp := defender.CurrentStatus.HP - Damage(attacker.CurrentStatus, defender.CurrentStatus)
	defender.CurrentStatus.HP = max(hp, 0)
}
