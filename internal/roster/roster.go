package roster

import "github.com/mcoot/ricotte-api/internal/model"

// Unit templates shared by the bootstrap players
var (
	Slime = model.UnitTemplate{
		Name:          "Slime",
		JoinNumber:    1,
		DefaultStatus: model.UnitStatus{HP: 5, Atk: 2, Def: 1},
	}
	Punchbag = model.UnitTemplate{
		Name:          "Punchbag",
		JoinNumber:    2,
		DefaultStatus: model.UnitStatus{HP: 1, Atk: 1, Def: 1},
	}
)

// Roster is the fixed set of players the server starts with.
// It is built once at startup and never modified.
type Roster struct {
	// TutorialPlayer fights tutorial battles
	TutorialPlayer model.Player
	// Opponent is the AI side of every battle
	Opponent model.Player
	// StarterUnit seeds every newly registered player
	StarterUnit model.UnitTemplate
	// CounterAttack is the strategy name used by the opponent
	CounterAttack string
}

// Default returns the roster the server ships with
func Default() *Roster {
	return &Roster{
		TutorialPlayer: *model.NewPlayer("p1", "Player", Slime),
		Opponent:       *model.NewPlayer("p2", "Opponent", Slime, Punchbag),
		StarterUnit:    Slime,
		CounterAttack:  "random",
	}
}

// Players returns fresh copies of the bootstrap players
func (r *Roster) Players() []*model.Player {
	return []*model.Player{r.TutorialPlayer.Clone(), r.Opponent.Clone()}
}

// NewRegistrant builds the transient player handed to registration
func (r *Roster) NewRegistrant(name string) *model.Player {
	return model.NewPlayer("", name, r.StarterUnit)
}
