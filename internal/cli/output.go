package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mcoot/ricotte-api/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Welcome:
		fmt.Fprintln(o.w, v.Message)
	case BattleCreated:
		fmt.Fprintf(o.w, "Battle: %s\n", v.BattleID)
	case PlayerRegistered:
		fmt.Fprintf(o.w, "Player: %s\n", v.PlayerID)
	case model.LoggedInPlayer:
		o.printLoggedInPlayer(v)
	case model.Battle:
		o.printBattle(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Welcome response type
type Welcome struct {
	Message string `json:"message"`
}

// BattleCreated response type
type BattleCreated struct {
	BattleID string `json:"battleId"`
}

// PlayerRegistered response type
type PlayerRegistered struct {
	PlayerID string `json:"playerId"`
}

func (o *Output) printLoggedInPlayer(p model.LoggedInPlayer) {
	fmt.Fprintf(o.w, "Player: %s (%s)\n", p.Name, p.PlayerID)
	fmt.Fprintf(o.w, "User: %s\n", p.UserName)
	fmt.Fprintf(o.w, "Token: %s\n", p.AccessToken)
}

func (o *Output) printBattle(b model.Battle) {
	fmt.Fprintf(o.w, "Battle: %s\n", b.BattleID)
	fmt.Fprintf(o.w, "Status: %s\n", b.BattleStatus)
	if b.Winner != "" {
		fmt.Fprintf(o.w, "Winner: %s\n", b.Winner)
	}
	for _, p := range b.PlayersInBattle {
		fmt.Fprintf(o.w, "%s (%s):\n", p.Name, p.PlayerID)
		for _, u := range p.Units {
			down := ""
			if u.IsDefeated() {
				down = " [defeated]"
			}
			fmt.Fprintf(o.w, "  %d. %s  hp %d/%d  atk %d  def %d%s\n",
				u.JoinNumber, u.Name,
				u.CurrentStatus.HP, u.DefaultStatus.HP,
				u.CurrentStatus.Atk, u.CurrentStatus.Def,
				down,
			)
		}
	}
}
