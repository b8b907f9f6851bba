package model

import "fmt"

// BattleID identifies a battle. Only the engine builds it; everyone else treats it as opaque.
type BattleID string

// NewBattleID builds the id of a battle between two players created at the given epoch millis
func NewBattleID(playerID, opponentID PlayerID, epochMillis int64) BattleID {
	return BattleID(fmt.Sprintf("%s-%s_%d", playerID, opponentID, epochMillis))
}

// BattleStatus represents the lifecycle state of a battle
type BattleStatus string

const (
	BattleStatusActive BattleStatus = "ACTIVE"
	BattleStatusEnded  BattleStatus = "ENDED"
)

// Battle is a fight between a human player (index 0) and an AI opponent (index 1)
type Battle struct {
	BattleID        BattleID     `json:"battleId"`
	BattleStatus    BattleStatus `json:"battleStatus"`
	PlayersInBattle []*Player    `json:"playersInBattle"`
	Winner          PlayerID     `json:"winner,omitempty"`
	IsTutorial      bool         `json:"isTutorial"`

	// CounterAttack names the strategy the opponent uses
	CounterAttack string `json:"-"`
	// AccessToken is empty for tutorial battles
	AccessToken string `json:"-"`
}

// Player returns the human side of the battle
func (b *Battle) Player() *Player {
	return b.PlayersInBattle[0]
}

// Opponent returns the AI side of the battle
func (b *Battle) Opponent() *Player {
	return b.PlayersInBattle[1]
}

// IsActive reports whether attacks are still accepted
func (b *Battle) IsActive() bool {
	return b.BattleStatus == BattleStatusActive
}

// AcceptsToken reports whether the caller token may access the battle
func (b *Battle) AcceptsToken(token string) bool {
	return b.AccessToken == "" || b.AccessToken == token
}

// End marks the battle as ended with the given winner
func (b *Battle) End(winner PlayerID) {
	b.BattleStatus = BattleStatusEnded
	b.Winner = winner
}

// Clone returns a deep copy of the battle
func (b *Battle) Clone() *Battle {
	players := make([]*Player, len(b.PlayersInBattle))
	for i, p := range b.PlayersInBattle {
		players[i] = p.Clone()
	}
	clone := *b
	clone.PlayersInBattle = players
	return &clone
}

// BattleRecord is the persisted form of a battle, including the fields hidden from clients
type BattleRecord struct {
	BattleID        BattleID     `json:"battleId"`
	BattleStatus    BattleStatus `json:"battleStatus"`
	PlayersInBattle []*Player    `json:"playersInBattle"`
	Winner          PlayerID     `json:"winner,omitempty"`
	IsTutorial      bool         `json:"isTutorial"`
	CounterAttack   string       `json:"counterAttack"`
	AccessToken     string       `json:"accessToken,omitempty"`
}

// Record converts the battle to its persisted form
func (b *Battle) Record() BattleRecord {
	return BattleRecord{
		BattleID:        b.BattleID,
		BattleStatus:    b.BattleStatus,
		PlayersInBattle: b.PlayersInBattle,
		Winner:          b.Winner,
		IsTutorial:      b.IsTutorial,
		CounterAttack:   b.CounterAttack,
		AccessToken:     b.AccessToken,
	}
}

// Battle converts the persisted form back to a battle
func (r BattleRecord) Battle() *Battle {
	return &Battle{
		BattleID:        r.BattleID,
		BattleStatus:    r.BattleStatus,
		PlayersInBattle: r.PlayersInBattle,
		Winner:          r.Winner,
		IsTutorial:      r.IsTutorial,
		CounterAttack:   r.CounterAttack,
		AccessToken:     r.AccessToken,
	}
}
