package response

import "github.com/mcoot/ricotte-api/internal/model"

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// Welcome is the body of the root route
type Welcome struct {
	Message string `json:"message"`
}

// BattleCreated is returned by the battle creation routes
type BattleCreated struct {
	BattleID model.BattleID `json:"battleId"`
}

// PlayerRegistered is returned by registration
type PlayerRegistered struct {
	PlayerID model.PlayerID `json:"playerId"`
}
