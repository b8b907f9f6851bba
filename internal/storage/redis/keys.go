package redis

import (
	"fmt"

	"github.com/mcoot/ricotte-api/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "ricotte"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// accountKey returns the Redis key for a PlayerAccount
func accountKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, playerID)
}

// userNameIndexKey returns the Redis key for the user name -> player ID index
func userNameIndexKey(userName string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, userName)
}

// battleKey returns the Redis key for a Battle
func battleKey(id model.BattleID) string {
	return fmt.Sprintf("%s:battle:%s", keyPrefix, id)
}

// accessTokenKey returns the Redis key for an AccessToken
func accessTokenKey(token string) string {
	return fmt.Sprintf("%s:token:%s", keyPrefix, token)
}
