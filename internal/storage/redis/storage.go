package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mcoot/ricotte-api/internal/model"
	"github.com/mcoot/ricotte-api/internal/storage"
)

// delIfEqualScript deletes KEYS[1] when it holds ARGV[1]
const delIfEqualScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then return redis.call("DEL", KEYS[1]) end return 0`

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// getJSON loads key into v, returning notFound when the key is missing
func (s *Storage) getJSON(ctx context.Context, key string, v any, notFound error) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return notFound
		}
		return err
	}
	return json.Unmarshal(data, v)
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, playerKey(player.PlayerID), data, 0).Err()
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var player model.Player
	if err := s.getJSON(ctx, playerKey(id), &player, model.ErrPlayerNotFound); err != nil {
		return nil, err
	}
	return &player, nil
}

// Account operations

func (s *Storage) AddPlayerAccount(ctx context.Context, account *model.PlayerAccount) (model.PlayerID, error) {
	stored := *account
	if stored.PlayerID == "" {
		stored.PlayerID = model.PlayerID(uuid.New().String())
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return "", err
	}

	// The account is unreachable until the index points at it, so a failure
	// before the claim leaves the user name free.
	if err := s.client.Set(ctx, accountKey(stored.PlayerID), data, 0).Err(); err != nil {
		return "", err
	}

	claimed, err := s.client.SetNX(ctx, userNameIndexKey(stored.UserName), string(stored.PlayerID), 0).Result()
	if err != nil || !claimed {
		s.client.Del(context.WithoutCancel(ctx), accountKey(stored.PlayerID))
		if err != nil {
			return "", err
		}
		return "", model.ErrUserNameExists
	}
	return stored.PlayerID, nil
}

func (s *Storage) GetPlayerAccountByUserName(ctx context.Context, userName string) (*model.PlayerAccount, error) {
	playerID, err := s.client.Get(ctx, userNameIndexKey(userName)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	var account model.PlayerAccount
	if err := s.getJSON(ctx, accountKey(model.PlayerID(playerID)), &account, model.ErrAccountNotFound); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Storage) RemovePlayerAccount(ctx context.Context, id model.PlayerID) error {
	var account model.PlayerAccount
	if err := s.getJSON(ctx, accountKey(id), &account, model.ErrAccountNotFound); err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, accountKey(id))
	// only free the name if it still belongs to this account
	pipe.Eval(ctx, delIfEqualScript, []string{userNameIndexKey(account.UserName)}, string(id))
	_, err := pipe.Exec(ctx)
	return err
}

// Battle operations

func (s *Storage) CreateBattle(ctx context.Context, battle *model.Battle) error {
	data, err := json.Marshal(battle.Record())
	if err != nil {
		return err
	}

	created, err := s.client.SetNX(ctx, battleKey(battle.BattleID), data, s.cfg.BattleTTL).Result()
	if err != nil {
		return err
	}
	if !created {
		return model.ErrBattleExists
	}
	return nil
}

func (s *Storage) SaveBattle(ctx context.Context, battle *model.Battle) error {
	data, err := json.Marshal(battle.Record())
	if err != nil {
		return err
	}
	return s.client.Set(ctx, battleKey(battle.BattleID), data, s.cfg.BattleTTL).Err()
}

func (s *Storage) GetBattle(ctx context.Context, id model.BattleID) (*model.Battle, error) {
	var record model.BattleRecord
	if err := s.getJSON(ctx, battleKey(id), &record, model.ErrBattleNotFound); err != nil {
		return nil, err
	}
	return record.Battle(), nil
}

// Access token operations

func (s *Storage) SaveAccessToken(ctx context.Context, token *model.AccessToken) error {
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}

	key := accessTokenKey(token.Token)

	// Let Redis drop the token once it expires
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	if !token.ExpiresAt.IsZero() {
		pipe.ExpireAt(ctx, key, token.ExpiresAt)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetAccessToken(ctx context.Context, token string) (*model.AccessToken, error) {
	var at model.AccessToken
	if err := s.getJSON(ctx, accessTokenKey(token), &at, model.ErrAccessTokenNotFound); err != nil {
		return nil, err
	}
	return &at, nil
}
