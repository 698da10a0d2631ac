package statestore

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

var redisStatePrefix string = "verify/state/"

type RedisStateStore struct {
	Client *redis.Client
}

var _ StateStore = (*RedisStateStore)(nil)

func NewRedisStateStore(redisURL string) (*RedisStateStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	// check redis connection
	_, err = rdb.Ping(context.TODO()).Result()
	if err != nil {
		return nil, err
	}
	rss := RedisStateStore{
		Client: rdb,
	}
	return &rss, nil
}

func (s *RedisStateStore) Get(ctx context.Context, userID string) (UserState, error) {
	raw, err := s.Client.Get(ctx, redisStatePrefix+userID).Bytes()
	if err == redis.Nil {
		return UserState{}, nil
	} else if err != nil {
		return UserState{}, err
	}
	var state UserState
	if err := json.Unmarshal(raw, &state); err != nil {
		return UserState{}, err
	}
	return state, nil
}

func (s *RedisStateStore) Put(ctx context.Context, userID string, state UserState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	// no expiration: workflow state is cleared explicitly on acceptance
	return s.Client.Set(ctx, redisStatePrefix+userID, raw, 0).Err()
}

func (s *RedisStateStore) Delete(ctx context.Context, userID string) error {
	err := s.Client.Del(ctx, redisStatePrefix+userID).Err()
	if err == redis.Nil {
		return nil
	}
	return err
}
