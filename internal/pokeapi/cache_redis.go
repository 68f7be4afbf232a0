// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/pokedex/internal/platform/constants"
	"github.com/taibuivan/pokedex/internal/pokemon"
)

// RedisCache implements [DetailCache] using Redis, storing details as JSON.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis-backed [DetailCache].
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

/*
Get retrieves the detail stored for name.

Description: Returns (nil, nil) if the key is absent or expired.

Parameters:
  - context: context.Context
  - name: string

Returns:
  - *pokemon.Detail: Decoded record or nil
  - error: Connectivity or decoding failures
*/
func (cache *RedisCache) Get(context context.Context, name string) (*pokemon.Detail, error) {

	// Get the payload from Redis
	payload, err := cache.client.Get(context, detailKey(name)).Bytes()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_detail_get_failed: %w", err)
	}

	// Decode the stored record
	var detail pokemon.Detail
	if err := json.Unmarshal(payload, &detail); err != nil {
		return nil, fmt.Errorf("redis_detail_decode_failed: %w", err)
	}

	return &detail, nil
}

/*
Set stores detail under name with the given TTL.

Parameters:
  - context: context.Context
  - name: string
  - detail: *pokemon.Detail
  - ttl: time.Duration

Returns:
  - error: Encoding or storage failures
*/
func (cache *RedisCache) Set(context context.Context, name string, detail *pokemon.Detail, ttl time.Duration) error {
	payload, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("redis_detail_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, detailKey(name), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_detail_set_failed: %w", err)
	}

	return nil
}

func detailKey(name string) string {
	return constants.RedisPrefixDetail + name
}
