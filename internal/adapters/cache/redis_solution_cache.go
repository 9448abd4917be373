package cache

import (
	"context"
	"cvrp-route-service/internal/domain"
	"cvrp-route-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Keeps the stored entry unless the new score is strictly lower.
var putIfBetter = redis.NewScript(`
local cur = redis.call('HGET', KEYS[1], 'score')
if cur and tonumber(cur) <= tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1], 'score', ARGV[1], 'genes', ARGV[2])
if tonumber(ARGV[3]) > 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[3])
end
return 1
`)

// RedisSolutionCache keeps best known solutions in Redis hashes, shared by every server instance.
type RedisSolutionCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSolutionCache(client *redis.Client, ttl time.Duration) *RedisSolutionCache {
	return &RedisSolutionCache{Client: client, TTL: ttl}
}

// OpenRedis parses a redis:// URL and verifies the connection.
func OpenRedis(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("open redis: parse url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("open redis: ping: %w", err)
	}
	return client, nil
}

func (c *RedisSolutionCache) Get(ctx context.Context, key string) (_ domain.Solution, _ bool, err error) {
	defer obs.Time(ctx, "solution.cache.redis.Get")(&err)

	if c.Client == nil {
		return domain.Solution{}, false, errors.New("solution cache: redis client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return domain.Solution{}, false, errors.New("get solution cache: key must not be empty")
	}

	vals, err := c.Client.HMGet(ctx, key, "score", "genes").Result()
	if err != nil {
		return domain.Solution{}, false, fmt.Errorf("get solution cache: hmget %q: %w", key, err)
	}
	scoreRaw, ok1 := vals[0].(string)
	genesRaw, ok2 := vals[1].(string)
	if !ok1 || !ok2 {
		return domain.Solution{}, false, nil
	}

	score, err := strconv.ParseInt(scoreRaw, 10, 64)
	if err != nil {
		return domain.Solution{}, false, fmt.Errorf("get solution cache: parse score: %w", err)
	}
	var genes []int
	if err := json.Unmarshal([]byte(genesRaw), &genes); err != nil {
		return domain.Solution{}, false, fmt.Errorf("get solution cache: decode genes: %w", err)
	}

	return domain.Solution{Genes: genes, Score: score}, true, nil
}

func (c *RedisSolutionCache) Put(ctx context.Context, key string, sol domain.Solution) (err error) {
	defer obs.Time(ctx, "solution.cache.redis.Put")(&err)

	if c.Client == nil {
		return errors.New("solution cache: redis client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert solution cache: key must not be empty")
	}

	genes, err := json.Marshal(sol.Genes)
	if err != nil {
		return fmt.Errorf("insert solution cache: encode genes: %w", err)
	}

	args := []any{strconv.FormatInt(sol.Score, 10), string(genes), c.TTL.Milliseconds()}
	if err := putIfBetter.Run(ctx, c.Client, []string{key}, args...).Err(); err != nil {
		return fmt.Errorf("insert solution cache key=%q: %w", key, err)
	}

	return nil
}
