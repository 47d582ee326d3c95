package repository

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"bordados_admin/internal/domain/entities"
	"bordados_admin/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultClientCacheTTL = 5 * time.Minute

// RedisKV is the subset of *redis.Client the cache uses.
type RedisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedClientRepository is a read-through Redis cache in front of client
// lookups. Only client data is cached: orders and balances are always read
// from the backend.
type CachedClientRepository struct {
	primary interfaces.IClientRepository
	redis   RedisKV
	ttl     time.Duration
	log     *zap.SugaredLogger
}

var _ interfaces.IClientRepository = (*CachedClientRepository)(nil)

func NewCachedClientRepository(primary interfaces.IClientRepository, rdb RedisKV, ttl time.Duration, log *zap.SugaredLogger) *CachedClientRepository {
	if ttl <= 0 {
		ttl = defaultClientCacheTTL
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &CachedClientRepository{primary: primary, redis: rdb, ttl: ttl, log: log}
}

func clientCacheKey(id int64) string {
	return "cliente:" + strconv.FormatInt(id, 10)
}

func (r *CachedClientRepository) GetByID(ctx context.Context, id int64) (entities.Client, error) {
	key := clientCacheKey(id)

	cached, err := r.redis.Get(ctx, key).Bytes()
	if err == nil {
		var c entities.Client
		if err := json.Unmarshal(cached, &c); err == nil {
			return c, nil
		}
		r.log.Warnf("[client][cache] corrupt entry key=%s", key)
	} else if err != redis.Nil {
		r.log.Infof("[client][cache] get failed key=%s err=%v", key, err)
	}

	c, err := r.primary.GetByID(ctx, id)
	if err != nil {
		return entities.Client{}, err
	}

	data, err := json.Marshal(c)
	if err == nil {
		if sErr := r.redis.Set(ctx, key, data, r.ttl).Err(); sErr != nil {
			r.log.Infof("[client][cache] set failed key=%s err=%v", key, sErr)
		}
	}
	return c, nil
}
