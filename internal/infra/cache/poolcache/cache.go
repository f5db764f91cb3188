package poolcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
)

var (
	// ErrCacheMiss возвращается, когда пул категории отсутствует в кеше
	ErrCacheMiss = errors.New("poolcache: cache miss")

	// ErrCacheUnavailable возвращается при ошибках Redis
	ErrCacheUnavailable = errors.New("poolcache: cache unavailable")
)

// Cache Redis-кеш пулов оборудования по категориям.
// Кешируется только состав пула (список единиц категории) с коротким TTL.
// Результаты проверки доступности не кешируются никогда: они должны
// пересчитываться свежими на каждое изменение фильтров.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New создает кеш пулов оборудования
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
	}
}

func poolKey(categoryID int64) string {
	return fmt.Sprintf("unitpool:%d", categoryID)
}

// Get возвращает закешированный пул категории или ErrCacheMiss
func (c *Cache) Get(ctx context.Context, categoryID int64) ([]*domain.EquipmentUnit, error) {
	data, err := c.client.Get(ctx, poolKey(categoryID)).Result()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get: %v", ErrCacheUnavailable, err)
	}

	var units []*domain.EquipmentUnit
	if err := json.Unmarshal([]byte(data), &units); err != nil {
		return nil, fmt.Errorf("%w: Get - unmarshal: %v", ErrCacheUnavailable, err)
	}

	return units, nil
}

// Set кладет пул категории в кеш с настроенным TTL
func (c *Cache) Set(ctx context.Context, categoryID int64, units []*domain.EquipmentUnit) error {
	data, err := json.Marshal(units)
	if err != nil {
		return fmt.Errorf("%w: Set - marshal: %v", ErrCacheUnavailable, err)
	}

	if err := c.client.Set(ctx, poolKey(categoryID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set: %v", ErrCacheUnavailable, err)
	}

	return nil
}
