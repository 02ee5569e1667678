package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
)

const keyPrefix = "availability"

// Cache кэш занятых дат услуги по месяцам
type Cache struct {
	client RedisClient
	ttl    time.Duration
}

// NewCache создает кэш с временем жизни записи ttl
func NewCache(client RedisClient, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Key ключ месяца: availability:{serviceId}:{YYYY-MM}
func Key(serviceID string, month domain.MonthCursor) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, serviceID, month.String())
}

// Get возвращает набор занятых дат месяца или ErrCacheMiss
func (c *Cache) Get(ctx context.Context, serviceID string, month domain.MonthCursor) (domain.BookedDateSet, error) {
	raw, err := c.client.Get(ctx, Key(serviceID, month)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - %s: %v", ErrCache, Key(serviceID, month), err)
	}

	var booked domain.BookedDateSet
	if err := json.Unmarshal(raw, &booked); err != nil {
		return nil, fmt.Errorf("%w: Get - %s: %v", ErrDecode, Key(serviceID, month), err)
	}
	return booked, nil
}

// Set сохраняет набор занятых дат месяца
func (c *Cache) Set(ctx context.Context, serviceID string, month domain.MonthCursor, booked domain.BookedDateSet) error {
	if booked == nil {
		booked = domain.BookedDateSet{}
	}
	raw, err := json.Marshal(booked)
	if err != nil {
		return fmt.Errorf("%w: Set - encode: %v", ErrCache, err)
	}

	if err := c.client.Set(ctx, Key(serviceID, month), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set - %s: %v", ErrCache, Key(serviceID, month), err)
	}
	return nil
}

// Invalidate удаляет месяцы услуги из кэша
func (c *Cache) Invalidate(ctx context.Context, serviceID string, months []domain.MonthCursor) error {
	if len(months) == 0 {
		return nil
	}
	keys := make([]string, 0, len(months))
	for _, m := range months {
		keys = append(keys, Key(serviceID, m))
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate - service=%s: %v", ErrCache, serviceID, err)
	}
	return nil
}
