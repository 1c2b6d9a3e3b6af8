package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"dinemart/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Restaurant caching
	GetRestaurant(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
	SetRestaurant(ctx context.Context, restaurant *models.Restaurant, ttl time.Duration) error
	DeleteRestaurant(ctx context.Context, id uuid.UUID) error

	// Menu item caching
	GetMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	SetMenuItem(ctx context.Context, item *models.MenuItem, ttl time.Duration) error
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error

	// Generic string operations
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", err, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func restaurantKey(id uuid.UUID) string { return fmt.Sprintf("restaurant:%s", id.String()) }
func menuItemKey(id uuid.UUID) string   { return fmt.Sprintf("menu_item:%s", id.String()) }

func (s *redisCacheService) GetRestaurant(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	ok, err := s.getJSON(ctx, restaurantKey(id), &restaurant)
	if err != nil || !ok {
		return nil, err
	}
	return &restaurant, nil
}

func (s *redisCacheService) SetRestaurant(ctx context.Context, restaurant *models.Restaurant, ttl time.Duration) error {
	return s.setJSON(ctx, restaurantKey(restaurant.ID), restaurant, ttl)
}

func (s *redisCacheService) DeleteRestaurant(ctx context.Context, id uuid.UUID) error {
	return s.client.Del(ctx, restaurantKey(id)).Err()
}

func (s *redisCacheService) GetMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	ok, err := s.getJSON(ctx, menuItemKey(id), &item)
	if err != nil || !ok {
		return nil, err
	}
	return &item, nil
}

func (s *redisCacheService) SetMenuItem(ctx context.Context, item *models.MenuItem, ttl time.Duration) error {
	return s.setJSON(ctx, menuItemKey(item.ID), item, ttl)
}

func (s *redisCacheService) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	return s.client.Del(ctx, menuItemKey(id)).Err()
}

func (s *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return value, err
}

func (s *redisCacheService) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *redisCacheService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *redisCacheService) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached %s: %w", key, err)
	}
	return true, nil
}

func (s *redisCacheService) setJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}
