package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles bike caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// BikeCacheTTL is short because availability flips on every rent and return.
const BikeCacheTTL = 30 * time.Second

const (
	bikeCachePrefix   = "cache:bike:"
	availableBikesKey = "available_bikes"
)

// CachedBike represents a cached bike entity.
type CachedBike struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Rate      float64 `json:"rate"`
	Rating    float64 `json:"rating"`
	Available bool    `json:"available"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GetBike retrieves a bike from cache. A nil result means cache miss.
func (s *CacheStore) GetBike(ctx context.Context, bikeID string) (*CachedBike, error) {
	data, err := s.client.Get(ctx, bikeCachePrefix+bikeID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var bike CachedBike
	if err := json.Unmarshal(data, &bike); err != nil {
		return nil, err
	}
	return &bike, nil
}

// SetBike stores a bike in cache.
func (s *CacheStore) SetBike(ctx context.Context, bike *CachedBike) error {
	data, err := json.Marshal(bike)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, bikeCachePrefix+bike.ID, data, BikeCacheTTL).Err()
}

// InvalidateBike removes a bike from cache.
func (s *CacheStore) InvalidateBike(ctx context.Context, bikeID string) error {
	return s.client.Del(ctx, bikeCachePrefix+bikeID).Err()
}

// GetBikesBatch retrieves multiple bikes from cache using a pipeline.
// Returns a map of bikeID -> CachedBike and a slice of missing IDs.
func (s *CacheStore) GetBikesBatch(ctx context.Context, bikeIDs []string) (map[string]*CachedBike, []string, error) {
	if len(bikeIDs) == 0 {
		return make(map[string]*CachedBike), nil, nil
	}

	pipe := s.client.Pipeline()
	cmds := make(map[string]*redis.StringCmd, len(bikeIDs))

	for _, id := range bikeIDs {
		cmds[id] = pipe.Get(ctx, bikeCachePrefix+id)
	}

	// Pipeline returns redis.Nil when some keys are missing; those fall out
	// as misses below.
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, bikeIDs, err
	}

	result := make(map[string]*CachedBike)
	var missing []string

	for id, cmd := range cmds {
		data, err := cmd.Bytes()
		if err != nil {
			missing = append(missing, id)
			continue
		}

		var bike CachedBike
		if err := json.Unmarshal(data, &bike); err != nil {
			missing = append(missing, id)
			continue
		}
		result[id] = &bike
	}

	return result, missing, nil
}

// SetBikesBatch stores multiple bikes in cache using a pipeline.
func (s *CacheStore) SetBikesBatch(ctx context.Context, bikes []*CachedBike) error {
	if len(bikes) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()

	for _, bike := range bikes {
		data, err := json.Marshal(bike)
		if err != nil {
			continue
		}
		pipe.Set(ctx, bikeCachePrefix+bike.ID, data, BikeCacheTTL)
	}

	_, err := pipe.Exec(ctx)
	return err
}

// AddAvailableBike adds a bike to the available set for fast lookup.
func (s *CacheStore) AddAvailableBike(ctx context.Context, bikeID string) error {
	return s.client.SAdd(ctx, availableBikesKey, bikeID).Err()
}

// RemoveAvailableBike removes a bike from the available set.
func (s *CacheStore) RemoveAvailableBike(ctx context.Context, bikeID string) error {
	return s.client.SRem(ctx, availableBikesKey, bikeID).Err()
}

// IsBikeAvailable checks if a bike is in the available set.
func (s *CacheStore) IsBikeAvailable(ctx context.Context, bikeID string) (bool, error) {
	return s.client.SIsMember(ctx, availableBikesKey, bikeID).Result()
}

// GetAvailableBikes returns all available bike IDs.
func (s *CacheStore) GetAvailableBikes(ctx context.Context) ([]string, error) {
	return s.client.SMembers(ctx, availableBikesKey).Result()
}
