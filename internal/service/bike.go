package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"bikerent/internal/domain"
	"bikerent/internal/redis"
	"bikerent/internal/repository"
)

// BikeService handles fleet operations: registration, relocation, removal and
// nearby lookup.
type BikeService struct {
	bikeRepo      repository.BikeRepository
	locationStore redis.LocationStoreInterface
	cacheStore    *redis.CacheStore
}

// NewBikeService creates a new BikeService. locationStore and cacheStore may
// be nil; the service then skips the Redis mirror.
func NewBikeService(
	bikeRepo repository.BikeRepository,
	locationStore redis.LocationStoreInterface,
	cacheStore *redis.CacheStore,
) *BikeService {
	return &BikeService{
		bikeRepo:      bikeRepo,
		locationStore: locationStore,
		cacheStore:    cacheStore,
	}
}

// RegisterBikeRequest contains the parameters for registering a bike.
type RegisterBikeRequest struct {
	Name        string
	Type        string
	BodySize    int
	MaxLoad     int
	Rate        float64
	Description string
	Rating      float64
	ImageURLs   []string
	Location    domain.Location
}

// Register stores a new bike and assigns its identity. Field content beyond
// structural correctness is the caller's contract; registration itself adds
// no domain validation.
func (s *BikeService) Register(ctx context.Context, req RegisterBikeRequest) (*domain.Bike, error) {
	bike := &domain.Bike{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Type:        req.Type,
		BodySize:    req.BodySize,
		MaxLoad:     req.MaxLoad,
		Rate:        req.Rate,
		Description: req.Description,
		Rating:      req.Rating,
		ImageURLs:   req.ImageURLs,
		Available:   true,
		Location:    req.Location,
	}

	if err := s.bikeRepo.Create(ctx, bike); err != nil {
		return nil, err
	}

	if s.locationStore != nil {
		_ = s.locationStore.UpdateLocation(ctx, bike.ID, bike.Location.Latitude, bike.Location.Longitude)
	}
	if s.cacheStore != nil {
		_ = s.cacheStore.AddAvailableBike(ctx, bike.ID)
	}

	return bike, nil
}

// Get retrieves a bike by ID.
func (s *BikeService) Get(ctx context.Context, bikeID string) (*domain.Bike, error) {
	if bikeID == "" {
		return nil, ErrInvalidBikeID
	}

	bike, err := s.bikeRepo.GetByID(ctx, bikeID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrBikeNotFound
	}
	return bike, err
}

// GetAll retrieves all registered bikes.
func (s *BikeService) GetAll(ctx context.Context) ([]*domain.Bike, error) {
	return s.bikeRepo.GetAll(ctx)
}

// MoveBikeRequest contains the parameters for relocating a bike.
type MoveBikeRequest struct {
	BikeID    string
	Latitude  float64
	Longitude float64
}

// MoveTo overwrites the bike's location. Calling it again with the same
// location is observably a no-op.
func (s *BikeService) MoveTo(ctx context.Context, req MoveBikeRequest) (*domain.Bike, error) {
	if req.BikeID == "" {
		return nil, ErrInvalidBikeID
	}

	if !isValidLatitude(req.Latitude) || !isValidLongitude(req.Longitude) {
		return nil, ErrInvalidLocation
	}

	bike, err := s.bikeRepo.GetByID(ctx, req.BikeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBikeNotFound
		}
		return nil, err
	}

	bike.Location = domain.Location{Latitude: req.Latitude, Longitude: req.Longitude}

	if err := s.bikeRepo.Update(ctx, bike); err != nil {
		return nil, err
	}

	if s.locationStore != nil {
		if err := s.locationStore.UpdateLocation(ctx, bike.ID, req.Latitude, req.Longitude); err != nil {
			return nil, err
		}
	}
	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateBike(ctx, bike.ID)
	}

	return bike, nil
}

// Remove deletes a bike from the fleet.
func (s *BikeService) Remove(ctx context.Context, bikeID string) error {
	if bikeID == "" {
		return ErrInvalidBikeID
	}

	if err := s.bikeRepo.Delete(ctx, bikeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBikeNotFound
		}
		return err
	}

	if s.locationStore != nil {
		_ = s.locationStore.RemoveLocation(ctx, bikeID)
	}
	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateBike(ctx, bikeID)
		_ = s.cacheStore.RemoveAvailableBike(ctx, bikeID)
	}

	return nil
}

// FindNearby returns bikes within radiusKm of the given point, closest first.
// Bike details are served from cache when possible and hydrated from the
// repository on a miss.
func (s *BikeService) FindNearby(ctx context.Context, lat, lng, radiusKm float64) ([]*domain.Bike, error) {
	if !isValidLatitude(lat) || !isValidLongitude(lng) {
		return nil, ErrInvalidLocation
	}

	// Without the geo mirror there is nothing to search.
	if s.locationStore == nil {
		return nil, nil
	}

	locations, err := s.locationStore.FindNearbyBikes(ctx, lat, lng, radiusKm)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(locations))
	for _, loc := range locations {
		ids = append(ids, loc.BikeID)
	}

	cached := make(map[string]*redis.CachedBike)
	missing := ids
	if s.cacheStore != nil {
		cached, missing, err = s.cacheStore.GetBikesBatch(ctx, ids)
		if err != nil {
			cached, missing = make(map[string]*redis.CachedBike), ids
		}
	}

	var toCache []*redis.CachedBike
	fetched := make(map[string]*domain.Bike)
	for _, id := range missing {
		bike, err := s.bikeRepo.GetByID(ctx, id)
		if err != nil {
			// Geo index can lag behind removals.
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, err
		}
		fetched[id] = bike
		toCache = append(toCache, cachedFromBike(bike))
	}

	if s.cacheStore != nil && len(toCache) > 0 {
		_ = s.cacheStore.SetBikesBatch(ctx, toCache)
	}

	// Preserve distance ordering from the geo query.
	bikes := make([]*domain.Bike, 0, len(locations))
	for _, loc := range locations {
		if bike, ok := fetched[loc.BikeID]; ok {
			bikes = append(bikes, bike)
			continue
		}
		if cb, ok := cached[loc.BikeID]; ok {
			bikes = append(bikes, bikeFromCached(cb))
		}
	}

	return bikes, nil
}

func cachedFromBike(bike *domain.Bike) *redis.CachedBike {
	return &redis.CachedBike{
		ID:        bike.ID,
		Name:      bike.Name,
		Type:      bike.Type,
		Rate:      bike.Rate,
		Rating:    bike.Rating,
		Available: bike.Available,
		Latitude:  bike.Location.Latitude,
		Longitude: bike.Location.Longitude,
	}
}

func bikeFromCached(cb *redis.CachedBike) *domain.Bike {
	return &domain.Bike{
		ID:        cb.ID,
		Name:      cb.Name,
		Type:      cb.Type,
		Rate:      cb.Rate,
		Rating:    cb.Rating,
		Available: cb.Available,
		Location:  domain.Location{Latitude: cb.Latitude, Longitude: cb.Longitude},
	}
}

func isValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func isValidLongitude(lng float64) bool {
	return lng >= -180 && lng <= 180
}
