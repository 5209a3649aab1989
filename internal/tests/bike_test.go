package tests

import (
	"context"
	"errors"
	"testing"

	"bikerent/internal/domain"
	"bikerent/internal/redis"
	"bikerent/internal/service"
)

// ──────────────────────────────────────────────
// BIKE REGISTRATION AND LOCATION
// ──────────────────────────────────────────────

func newBikeFixture() (*service.BikeService, *MockBikeRepository, *MockLocationStore) {
	bikeRepo := NewMockBikeRepository()
	locationStore := NewMockLocationStore()
	return service.NewBikeService(bikeRepo, locationStore, nil), bikeRepo, locationStore
}

func TestRegisterBike_AssignsIdentityAndDefaults(t *testing.T) {
	t.Parallel()

	svc, bikeRepo, locationStore := newBikeFixture()

	bike, err := svc.Register(context.Background(), service.RegisterBikeRequest{
		Name:        "caloi mountainbike",
		Type:        "mountain bike",
		BodySize:    26,
		MaxLoad:     150,
		Rate:        100.0,
		Description: "My bike",
		Rating:      5,
		Location:    domain.Location{Latitude: -23.55, Longitude: -46.63},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bike.ID == "" {
		t.Error("expected generated bike id")
	}
	if !bike.Available {
		t.Error("expected new bike to be available")
	}
	if bikeRepo.CountBikes() != 1 {
		t.Errorf("expected 1 bike, got %d", bikeRepo.CountBikes())
	}
	if !locationStore.HasLocation(bike.ID) {
		t.Error("expected bike in geo index")
	}
}

func TestMoveBike_OverwritesLocation(t *testing.T) {
	t.Parallel()

	svc, bikeRepo, locationStore := newBikeFixture()
	bikeRepo.AddBike(newTestBike("bike-1", 100.0))

	newYork := domain.Location{Latitude: 40.753056, Longitude: -73.983056}

	bike, err := svc.MoveTo(context.Background(), service.MoveBikeRequest{
		BikeID:    "bike-1",
		Latitude:  newYork.Latitude,
		Longitude: newYork.Longitude,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bike.Location != newYork {
		t.Errorf("expected location %v, got %v", newYork, bike.Location)
	}

	stored := bikeRepo.GetBike("bike-1")
	if stored.Location != newYork {
		t.Errorf("expected persisted location %v, got %v", newYork, stored.Location)
	}

	loc, ok := locationStore.GetLocation("bike-1")
	if !ok {
		t.Fatal("expected bike in geo index")
	}
	if loc.Lat != newYork.Latitude || loc.Lng != newYork.Longitude {
		t.Errorf("geo index out of sync: got (%v, %v)", loc.Lat, loc.Lng)
	}
}

func TestMoveBike_SameLocationIsNoOp(t *testing.T) {
	t.Parallel()

	svc, bikeRepo, _ := newBikeFixture()
	bikeRepo.AddBike(newTestBike("bike-1", 100.0))

	req := service.MoveBikeRequest{BikeID: "bike-1", Latitude: 10, Longitude: 20}

	ctx := context.Background()
	first, err := svc.MoveTo(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.MoveTo(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Location != second.Location {
		t.Error("expected repeated move to the same location to be observably a no-op")
	}
}

func TestMoveBike_UnknownBikeFails(t *testing.T) {
	t.Parallel()

	svc, _, _ := newBikeFixture()

	_, err := svc.MoveTo(context.Background(), service.MoveBikeRequest{
		BikeID:    "fake-id",
		Latitude:  40.753056,
		Longitude: -73.983056,
	})
	if !errors.Is(err, service.ErrBikeNotFound) {
		t.Errorf("expected ErrBikeNotFound, got %v", err)
	}
}

func TestMoveBike_RejectsOutOfRangeCoordinates(t *testing.T) {
	t.Parallel()

	svc, bikeRepo, _ := newBikeFixture()
	bikeRepo.AddBike(newTestBike("bike-1", 100.0))

	cases := []struct {
		name     string
		lat, lng float64
	}{
		{"latitude too high", 91, 0},
		{"latitude too low", -91, 0},
		{"longitude too high", 0, 181},
		{"longitude too low", 0, -181},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.MoveTo(context.Background(), service.MoveBikeRequest{
				BikeID:    "bike-1",
				Latitude:  tc.lat,
				Longitude: tc.lng,
			})
			if !errors.Is(err, service.ErrInvalidLocation) {
				t.Errorf("expected ErrInvalidLocation, got %v", err)
			}
		})
	}
}

func TestRemoveBike_DeletesAndClearsGeoIndex(t *testing.T) {
	t.Parallel()

	svc, bikeRepo, locationStore := newBikeFixture()
	bike := newTestBike("bike-1", 100.0)
	bikeRepo.AddBike(bike)
	locationStore.AddBikeLocation(redis.BikeLocation{BikeID: "bike-1", Lat: 10, Lng: 20})

	if err := svc.Remove(context.Background(), "bike-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bikeRepo.CountBikes() != 0 {
		t.Errorf("expected 0 bikes, got %d", bikeRepo.CountBikes())
	}
	if locationStore.HasLocation("bike-1") {
		t.Error("expected bike removed from geo index")
	}
}

func TestRemoveBike_UnknownBikeFails(t *testing.T) {
	t.Parallel()

	svc, _, _ := newBikeFixture()

	err := svc.Remove(context.Background(), "fake-id")
	if !errors.Is(err, service.ErrBikeNotFound) {
		t.Errorf("expected ErrBikeNotFound, got %v", err)
	}
}

func TestFindNearby_HydratesFromRepository(t *testing.T) {
	t.Parallel()

	svc, bikeRepo, locationStore := newBikeFixture()
	bikeRepo.AddBike(newTestBike("bike-1", 100.0))
	bikeRepo.AddBike(newTestBike("bike-2", 50.0))
	locationStore.AddBikeLocation(redis.BikeLocation{BikeID: "bike-1", Lat: 10, Lng: 20})
	locationStore.AddBikeLocation(redis.BikeLocation{BikeID: "bike-2", Lat: 10.01, Lng: 20.01})

	bikes, err := svc.FindNearby(context.Background(), 10, 20, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bikes) != 2 {
		t.Fatalf("expected 2 bikes, got %d", len(bikes))
	}
	// Geo ordering preserved.
	if bikes[0].ID != "bike-1" || bikes[1].ID != "bike-2" {
		t.Errorf("expected geo order bike-1, bike-2; got %s, %s", bikes[0].ID, bikes[1].ID)
	}
}

func TestFindNearby_WithoutGeoIndexReturnsNothing(t *testing.T) {
	t.Parallel()

	bikeRepo := NewMockBikeRepository()
	bikeRepo.AddBike(newTestBike("bike-1", 100.0))
	svc := service.NewBikeService(bikeRepo, nil, nil)

	bikes, err := svc.FindNearby(context.Background(), 10, 20, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bikes) != 0 {
		t.Errorf("expected no bikes without a geo index, got %d", len(bikes))
	}
}

func TestFindNearby_SkipsStaleGeoEntries(t *testing.T) {
	t.Parallel()

	svc, bikeRepo, locationStore := newBikeFixture()
	bikeRepo.AddBike(newTestBike("bike-1", 100.0))
	// bike-2 was removed from the fleet but lingers in the geo index.
	locationStore.AddBikeLocation(redis.BikeLocation{BikeID: "bike-1", Lat: 10, Lng: 20})
	locationStore.AddBikeLocation(redis.BikeLocation{BikeID: "bike-2", Lat: 10, Lng: 20})

	bikes, err := svc.FindNearby(context.Background(), 10, 20, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bikes) != 1 {
		t.Fatalf("expected 1 bike, got %d", len(bikes))
	}
	if bikes[0].ID != "bike-1" {
		t.Errorf("expected bike-1, got %s", bikes[0].ID)
	}
}
