package domain

// Location is an immutable coordinate pair. It has no identity of its own;
// two locations with the same coordinates are the same place.
type Location struct {
	Latitude  float64
	Longitude float64
}
