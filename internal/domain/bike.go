package domain

// Bike represents a rentable bike in the fleet.
type Bike struct {
	ID          string
	Name        string
	Type        string
	BodySize    int
	MaxLoad     int
	Rate        float64 // hourly price
	Description string
	Rating      float64
	ImageURLs   []string
	Available   bool
	Location    Location
}
