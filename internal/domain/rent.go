package domain

import "time"

// Rent links one bike and one user for a bounded time interval. A rent with a
// zero EndTime is open: the bike is out and the amount has not been billed yet.
// Once EndTime is set the record is immutable history.
type Rent struct {
	ID        string
	Bike      *Bike
	User      *User
	StartTime time.Time
	EndTime   time.Time
	Amount    float64
}

// Open reports whether the rent has not been returned yet.
func (r *Rent) Open() bool {
	return r.EndTime.IsZero()
}
