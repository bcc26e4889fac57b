// Package providers contains the travel-data clients. Each client
// searches one upstream (flights, hotels, trains, activities) and, when
// the upstream is unreachable, slow, or returns nothing usable, falls
// back to deterministic synthetic offers so the planning pipeline
// always has data to work with.
package providers

import (
	"context"
	"errors"
)

// Criteria carries the parameters of a single provider search.
type Criteria struct {
	Origin      string
	Destination string
	Date        string // YYYY-MM-DD
	Nights      int
	Travelers   int
	Budget      float64
}

// FlightOffer is a single priced flight option.
type FlightOffer struct {
	ID        string  `json:"id"`
	Airline   string  `json:"airline"`
	Departure string  `json:"departure"`
	Arrival   string  `json:"arrival"`
	Duration  string  `json:"duration"`
	Price     float64 `json:"price"`
	Stops     int     `json:"stops"`
}

// HotelOffer is a single priced hotel option. Price is per night.
type HotelOffer struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Rating    float64  `json:"rating"`
	Location  string   `json:"location"`
	Amenities []string `json:"amenities"`
}

// TrainFares holds per-class fares for a train offer.
type TrainFares struct {
	Sleeper float64 `json:"sleeper"`
	AC3     float64 `json:"ac3"`
	AC2     float64 `json:"ac2"`
}

// TrainOffer is a single train option between two stations.
type TrainOffer struct {
	Number       string     `json:"number"`
	Name         string     `json:"name"`
	Departure    string     `json:"departure"`
	Arrival      string     `json:"arrival"`
	Duration     string     `json:"duration"`
	Fares        TrainFares `json:"fares"`
	Availability string     `json:"availability"`
}

// ActivityOffer is a single bookable activity at the destination.
type ActivityOffer struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Duration    string  `json:"duration"`
	Rating      float64 `json:"rating"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// FlightSource searches flight options. Implementations never fail:
// an unusable upstream yields synthetic offers instead of an error.
type FlightSource interface {
	Search(ctx context.Context, c Criteria) []FlightOffer
}

// HotelSource searches hotel options.
type HotelSource interface {
	Search(ctx context.Context, c Criteria) []HotelOffer
}

// TrainSource searches train options.
type TrainSource interface {
	Search(ctx context.Context, c Criteria) []TrainOffer
}

// ActivitySource searches activity options.
type ActivitySource interface {
	Search(ctx context.Context, c Criteria) []ActivityOffer
}

// ErrProviderUnavailable is returned internally when an upstream is
// unreachable or its payload is unusable. It never escapes a client.
var ErrProviderUnavailable = errors.New("provider unavailable")
