// README: Store aggregate: a storage location with bag-slot capacity.
package store

import (
	"time"

	"github.com/vikrant8989/Drop-Go/internal/types"
)

type Store struct {
	ID            types.ID
	Name          string
	Address       string
	City          string
	Pincode       string
	OwnerName     string
	Timings       string
	IsOpen        bool
	PricePerDay   int64
	PricePerMonth map[string]int64
	Capacity      int
	ContactNumber string
	Description   string
	Email         string
	Images        []string
	Position      types.Point
	Ratings       float64
	TotalReviews  int
	Amenities     []string
	CreatedBy     string
	CreatedAt     time.Time
}

// OrderStats is the per-status order count attached to admin city listings.
type OrderStats struct {
	Pending    int `json:"Pending"`
	Confirmed  int `json:"Confirmed"`
	CheckedIn  int `json:"Checked In"`
	CheckedOut int `json:"Checked Out"`
	Cancelled  int `json:"Cancelled"`
	Completed  int `json:"Completed"`
}

// NearbyResult pairs a store with its distance from the searched point.
type NearbyResult struct {
	Store      Store
	DistanceKm float64
}
