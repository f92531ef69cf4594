// README: Pricing inputs and platform rate definitions.
package pricing

import (
	"time"

	"github.com/vikrant8989/Drop-Go/internal/types"
)

type Plan string

const (
	PlanDaily   Plan = "daily"
	PlanMonthly Plan = "monthly"
)

type BookingMode string

const (
	ModeSelf   BookingMode = "self"
	ModePickup BookingMode = "pickup"
)

type BagSize string

const (
	BagSmall  BagSize = "small"
	BagMedium BagSize = "medium"
	BagLarge  BagSize = "large"
)

// Platform rates in whole rupees. The daily plan is flat per bag per day;
// the monthly plan bills each bag per 30-day block by size.
const (
	dailyRatePerBag = 100

	monthlyRateSmall  = 500
	monthlyRateMedium = 750
	monthlyRateLarge  = 1000
)

// Pickup fee tiers: base fare plus a per-km rate that drops after 10 km.
const (
	pickupBaseFare     = 181.0
	pickupRateTier1    = 20.9
	pickupRateTier2    = 14.9
	pickupTier1LimitKm = 10.0
)

// WeightForSize returns the nominal bag weight in kg derived from size at
// submission time. Weight is never collected from the customer.
func WeightForSize(size BagSize) int {
	switch size {
	case BagSmall:
		return 10
	case BagMedium:
		return 15
	case BagLarge:
		return 20
	default:
		return 0
	}
}

// ValidSize reports whether size is one of the supported bag sizes.
func ValidSize(size BagSize) bool {
	switch size {
	case BagSmall, BagMedium, BagLarge:
		return true
	}
	return false
}

func monthlyRate(size BagSize) int64 {
	switch size {
	case BagSmall:
		return monthlyRateSmall
	case BagMedium:
		return monthlyRateMedium
	case BagLarge:
		return monthlyRateLarge
	default:
		return 0
	}
}

// QuoteRequest carries the canonical booking inputs the server prices from.
// For the daily plan with self drop-off, NumberOfBags may stand in for the
// Bags slice; otherwise Bags is authoritative.
type QuoteRequest struct {
	Plan         Plan
	Mode         BookingMode
	Bags         []BagSize
	NumberOfBags int
	DropOffDate  time.Time
	PickUpDate   time.Time
	DistanceKm   float64
}

// QuoteResult is the priced booking with its component breakdown.
type QuoteResult struct {
	Total        types.Money
	Base         int64
	PickupCharge int64
	DurationDays int
}
