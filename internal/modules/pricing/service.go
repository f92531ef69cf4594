// README: Pricing service computes booking totals and pickup charges (pure).
package pricing

import (
	"math"
	"time"

	"github.com/vikrant8989/Drop-Go/internal/metrics"
	"github.com/vikrant8989/Drop-Go/internal/types"
)

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// PickupCharge converts a travel distance in km into the courier pickup fee.
// Tiered: base fare, then per-km up to 10 km, then a lower per-km rate.
// The result is rounded up to the next whole rupee.
func (s *Service) PickupCharge(distanceKm float64) int64 {
	if distanceKm <= 0 {
		return 0
	}
	charge := pickupBaseFare
	if distanceKm <= pickupTier1LimitKm {
		charge += distanceKm * pickupRateTier1
	} else {
		charge += pickupTier1LimitKm * pickupRateTier1
		charge += (distanceKm - pickupTier1LimitKm) * pickupRateTier2
	}
	return int64(math.Ceil(charge))
}

// Quote prices a booking from canonical inputs. It is a pure function:
// identical inputs always produce identical output.
func (s *Service) Quote(req QuoteRequest) QuoteResult {
	days := DurationDays(req.DropOffDate, req.PickUpDate)

	var base int64
	switch req.Plan {
	case PlanMonthly:
		blocks := int64(math.Ceil(float64(days) / 30.0))
		for _, size := range req.Bags {
			base += blocks * monthlyRate(size)
		}
	default:
		base = int64(bagCount(req)) * dailyRatePerBag * int64(days)
	}

	var pickup int64
	if req.Mode == ModePickup {
		pickup = s.PickupCharge(req.DistanceKm)
	}

	metrics.QuotesComputedTotal.Inc()
	return QuoteResult{
		Total:        types.INR(base + pickup),
		Base:         base,
		PickupCharge: pickup,
		DurationDays: days,
	}
}

// DurationDays returns the elapsed days between drop-off and pickup, rounded
// up, clamped to a minimum of 1. A missing date also yields 1.
func DurationDays(dropOff, pickUp time.Time) int {
	if dropOff.IsZero() || pickUp.IsZero() {
		return 1
	}
	days := int(math.Ceil(pickUp.Sub(dropOff).Hours() / 24.0))
	if days < 1 {
		return 1
	}
	return days
}

func bagCount(req QuoteRequest) int {
	if len(req.Bags) > 0 {
		return len(req.Bags)
	}
	if req.NumberOfBags > 0 {
		return req.NumberOfBags
	}
	return 0
}
