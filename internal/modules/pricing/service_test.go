package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPickupCharge(t *testing.T) {
	s := NewService()

	tests := []struct {
		name       string
		distanceKm float64
		want       int64
	}{
		{"zero distance", 0, 0},
		{"negative distance", -3.5, 0},
		{"5km within first tier", 5, 286},    // 181 + 5*20.9 = 285.5 -> 286
		{"exactly 10km", 10, 390},            // 181 + 209 = 390
		{"12km crosses tier", 12, 420},       // 181 + 209 + 2*14.9 = 419.8 -> 420
		{"15km crosses tier", 15, 465},       // 181 + 209 + 5*14.9 = 464.5 -> 465
		{"short hop", 0.5, 192},              // 181 + 0.5*20.9 = 191.45 -> 192
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.PickupCharge(tt.distanceKm))
		})
	}
}

func TestQuoteDailyPlan(t *testing.T) {
	s := NewService()

	// Drop-off 2024-01-01, pickup 2024-01-04, 2 small bags, self drop-off.
	res := s.Quote(QuoteRequest{
		Plan:        PlanDaily,
		Mode:        ModeSelf,
		Bags:        []BagSize{BagSmall, BagSmall},
		DropOffDate: date(2024, time.January, 1),
		PickUpDate:  date(2024, time.January, 4),
	})
	assert.Equal(t, 3, res.DurationDays)
	assert.Equal(t, int64(600), res.Total.Amount) // 2 * 100 * 3
	assert.Equal(t, "INR", res.Total.Currency)
	assert.Zero(t, res.PickupCharge)
}

func TestQuoteDailyPlanBagCountOnly(t *testing.T) {
	s := NewService()

	// Self drop-off on the daily plan may supply just a bag count.
	res := s.Quote(QuoteRequest{
		Plan:         PlanDaily,
		Mode:         ModeSelf,
		NumberOfBags: 4,
		DropOffDate:  date(2024, time.March, 10),
		PickUpDate:   date(2024, time.March, 12),
	})
	assert.Equal(t, int64(4*100*2), res.Total.Amount)
}

func TestQuoteMonthlyPlan(t *testing.T) {
	s := NewService()

	// 35 days -> ceil(35/30) = 2 blocks. small + large = 2*500 + 2*1000.
	res := s.Quote(QuoteRequest{
		Plan:        PlanMonthly,
		Mode:        ModeSelf,
		Bags:        []BagSize{BagSmall, BagLarge},
		DropOffDate: date(2024, time.January, 1),
		PickUpDate:  date(2024, time.February, 5),
	})
	assert.Equal(t, 35, res.DurationDays)
	assert.Equal(t, int64(3000), res.Total.Amount)
}

func TestQuoteMonthlyBoundary(t *testing.T) {
	s := NewService()

	// Exactly 30 days bills one block per bag.
	res := s.Quote(QuoteRequest{
		Plan:        PlanMonthly,
		Bags:        []BagSize{BagMedium},
		DropOffDate: date(2024, time.January, 1),
		PickUpDate:  date(2024, time.January, 31),
	})
	assert.Equal(t, 30, res.DurationDays)
	assert.Equal(t, int64(750), res.Total.Amount)

	// 31 days tips into a second block.
	res = s.Quote(QuoteRequest{
		Plan:        PlanMonthly,
		Bags:        []BagSize{BagMedium},
		DropOffDate: date(2024, time.January, 1),
		PickUpDate:  date(2024, time.February, 1),
	})
	assert.Equal(t, 31, res.DurationDays)
	assert.Equal(t, int64(1500), res.Total.Amount)
}

func TestQuotePickupModeAddsCharge(t *testing.T) {
	s := NewService()

	res := s.Quote(QuoteRequest{
		Plan:        PlanDaily,
		Mode:        ModePickup,
		Bags:        []BagSize{BagSmall},
		DropOffDate: date(2024, time.January, 1),
		PickUpDate:  date(2024, time.January, 2),
		DistanceKm:  12,
	})
	assert.Equal(t, int64(420), res.PickupCharge)
	assert.Equal(t, int64(100+420), res.Total.Amount)

	// Self mode ignores the distance entirely.
	res = s.Quote(QuoteRequest{
		Plan:        PlanDaily,
		Mode:        ModeSelf,
		Bags:        []BagSize{BagSmall},
		DropOffDate: date(2024, time.January, 1),
		PickUpDate:  date(2024, time.January, 2),
		DistanceKm:  12,
	})
	assert.Zero(t, res.PickupCharge)
	assert.Equal(t, int64(100), res.Total.Amount)
}

func TestQuoteClampsDuration(t *testing.T) {
	s := NewService()

	// Missing dates price as a single-day placeholder.
	res := s.Quote(QuoteRequest{Plan: PlanDaily, Bags: []BagSize{BagSmall}})
	assert.Equal(t, 1, res.DurationDays)
	assert.Equal(t, int64(100), res.Total.Amount)

	// Inverted dates clamp to one day rather than going non-positive.
	res = s.Quote(QuoteRequest{
		Plan:        PlanDaily,
		Bags:        []BagSize{BagSmall},
		DropOffDate: date(2024, time.January, 5),
		PickUpDate:  date(2024, time.January, 1),
	})
	assert.Equal(t, 1, res.DurationDays)
	assert.Equal(t, int64(100), res.Total.Amount)
}

func TestQuoteIdempotent(t *testing.T) {
	s := NewService()
	req := QuoteRequest{
		Plan:        PlanMonthly,
		Mode:        ModePickup,
		Bags:        []BagSize{BagSmall, BagMedium, BagLarge},
		DropOffDate: date(2024, time.June, 1),
		PickUpDate:  date(2024, time.July, 15),
		DistanceKm:  7.3,
	}
	assert.Equal(t, s.Quote(req), s.Quote(req))
}

func TestWeightForSize(t *testing.T) {
	assert.Equal(t, 10, WeightForSize(BagSmall))
	assert.Equal(t, 15, WeightForSize(BagMedium))
	assert.Equal(t, 20, WeightForSize(BagLarge))
	assert.Zero(t, WeightForSize(BagSize("xl")))
}
