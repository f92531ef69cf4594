// README: Order aggregate, luggage items, and status definitions.
package order

import (
	"time"

	"github.com/vikrant8989/Drop-Go/internal/modules/pricing"
	"github.com/vikrant8989/Drop-Go/internal/types"
)

type Status string

const (
	StatusNone       Status = "none"
	StatusPending    Status = "Pending"
	StatusConfirmed  Status = "Confirmed"
	StatusCheckedIn  Status = "Checked In"
	StatusCheckedOut Status = "Checked Out"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Bag is a single luggage item. Weight is derived from size at submission
// time, never supplied by the customer.
type Bag struct {
	Size   pricing.BagSize `json:"size"`
	Weight int             `json:"weight"`
	Image  string          `json:"image,omitempty"`
}

// Schedule is a date plus a free-form time-of-day string ("10:30 AM").
type Schedule struct {
	Date time.Time `json:"date"`
	Time string    `json:"time"`
}

type Order struct {
	ID            types.ID
	UserID        string
	StoreID       types.ID
	Luggage       []Bag
	DurationDays  int
	Plan          pricing.Plan
	Mode          pricing.BookingMode
	Status        Status
	StatusVersion int
	Pickup        Schedule
	Return        Schedule
	PaymentStatus PaymentStatus
	TotalAmount   types.Money
	Discount      int64
	Address       string
	AddressPoint  *types.Point
	CreatedAt     time.Time
}

// Event is an append-only record of a status transition.
type Event struct {
	ID         int64
	OrderID    types.ID
	FromStatus Status
	ToStatus   Status
	ActorType  string
	ActorID    *string
	CreatedAt  time.Time
}

// AllowedTransitions is the legal order-status flow. Statuses may only move
// forward along it; terminal states have no outgoing edges.
var AllowedTransitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn:  {StatusCheckedOut},
	StatusCheckedOut: {StatusCompleted},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

// ValidStatus reports whether v names a real order status.
func ValidStatus(v Status) bool {
	switch v {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether v names a real payment status.
func ValidPaymentStatus(v PaymentStatus) bool {
	switch v {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}
