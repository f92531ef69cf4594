// README: Order service: booking creation with server-side pricing, the
// status state machine, and the admin edit flow.
package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vikrant8989/Drop-Go/internal/metrics"
	"github.com/vikrant8989/Drop-Go/internal/modules/pricing"
	storemod "github.com/vikrant8989/Drop-Go/internal/modules/store"
	"github.com/vikrant8989/Drop-Go/internal/types"
)

var (
	ErrBadRequest           = errors.New("bad request")
	ErrNotFound             = errors.New("order not found")
	ErrInvalidState         = errors.New("invalid state transition")
	ErrConflict             = errors.New("order state conflict")
	ErrForbidden            = errors.New("forbidden")
	ErrInsufficientCapacity = storemod.ErrInsufficientCapacity
	ErrStoreNotFound        = storemod.ErrNotFound
	ErrUpstream             = errors.New("upstream service error")
)

// Pricer computes booking totals from canonical inputs.
type Pricer interface {
	Quote(req pricing.QuoteRequest) pricing.QuoteResult
}

// CapacityLedger reserves and releases bag slots on a store.
type CapacityLedger interface {
	Reserve(ctx context.Context, id types.ID, bags int) error
	Release(ctx context.Context, id types.ID, bags int) error
	Get(ctx context.Context, id types.ID) (*storemod.Store, error)
}

// DistanceEstimator returns the travel distance in km between two points.
// Production wires the Google Distance Matrix service; tests stub it.
type DistanceEstimator interface {
	DistanceKm(ctx context.Context, origin, dest types.Point) (float64, error)
}

type Service struct {
	store    *Store
	pricing  Pricer
	capacity CapacityLedger
	distance DistanceEstimator
	log      *zap.Logger
}

func NewService(store *Store, pricer Pricer, capacity CapacityLedger, distance DistanceEstimator, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, pricing: pricer, capacity: capacity, distance: distance, log: log}
}

// BagInput is a luggage item as submitted by the client. Weight is ignored
// even if sent; it is derived from size.
type BagInput struct {
	Size  pricing.BagSize
	Image string
}

type CreateCommand struct {
	UserID       string
	StoreID      types.ID
	Plan         pricing.Plan
	Mode         pricing.BookingMode
	Bags         []BagInput
	NumberOfBags int
	DropOffDate  time.Time
	DropOffTime  string
	PickUpDate   time.Time
	PickUpTime   string
	Address      string
	AddressPoint *types.Point
}

// Create books an order: it prices the booking server-side, reserves store
// capacity atomically, and persists the order. The client never supplies
// the total.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Order, error) {
	if cmd.UserID == "" || cmd.StoreID == "" {
		return nil, ErrBadRequest
	}
	if cmd.DropOffDate.IsZero() || cmd.PickUpDate.IsZero() || cmd.DropOffTime == "" || cmd.PickUpTime == "" {
		return nil, ErrBadRequest
	}
	if cmd.Plan != pricing.PlanDaily && cmd.Plan != pricing.PlanMonthly {
		return nil, ErrBadRequest
	}
	if cmd.Mode != pricing.ModeSelf && cmd.Mode != pricing.ModePickup {
		return nil, ErrBadRequest
	}
	if cmd.Mode == pricing.ModePickup && (cmd.Address == "" || cmd.AddressPoint == nil) {
		return nil, ErrBadRequest
	}

	bags, err := resolveBags(cmd)
	if err != nil {
		return nil, err
	}

	st, err := s.capacity.Get(ctx, cmd.StoreID)
	if err != nil {
		return nil, err
	}

	var distanceKm float64
	if cmd.Mode == pricing.ModePickup {
		distanceKm, err = s.distance.DistanceKm(ctx, *cmd.AddressPoint, st.Position)
		if err != nil {
			metrics.UpstreamErrorsTotal.WithLabelValues("distance").Inc()
			s.log.Error("distance lookup failed", zap.Error(err))
			return nil, ErrUpstream
		}
	}

	sizes := make([]pricing.BagSize, len(bags))
	for i, b := range bags {
		sizes[i] = b.Size
	}
	quote := s.pricing.Quote(pricing.QuoteRequest{
		Plan:        cmd.Plan,
		Mode:        cmd.Mode,
		Bags:        sizes,
		DropOffDate: cmd.DropOffDate,
		PickUpDate:  cmd.PickUpDate,
		DistanceKm:  distanceKm,
	})

	if err := s.capacity.Reserve(ctx, cmd.StoreID, len(bags)); err != nil {
		if errors.Is(err, ErrInsufficientCapacity) {
			metrics.CapacityRejectionsTotal.Inc()
		}
		return nil, err
	}

	now := time.Now()
	o := &Order{
		ID:            types.ID(uuid.NewString()),
		UserID:        cmd.UserID,
		StoreID:       cmd.StoreID,
		Luggage:       bags,
		DurationDays:  quote.DurationDays,
		Plan:          cmd.Plan,
		Mode:          cmd.Mode,
		Status:        StatusPending,
		StatusVersion: 0,
		Pickup:        Schedule{Date: cmd.DropOffDate, Time: cmd.DropOffTime},
		Return:        Schedule{Date: cmd.PickUpDate, Time: cmd.PickUpTime},
		PaymentStatus: PaymentPending,
		TotalAmount:   quote.Total,
		Address:       cmd.Address,
		AddressPoint:  cmd.AddressPoint,
		CreatedAt:     now,
	}
	if err := s.store.Create(ctx, o); err != nil {
		// Give the slots back; the booking never happened.
		if relErr := s.capacity.Release(ctx, cmd.StoreID, len(bags)); relErr != nil {
			s.log.Error("capacity release after failed insert", zap.Error(relErr))
		}
		return nil, err
	}

	_ = s.store.AppendEvent(ctx, &Event{
		OrderID:    o.ID,
		FromStatus: StatusNone,
		ToStatus:   StatusPending,
		ActorType:  "customer",
		ActorID:    &cmd.UserID,
		CreatedAt:  now,
	})
	metrics.OrdersCreatedTotal.Inc()
	s.log.Info("order created",
		zap.String("order_id", string(o.ID)),
		zap.String("store_id", string(o.StoreID)),
		zap.Int("bags", len(bags)),
		zap.Int64("total", o.TotalAmount.Amount),
	)
	return o, nil
}

func resolveBags(cmd CreateCommand) ([]Bag, error) {
	inputs := cmd.Bags
	if len(inputs) == 0 {
		// Simple self-serve daily bookings may send only a count; those slots
		// are booked as small bags since the daily rate is size-independent.
		if cmd.Mode != pricing.ModeSelf || cmd.Plan != pricing.PlanDaily || cmd.NumberOfBags <= 0 {
			return nil, ErrBadRequest
		}
		inputs = make([]BagInput, cmd.NumberOfBags)
		for i := range inputs {
			inputs[i] = BagInput{Size: pricing.BagSmall}
		}
	}

	bags := make([]Bag, len(inputs))
	for i, in := range inputs {
		if !pricing.ValidSize(in.Size) {
			return nil, ErrBadRequest
		}
		bags[i] = Bag{Size: in.Size, Weight: pricing.WeightForSize(in.Size), Image: in.Image}
	}
	return bags, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Order, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	if userID == "" {
		return nil, ErrBadRequest
	}
	return s.store.ListByUser(ctx, userID)
}

func (s *Service) ListByStore(ctx context.Context, storeID types.ID) ([]Order, error) {
	if storeID == "" {
		return nil, ErrBadRequest
	}
	return s.store.ListByStore(ctx, storeID)
}

type TransitionCommand struct {
	OrderID   types.ID
	To        Status
	ActorType string
	ActorID   string
}

// Transition moves an order along the legal status flow. Illegal jumps are
// rejected before any write; lost optimistic updates surface as ErrConflict.
// Cancelling returns the order's bag slots to the store.
func (s *Service) Transition(ctx context.Context, cmd TransitionCommand) error {
	if !ValidStatus(cmd.To) {
		return ErrBadRequest
	}
	o, err := s.store.Get(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	if !CanTransition(o.Status, cmd.To) {
		return ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, o.ID, o.Status, cmd.To, o.StatusVersion)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}

	if cmd.To == StatusCancelled {
		if err := s.capacity.Release(ctx, o.StoreID, len(o.Luggage)); err != nil {
			s.log.Error("capacity release on cancel", zap.Error(err),
				zap.String("order_id", string(o.ID)))
		}
	}

	actorID := cmd.ActorID
	_ = s.store.AppendEvent(ctx, &Event{
		OrderID:    o.ID,
		FromStatus: o.Status,
		ToStatus:   cmd.To,
		ActorType:  cmd.ActorType,
		ActorID:    &actorID,
		CreatedAt:  time.Now(),
	})
	metrics.OrderTransitionsTotal.WithLabelValues(string(cmd.To)).Inc()
	return nil
}

// CancelByUser lets a customer cancel their own order, but only while it is
// still Pending. Anything later needs the store admin.
func (s *Service) CancelByUser(ctx context.Context, orderID types.ID, userID string) error {
	o, err := s.store.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if o.UserID != userID {
		return ErrForbidden
	}
	if o.Status != StatusPending {
		return ErrInvalidState
	}
	return s.Transition(ctx, TransitionCommand{
		OrderID:   orderID,
		To:        StatusCancelled,
		ActorType: "customer",
		ActorID:   userID,
	})
}

// EditCommand carries the admin-editable order fields. Nil pointers mean
// "leave unchanged"; anything outside this allow-list cannot be edited.
type EditCommand struct {
	OrderID       types.ID
	ActorID       string
	Status        *Status
	PaymentStatus *PaymentStatus
	Luggage       []BagInput
	PickupDate    *time.Time
	PickupTime    *string
	ReturnDate    *time.Time
	ReturnTime    *string
	Discount      *int64
}

// Edit applies a partial admin update. Status changes still go through the
// transition table; a luggage replacement adjusts store capacity by the
// bag-count delta and reprices the order.
func (s *Service) Edit(ctx context.Context, cmd EditCommand) (*Order, error) {
	o, err := s.store.Get(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}

	if cmd.Luggage != nil {
		if err := s.replaceLuggage(ctx, o, cmd.Luggage); err != nil {
			return nil, err
		}
	}

	if cmd.PickupDate != nil || cmd.PickupTime != nil || cmd.ReturnDate != nil || cmd.ReturnTime != nil {
		pickup, ret := o.Pickup, o.Return
		if cmd.PickupDate != nil {
			pickup.Date = *cmd.PickupDate
		}
		if cmd.PickupTime != nil {
			pickup.Time = *cmd.PickupTime
		}
		if cmd.ReturnDate != nil {
			ret.Date = *cmd.ReturnDate
		}
		if cmd.ReturnTime != nil {
			ret.Time = *cmd.ReturnTime
		}
		if pickup.Time == "" || ret.Time == "" || ret.Date.Before(pickup.Date) {
			return nil, ErrBadRequest
		}
		days := pricing.DurationDays(pickup.Date, ret.Date)
		if err := s.store.UpdateSchedule(ctx, o.ID, pickup, ret, days); err != nil {
			return nil, err
		}
	}

	if cmd.Discount != nil {
		if *cmd.Discount < 0 {
			return nil, ErrBadRequest
		}
		if err := s.store.UpdateDiscount(ctx, o.ID, *cmd.Discount); err != nil {
			return nil, err
		}
	}

	if cmd.PaymentStatus != nil {
		if !ValidPaymentStatus(*cmd.PaymentStatus) {
			return nil, ErrBadRequest
		}
		if err := s.store.UpdatePaymentStatus(ctx, o.ID, *cmd.PaymentStatus); err != nil {
			return nil, err
		}
	}

	if cmd.Status != nil {
		if err := s.Transition(ctx, TransitionCommand{
			OrderID:   o.ID,
			To:        *cmd.Status,
			ActorType: "admin",
			ActorID:   cmd.ActorID,
		}); err != nil {
			return nil, err
		}
	}

	return s.store.Get(ctx, cmd.OrderID)
}

func (s *Service) replaceLuggage(ctx context.Context, o *Order, inputs []BagInput) error {
	if len(inputs) == 0 {
		return ErrBadRequest
	}
	bags := make([]Bag, len(inputs))
	for i, in := range inputs {
		if !pricing.ValidSize(in.Size) {
			return ErrBadRequest
		}
		bags[i] = Bag{Size: in.Size, Weight: pricing.WeightForSize(in.Size), Image: in.Image}
	}

	// Repricing a pickup order needs the current distance. Resolve it before
	// touching capacity: a dropped courier fee is a mispriced order, so an
	// outage fails the edit the same way it fails a booking.
	var distanceKm float64
	if o.Mode == pricing.ModePickup && o.AddressPoint != nil {
		st, err := s.capacity.Get(ctx, o.StoreID)
		if err != nil {
			return err
		}
		distanceKm, err = s.distance.DistanceKm(ctx, *o.AddressPoint, st.Position)
		if err != nil {
			metrics.UpstreamErrorsTotal.WithLabelValues("distance").Inc()
			s.log.Error("distance lookup failed", zap.Error(err),
				zap.String("order_id", string(o.ID)))
			return ErrUpstream
		}
	}

	// Capacity moves by bag count, not weight.
	delta := len(bags) - len(o.Luggage)
	if delta > 0 {
		if err := s.capacity.Reserve(ctx, o.StoreID, delta); err != nil {
			if errors.Is(err, ErrInsufficientCapacity) {
				metrics.CapacityRejectionsTotal.Inc()
			}
			return err
		}
	} else if delta < 0 {
		if err := s.capacity.Release(ctx, o.StoreID, -delta); err != nil {
			return err
		}
	}

	sizes := make([]pricing.BagSize, len(bags))
	for i, b := range bags {
		sizes[i] = b.Size
	}
	quote := s.pricing.Quote(pricing.QuoteRequest{
		Plan:        o.Plan,
		Mode:        o.Mode,
		Bags:        sizes,
		DropOffDate: o.Pickup.Date,
		PickUpDate:  o.Return.Date,
		DistanceKm:  distanceKm,
	})
	if err := s.store.UpdateLuggage(ctx, o.ID, bags, quote.Total); err != nil {
		// Undo the capacity move; the edit never took effect.
		if delta > 0 {
			if relErr := s.capacity.Release(ctx, o.StoreID, delta); relErr != nil {
				s.log.Error("capacity release after failed luggage update", zap.Error(relErr))
			}
		} else if delta < 0 {
			if resErr := s.capacity.Reserve(ctx, o.StoreID, -delta); resErr != nil {
				s.log.Error("capacity re-reserve after failed luggage update", zap.Error(resErr))
			}
		}
		return err
	}
	return nil
}
