// README: Store service: creation, listings, nearby search, capacity ledger.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vikrant8989/Drop-Go/internal/config"
	"github.com/vikrant8989/Drop-Go/internal/types"
)

var (
	ErrBadRequest           = errors.New("bad request")
	ErrNotFound             = errors.New("store not found")
	ErrInsufficientCapacity = errors.New("not enough storage capacity")
)

type Service struct {
	store *PGStore
	cfg   config.SearchConfig
	log   *zap.Logger
}

func NewService(store *PGStore, cfg config.SearchConfig, log *zap.Logger) *Service {
	return &Service{store: store, cfg: cfg, log: log}
}

type CreateCommand struct {
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
	Amenities     []string
	CreatedBy     string
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Store, error) {
	if cmd.Name == "" || cmd.Address == "" || cmd.City == "" || cmd.Pincode == "" ||
		cmd.OwnerName == "" || cmd.Timings == "" || cmd.ContactNumber == "" ||
		cmd.Email == "" || cmd.CreatedBy == "" {
		return nil, ErrBadRequest
	}
	if cmd.PricePerDay <= 0 || len(cmd.PricePerMonth) == 0 || cmd.Capacity <= 0 {
		return nil, ErrBadRequest
	}
	if cmd.Position.IsZero() || len(cmd.Amenities) == 0 {
		return nil, ErrBadRequest
	}

	st := &Store{
		ID:            types.ID(uuid.NewString()),
		Name:          cmd.Name,
		Address:       cmd.Address,
		City:          cmd.City,
		Pincode:       cmd.Pincode,
		OwnerName:     cmd.OwnerName,
		Timings:       cmd.Timings,
		IsOpen:        cmd.IsOpen,
		PricePerDay:   cmd.PricePerDay,
		PricePerMonth: cmd.PricePerMonth,
		Capacity:      cmd.Capacity,
		ContactNumber: cmd.ContactNumber,
		Description:   cmd.Description,
		Email:         cmd.Email,
		Images:        cmd.Images,
		Position:      cmd.Position,
		Amenities:     cmd.Amenities,
		CreatedBy:     cmd.CreatedBy,
		CreatedAt:     time.Now(),
	}
	if err := s.store.Create(ctx, st); err != nil {
		return nil, err
	}
	s.log.Info("store created", zap.String("store_id", string(st.ID)), zap.String("city", st.City))
	return st, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Store, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListAll(ctx context.Context) ([]Store, error) {
	return s.store.ListAll(ctx)
}

// ListByCity returns the city's stores. When withStats is set (admin
// callers), each store also carries its per-status order counts.
func (s *Service) ListByCity(ctx context.Context, city string, withStats bool) ([]Store, map[types.ID]OrderStats, error) {
	if city == "" {
		return nil, nil, ErrBadRequest
	}
	stores, err := s.store.ListByCity(ctx, city)
	if err != nil {
		return nil, nil, err
	}
	if !withStats {
		return stores, nil, nil
	}
	stats, err := s.store.OrderStatsByCity(ctx, city)
	if err != nil {
		return nil, nil, err
	}
	return stores, stats, nil
}

// Nearby finds stores around a coordinate using the GEO index.
func (s *Service) Nearby(ctx context.Context, p types.Point) ([]NearbyResult, error) {
	if p.IsZero() {
		return nil, ErrBadRequest
	}
	return s.store.Nearby(ctx, p, s.cfg.RadiusKm, s.cfg.MaxResults)
}

// Reserve and Release expose the capacity ledger to the order module.

func (s *Service) Reserve(ctx context.Context, id types.ID, bags int) error {
	if bags <= 0 {
		return ErrBadRequest
	}
	return s.store.ReserveCapacity(ctx, id, bags)
}

func (s *Service) Release(ctx context.Context, id types.ID, bags int) error {
	if bags <= 0 {
		return ErrBadRequest
	}
	return s.store.ReleaseCapacity(ctx, id, bags)
}
