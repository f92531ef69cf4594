// README: Order store backed by PostgreSQL; luggage is a JSONB column.
package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vikrant8989/Drop-Go/internal/modules/pricing"
	"github.com/vikrant8989/Drop-Go/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const orderColumns = `
	id, user_id, store_id, luggage, duration_days, plan, booking_mode,
	status, status_version, pickup_date, pickup_time, return_date, return_time,
	payment_status, total_amount, currency, discount,
	address, address_lat, address_lng, created_at`

func (s *Store) Create(ctx context.Context, o *Order) error {
	luggage, err := json.Marshal(o.Luggage)
	if err != nil {
		return err
	}
	var lat, lng *float64
	if o.AddressPoint != nil {
		lat, lng = &o.AddressPoint.Lat, &o.AddressPoint.Lng
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17,
			$18, $19, $20, $21
		)`,
		string(o.ID), o.UserID, string(o.StoreID), luggage, o.DurationDays, string(o.Plan), string(o.Mode),
		string(o.Status), o.StatusVersion, o.Pickup.Date, o.Pickup.Time, o.Return.Date, o.Return.Time,
		string(o.PaymentStatus), o.TotalAmount.Amount, o.TotalAmount.Currency, o.Discount,
		nullIfEmpty(o.Address), lat, lng, o.CreatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Order, error) {
	row := s.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, string(id))
	return scanOrder(row)
}

func (s *Store) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (s *Store) ListByStore(ctx context.Context, storeID types.ID) ([]Order, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE store_id = $1
		ORDER BY created_at DESC`, string(storeID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

// UpdateStatus performs the optimistic conditional transition. It succeeds
// only when the row still holds the expected status and version.
func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE orders
		SET status = $1, status_version = status_version + 1
		WHERE id = $2 AND status = $3 AND status_version = $4`,
		string(to), string(id), string(from), version,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) UpdatePaymentStatus(ctx context.Context, id types.ID, v PaymentStatus) error {
	tag, err := s.db.Exec(ctx, `UPDATE orders SET payment_status = $2 WHERE id = $1`, string(id), string(v))
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateSchedule(ctx context.Context, id types.ID, pickup, ret Schedule, durationDays int) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE orders
		SET pickup_date = $2, pickup_time = $3, return_date = $4, return_time = $5, duration_days = $6
		WHERE id = $1`,
		string(id), pickup.Date, pickup.Time, ret.Date, ret.Time, durationDays,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateLuggage(ctx context.Context, id types.ID, bags []Bag, total types.Money) error {
	luggage, err := json.Marshal(bags)
	if err != nil {
		return err
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE orders SET luggage = $2, total_amount = $3 WHERE id = $1`,
		string(id), luggage, total.Amount,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateDiscount(ctx context.Context, id types.ID, discount int64) error {
	tag, err := s.db.Exec(ctx, `UPDATE orders SET discount = $2 WHERE id = $1`, string(id), discount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) AppendEvent(ctx context.Context, e *Event) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO order_state_events (
			order_id, from_status, to_status, actor_type, actor_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)`,
		string(e.OrderID), string(e.FromStatus), string(e.ToStatus), e.ActorType, e.ActorID, e.CreatedAt,
	)
	return err
}

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	var id, storeID, plan, mode, status, payment string
	var luggage []byte
	var address sql.NullString
	var lat, lng sql.NullFloat64
	var amount int64
	var currency string

	err := row.Scan(
		&id, &o.UserID, &storeID, &luggage, &o.DurationDays, &plan, &mode,
		&status, &o.StatusVersion, &o.Pickup.Date, &o.Pickup.Time, &o.Return.Date, &o.Return.Time,
		&payment, &amount, &currency, &o.Discount,
		&address, &lat, &lng, &o.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(luggage, &o.Luggage); err != nil {
		return nil, err
	}
	o.ID = types.ID(id)
	o.StoreID = types.ID(storeID)
	o.Plan = pricing.Plan(plan)
	o.Mode = pricing.BookingMode(mode)
	o.Status = Status(status)
	o.PaymentStatus = PaymentStatus(payment)
	o.TotalAmount = types.Money{Amount: amount, Currency: currency}
	if address.Valid {
		o.Address = address.String
	}
	if lat.Valid && lng.Valid {
		o.AddressPoint = &types.Point{Lat: lat.Float64, Lng: lng.Float64}
	}
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]Order, error) {
	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func nullIfEmpty(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
