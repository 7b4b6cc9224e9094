package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hall-booking-service/internal/domain"
)

// BookingRepository encapsulates booking persistence. At most one booking
// exists per (hall, date, start, end); a UNIQUE constraint backs this up.
type BookingRepository interface {
	// Upsert atomically creates the booking or, when a row for the same
	// natural key already exists, updates only its surcharge price. It
	// reports whether a new row was created. Two concurrent creators for the
	// same fresh key race on the unique constraint; the loser gets
	// ErrDuplicateKey.
	Upsert(ctx context.Context, booking *domain.Booking) (created bool, err error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository returns a Postgres-backed implementation.
func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

func (r *bookingRepository) Upsert(ctx context.Context, booking *domain.Booking) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const lookup = `
        SELECT id FROM bookings
        WHERE hall_id=$1 AND date=$2 AND start_time=$3 AND end_time=$4`

	var existingID int64
	err = tx.QueryRow(ctx, lookup,
		booking.HallID,
		booking.Date,
		booking.StartTime,
		booking.EndTime,
	).Scan(&existingID)

	switch {
	case err == nil:
		const update = `
            UPDATE bookings SET plus_price=$1, updated_at=NOW()
            WHERE id=$2
            RETURNING id, hall_id, user_id, date, start_time, end_time, status, plus_price, created_at, updated_at`
		if err := scanBooking(tx.QueryRow(ctx, update, booking.PlusPrice, existingID), booking); err != nil {
			return false, err
		}
		return false, tx.Commit(ctx)

	case errors.Is(err, pgx.ErrNoRows):
		const insert = `
            INSERT INTO bookings (hall_id, user_id, date, start_time, end_time, status, plus_price)
            VALUES ($1, $2, $3, $4, $5, $6, $7)
            RETURNING id, hall_id, user_id, date, start_time, end_time, status, plus_price, created_at, updated_at`
		err := scanBooking(tx.QueryRow(ctx, insert,
			booking.HallID,
			booking.UserID,
			booking.Date,
			booking.StartTime,
			booking.EndTime,
			domain.BookingStatusPending,
			booking.PlusPrice,
		), booking)
		if err != nil {
			if isUniqueViolation(err) {
				return false, ErrDuplicateKey
			}
			return false, err
		}
		return true, tx.Commit(ctx)

	default:
		return false, err
	}
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	const query = `
        SELECT id, hall_id, user_id, date, start_time, end_time, status, plus_price, created_at, updated_at
        FROM bookings WHERE user_id=$1 ORDER BY date, start_time`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Booking
	for rows.Next() {
		var booking domain.Booking
		if err := scanBooking(rows, &booking); err != nil {
			return nil, err
		}
		result = append(result, booking)
	}
	return result, rows.Err()
}

func scanBooking(row pgx.Row, booking *domain.Booking) error {
	return row.Scan(
		&booking.ID,
		&booking.HallID,
		&booking.UserID,
		&booking.Date,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.PlusPrice,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
}
