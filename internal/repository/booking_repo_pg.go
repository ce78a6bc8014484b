package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/skyfly/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the part of *pgxpool.Pool the postgres store uses.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type PGBookingRepository struct {
	db PgxPool
}

func NewBookingRepository(db PgxPool) *PGBookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createBookingsTable); err != nil {
		return fmt.Errorf("create bookings table: %w", err)
	}
	return nil
}

func (r *PGBookingRepository) Load(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, selectBookings)
	if err != nil {
		return []domain.Booking{}, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return []domain.Booking{}, fmt.Errorf("%w: %v", domain.ErrPersistenceCorrupt, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return []domain.Booking{}, fmt.Errorf("read bookings: %w", err)
	}
	return bookings, nil
}

// Save replaces the table contents in one transaction.
func (r *PGBookingRepository) Save(ctx context.Context, bookings []domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM bookings`); err != nil {
		return fmt.Errorf("clear bookings: %w", err)
	}

	rows := make([][]any, 0, len(bookings))
	for i, b := range bookings {
		rows = append(rows, bookingRow(i, b))
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"bookings"}, bookingColumns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("copy bookings: %w", err)
	}

	return tx.Commit(ctx)
}

var _ BookingStore = (*PGBookingRepository)(nil)
