package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Domenick1991/skyfly/internal/domain"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
)

type SQLiteBookingRepository struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteBookingRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// One connection keeps ":memory:" databases stable across calls.
	db.SetMaxOpenConns(1)
	return &SQLiteBookingRepository{db: db}, nil
}

func (r *SQLiteBookingRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteBookingRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createBookingsTable); err != nil {
		return fmt.Errorf("create bookings table: %w", err)
	}
	return nil
}

func (r *SQLiteBookingRepository) Load(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, selectBookings)
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

func (r *SQLiteBookingRepository) Save(ctx context.Context, bookings []domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bookings`); err != nil {
		return fmt.Errorf("clear bookings: %w", err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(bookingColumns)), ", ")
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO bookings (`+strings.Join(bookingColumns, ", ")+`) VALUES (`+placeholders+`)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, b := range bookings {
		if _, err := stmt.ExecContext(ctx, bookingRow(i, b)...); err != nil {
			return fmt.Errorf("insert booking %s: %w", b.BookingID, err)
		}
	}

	return tx.Commit()
}

var _ BookingStore = (*SQLiteBookingRepository)(nil)
