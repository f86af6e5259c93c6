package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
)

// bookingColumns is shared by every booking query; each booking row carries
// its item and booker so callers never need a second round trip.
const bookingColumns = `b.id, b.start_date, b.end_date, b.status, b.item_id, b.booker_id,
       i.name, i.description, i.available, i.owner_id, COALESCE(i.request_id, 0),
       u.name, u.email`

const bookingTables = `bookings b
       JOIN items i ON i.id = b.item_id
       JOIN users u ON u.id = b.booker_id`

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (start_date, end_date, status, item_id, booker_id)
              VALUES (?, ?, ?, ?, ?)`

	result, err := db.ExecContext(ctx, query,
		formatTime(booking.Start),
		formatTime(booking.End),
		booking.Status,
		booking.ItemID,
		booking.BookerID,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	return nil
}

func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, status models.Status) error {
	query := `UPDATE bookings SET status = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.NotFound("booking with id %d not found", id)
	}
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE b.id = ?`, bookingColumns, bookingTables)

	booking, err := scanBooking(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("booking with id %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func (db *DB) ListByBooker(ctx context.Context, bookerID int64, from, size int) ([]*models.Booking, error) {
	return db.listBookings(ctx, `b.booker_id = ?`, []any{bookerID}, from, size)
}

func (db *DB) ListByBookerCurrent(ctx context.Context, bookerID int64, now time.Time, from, size int) ([]*models.Booking, error) {
	return db.listBookings(ctx,
		`b.booker_id = ? AND b.start_date < ? AND b.end_date > ?`,
		[]any{bookerID, formatTime(now), formatTime(now)}, from, size)
}

func (db *DB) ListByBookerPast(ctx context.Context, bookerID int64, now time.Time, from, size int) ([]*models.Booking, error) {
	return db.listBookings(ctx,
		`b.booker_id = ? AND b.end_date < ?`,
		[]any{bookerID, formatTime(now)}, from, size)
}

func (db *DB) ListByBookerFuture(ctx context.Context, bookerID int64, now time.Time, from, size int) ([]*models.Booking, error) {
	return db.listBookings(ctx,
		`b.booker_id = ? AND b.start_date > ?`,
		[]any{bookerID, formatTime(now)}, from, size)
}

func (db *DB) ListByBookerStatus(ctx context.Context, bookerID int64, status models.Status, from, size int) ([]*models.Booking, error) {
	return db.listBookings(ctx,
		`b.booker_id = ? AND b.status = ?`,
		[]any{bookerID, status}, from, size)
}

func (db *DB) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]*models.Booking, error) {
	return db.listBookings(ctx, `i.owner_id = ?`, []any{ownerID}, from, size)
}

func (db *DB) ListByOwnerCurrent(ctx context.Context, ownerID int64, now time.Time, from, size int) ([]*models.Booking, error) {
	return db.listBookings(ctx,
		`i.owner_id = ? AND b.start_date < ? AND b.end_date > ?`,
		[]any{ownerID, formatTime(now), formatTime(now)}, from, size)
}

// ListByOwnerPast and ListByOwnerFuture exclude rejected bookings: the
// owner's past/future views hide requests they turned down, while the
// booker-scoped equivalents above keep them.
func (db *DB) ListByOwnerPast(ctx context.Context, ownerID int64, now time.Time, from, size int) ([]*models.Booking, error) {
	return db.listBookings(ctx,
		`i.owner_id = ? AND b.end_date < ? AND b.status != ?`,
		[]any{ownerID, formatTime(now), models.StatusRejected}, from, size)
}

func (db *DB) ListByOwnerFuture(ctx context.Context, ownerID int64, now time.Time, from, size int) ([]*models.Booking, error) {
	return db.listBookings(ctx,
		`i.owner_id = ? AND b.start_date > ? AND b.status != ?`,
		[]any{ownerID, formatTime(now), models.StatusRejected}, from, size)
}

func (db *DB) ListByOwnerStatus(ctx context.Context, ownerID int64, status models.Status, from, size int) ([]*models.Booking, error) {
	return db.listBookings(ctx,
		`i.owner_id = ? AND b.status = ?`,
		[]any{ownerID, status}, from, size)
}

func (db *DB) ListFinished(ctx context.Context, bookerID, itemID int64, now time.Time) ([]*models.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s
              WHERE b.booker_id = ? AND b.item_id = ? AND b.status = ? AND b.end_date < ?
              ORDER BY b.start_date DESC`, bookingColumns, bookingTables)

	rows, err := db.QueryContext(ctx, query, bookerID, itemID, models.StatusApproved, formatTime(now))
	if err != nil {
		return nil, fmt.Errorf("failed to get finished bookings: %w", err)
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (db *DB) GetLastBooking(ctx context.Context, itemID int64, now time.Time) (*models.BookingRef, error) {
	query := `SELECT id, booker_id FROM bookings
              WHERE item_id = ? AND start_date < ? AND status != ?
              ORDER BY start_date DESC LIMIT 1`
	return db.getBookingRef(ctx, query, itemID, formatTime(now), models.StatusRejected)
}

func (db *DB) GetNextBooking(ctx context.Context, itemID int64, now time.Time) (*models.BookingRef, error) {
	query := `SELECT id, booker_id FROM bookings
              WHERE item_id = ? AND start_date > ? AND status != ?
              ORDER BY start_date ASC LIMIT 1`
	return db.getBookingRef(ctx, query, itemID, formatTime(now), models.StatusRejected)
}

func (db *DB) getBookingRef(ctx context.Context, query string, args ...any) (*models.BookingRef, error) {
	var ref models.BookingRef
	err := db.QueryRowContext(ctx, query, args...).Scan(&ref.ID, &ref.BookerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking ref: %w", err)
	}
	return &ref, nil
}

func (db *DB) listBookings(ctx context.Context, where string, args []any, from, size int) ([]*models.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s
              ORDER BY b.start_date DESC LIMIT ? OFFSET ?`, bookingColumns, bookingTables, where)

	args = append(args, size, from)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()
	return scanBookings(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	b := &models.Booking{Item: &models.Item{}, Booker: &models.User{}}
	var startStr, endStr string

	err := row.Scan(
		&b.ID, &startStr, &endStr, &b.Status, &b.ItemID, &b.BookerID,
		&b.Item.Name, &b.Item.Description, &b.Item.Available,
		&b.Item.OwnerID, &b.Item.RequestID,
		&b.Booker.Name, &b.Booker.Email,
	)
	if err != nil {
		return nil, err
	}

	b.Item.ID = b.ItemID
	b.Booker.ID = b.BookerID

	if b.Start, err = parseTime(startStr); err != nil {
		return nil, fmt.Errorf("failed to parse booking start %q: %w", startStr, err)
	}
	if b.End, err = parseTime(endStr); err != nil {
		return nil, fmt.Errorf("failed to parse booking end %q: %w", endStr, err)
	}
	return b, nil
}

func scanBookings(rows *sql.Rows) ([]*models.Booking, error) {
	var bookings []*models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating booking rows: %w", err)
	}
	return bookings, nil
}
