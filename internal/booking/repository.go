package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Create inserts the booking. The bookings table carries a gist exclusion
	// constraint over (room_id, date range) restricted to active statuses, so
	// a concurrent writer racing past the HasOverlap check is rejected here
	// and reported as ErrDateConflict.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	// ListByUser returns the user's bookings, most recent check-in first.
	ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*Booking, int, error)
	// ListAll returns every booking, most recent check-in first.
	ListAll(ctx context.Context, page, pageSize int) ([]*Booking, int, error)
	// Update persists mutable fields, guarded by the same exclusion constraint.
	Update(ctx context.Context, b *Booking) error

	// HasOverlap checks whether any active booking for the room overlaps the
	// half-open range [checkIn, checkOut). excludeBookingID lets an in-place
	// update ignore the booking's own row.
	HasOverlap(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeBookingID string) (bool, error)

	// HasUpcomingBookings reports whether the room has any active booking
	// with a check-in at or after from. Used by the room registry before
	// taking a room out of service.
	HasUpcomingBookings(ctx context.Context, roomID string, from time.Time) (bool, error)
}

const bookingColumns = `
	b.id, b.user_id, b.room_id, b.guest_name, b.check_in_date, b.check_out_date,
	b.status, b.created_at, b.updated_at,
	r.room_number, r.room_type, r.price_per_night,
	u.name, u.email
`

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("user_id", "room_id", "guest_name", "check_in_date", "check_out_date", "status").
		Values(b.UserID, b.RoomID, b.GuestName, b.CheckInDate, b.CheckOutDate, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return mapConstraintError(err, "create booking")
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM public.bookings b
		JOIN public.rooms r ON b.room_id = r.id
		JOIN public.users u ON b.user_id = u.id
		WHERE b.id = $1
	`
	return scanBooking(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*Booking, int, error) {
	return r.list(ctx, userID, page, pageSize)
}

func (r *pgxRepository) ListAll(ctx context.Context, page, pageSize int) ([]*Booking, int, error) {
	return r.list(ctx, "", page, pageSize)
}

func (r *pgxRepository) list(ctx context.Context, userID string, page, pageSize int) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.user_id", "b.room_id", "b.guest_name", "b.check_in_date", "b.check_out_date",
		"b.status", "b.created_at", "b.updated_at",
		"r.room_number", "r.room_type", "r.price_per_night",
		"u.name", "u.email",
		"count(*) OVER() AS total_count",
	).
		From("public.bookings b").
		Join("public.rooms r ON b.room_id = r.id").
		Join("public.users u ON b.user_id = u.id")

	if userID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": userID})
	}

	query = query.OrderBy("b.check_in_date DESC")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	query = query.Limit(uint64(pageSize)).Offset(uint64((page - 1) * pageSize))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.RoomID, &b.GuestName, &b.CheckInDate, &b.CheckOutDate,
			&b.Status, &b.CreatedAt, &b.UpdatedAt,
			&b.RoomNumber, &b.RoomType, &b.PricePerNight,
			&b.UserName, &b.UserEmail, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("room_id", b.RoomID).
		Set("guest_name", b.GuestName).
		Set("check_in_date", b.CheckInDate).
		Set("check_out_date", b.CheckOutDate).
		Set("status", b.Status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return mapConstraintError(err, "update booking")
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) HasOverlap(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeBookingID string) (bool, error) {
	// Overlap rule (half-open): existing.check_in < checkOut AND
	// existing.check_out > checkIn, counting active statuses only.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sub := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.Eq{"status": []Status{StatusPending, StatusConfirmed}}).
		Where(squirrel.Lt{"check_in_date": checkOut}).
		Where(squirrel.Gt{"check_out_date": checkIn})

	if excludeBookingID != "" {
		sub = sub.Where(squirrel.NotEq{"id": excludeBookingID})
	}

	sql, args, err := sub.ToSql()
	if err != nil {
		return false, fmt.Errorf("build overlap query: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+sql+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) HasUpcomingBookings(ctx context.Context, roomID string, from time.Time) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM public.bookings
			WHERE room_id = $1
			  AND status IN ('Pending', 'Confirmed')
			  AND check_in_date >= $2
		)
	`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, roomID, from).Scan(&exists); err != nil {
		return false, fmt.Errorf("check upcoming bookings: %w", err)
	}
	return exists, nil
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.UserID, &b.RoomID, &b.GuestName, &b.CheckInDate, &b.CheckOutDate,
		&b.Status, &b.CreatedAt, &b.UpdatedAt,
		&b.RoomNumber, &b.RoomType, &b.PricePerNight,
		&b.UserName, &b.UserEmail,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

// mapConstraintError translates the active-range exclusion constraint
// violation into the domain conflict error. This is what makes the
// check-then-insert sequence safe under concurrent requests: the second
// writer loses here, inside a single atomic statement.
func mapConstraintError(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
		return ErrDateConflict
	}
	return fmt.Errorf("%s: %w", op, err)
}
