package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, rm *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	GetByNumber(ctx context.Context, number int) (*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, int, error)
	Update(ctx context.Context, rm *Room) error
	AddImages(ctx context.Context, id string, urls []string) (*Room, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rm *Room) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.rooms").
		Columns("room_number", "room_type", "price_per_night", "capacity", "status").
		Values(rm.RoomNumber, rm.RoomType, rm.PricePerNight, rm.Capacity, rm.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create room query: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&rm.ID, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrNumberTaken
		}
		return fmt.Errorf("create room: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Room, error) {
	const query = `
		SELECT id, room_number, room_type, price_per_night, capacity, status, images, created_at, updated_at
		FROM public.rooms
		WHERE id = $1
	`
	return scanRoom(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) GetByNumber(ctx context.Context, number int) (*Room, error) {
	const query = `
		SELECT id, room_number, room_type, price_per_night, capacity, status, images, created_at, updated_at
		FROM public.rooms
		WHERE room_number = $1
	`
	return scanRoom(r.pool.QueryRow(ctx, query, number))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "room_number", "room_type", "price_per_night", "capacity",
		"status", "images", "created_at", "updated_at",
		"count(*) OVER() AS total_count",
	).From("public.rooms")

	if filter.RoomType != "" {
		query = query.Where(squirrel.Eq{"room_type": filter.RoomType})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}

	query = query.OrderBy("room_number ASC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list rooms query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*Room
	var total int

	for rows.Next() {
		var rm Room
		if err := rows.Scan(
			&rm.ID, &rm.RoomNumber, &rm.RoomType, &rm.PricePerNight, &rm.Capacity,
			&rm.Status, &rm.Images, &rm.CreatedAt, &rm.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, &rm)
	}

	return rooms, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, rm *Room) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.rooms").
		Set("room_number", rm.RoomNumber).
		Set("room_type", rm.RoomType).
		Set("price_per_night", rm.PricePerNight).
		Set("capacity", rm.Capacity).
		Set("status", rm.Status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": rm.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update room query: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrNumberTaken
		}
		return fmt.Errorf("update room: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) AddImages(ctx context.Context, id string, urls []string) (*Room, error) {
	const query = `
		UPDATE public.rooms
		SET images = images || $1, updated_at = now()
		WHERE id = $2
		RETURNING id, room_number, room_type, price_per_night, capacity, status, images, created_at, updated_at
	`
	rm, err := scanRoom(r.pool.QueryRow(ctx, query, urls, id))
	if err != nil {
		return nil, err
	}
	return rm, nil
}

func scanRoom(row pgx.Row) (*Room, error) {
	var rm Room
	if err := row.Scan(
		&rm.ID, &rm.RoomNumber, &rm.RoomType, &rm.PricePerNight, &rm.Capacity,
		&rm.Status, &rm.Images, &rm.CreatedAt, &rm.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return &rm, nil
}
