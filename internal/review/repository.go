package review

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
	Create(ctx context.Context, rv *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	List(ctx context.Context, filter Filter) ([]*Review, int, error)

	// AverageForProvider returns the provider's mean rating and review count.
	AverageForProvider(ctx context.Context, providerID string) (float64, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rv *Review) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.reviews").
		Columns("booking_id", "client_id", "provider_id", "service_id", "rating", "comment").
		Values(rv.BookingID, rv.ClientID, rv.ProviderID, rv.ServiceID, rv.Rating, rv.Comment).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create review query failed: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&rv.ID, &rv.CreatedAt)
	if err != nil {
		// Unique index on booking_id enforces one review per booking.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyReviewed
		}
		return fmt.Errorf("create review failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Review, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"r.id", "r.booking_id", "r.client_id", "u.name",
		"r.provider_id", "r.service_id", "r.rating", "r.comment", "r.created_at",
	).
		From("public.reviews r").
		Join("public.profiles u ON r.client_id = u.id").
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get review query failed: %w", err)
	}

	var rv Review
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&rv.ID, &rv.BookingID, &rv.ClientID, &rv.ClientName,
		&rv.ProviderID, &rv.ServiceID, &rv.Rating, &rv.Comment, &rv.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get review failed: %w", err)
	}
	return &rv, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Review, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"r.id", "r.booking_id", "r.client_id", "u.name",
		"r.provider_id", "r.service_id", "r.rating", "r.comment", "r.created_at",
		"count(*) OVER() as total_count",
	).
		From("public.reviews r").
		Join("public.profiles u ON r.client_id = u.id")

	if filter.ProviderID != "" {
		query = query.Where(squirrel.Eq{"r.provider_id": filter.ProviderID})
	}
	if filter.ServiceID != "" {
		query = query.Where(squirrel.Eq{"r.service_id": filter.ServiceID})
	}
	if filter.ClientID != "" {
		query = query.Where(squirrel.Eq{"r.client_id": filter.ClientID})
	}

	query = query.OrderBy("r.created_at DESC")

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
		return nil, 0, fmt.Errorf("build list reviews query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews failed: %w", err)
	}
	defer rows.Close()

	var reviews []*Review
	var total int

	for rows.Next() {
		var rv Review
		if err := rows.Scan(
			&rv.ID, &rv.BookingID, &rv.ClientID, &rv.ClientName,
			&rv.ProviderID, &rv.ServiceID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan review failed: %w", err)
		}
		reviews = append(reviews, &rv)
	}

	return reviews, total, nil
}

func (r *pgxRepository) AverageForProvider(ctx context.Context, providerID string) (float64, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("COALESCE(AVG(rating), 0)", "COUNT(*)").
		From("public.reviews").
		Where(squirrel.Eq{"provider_id": providerID}).
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("build average rating query failed: %w", err)
	}

	var avg float64
	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&avg, &count); err != nil {
		return 0, 0, fmt.Errorf("average rating failed: %w", err)
	}
	return avg, count, nil
}
