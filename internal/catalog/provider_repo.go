package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProviderRepository interface {
	Create(ctx context.Context, p *Provider) error
	GetByID(ctx context.Context, id string) (*Provider, error)
	List(ctx context.Context, filter ProviderFilter) ([]*Provider, int, error)
	Update(ctx context.Context, p *Provider) error
	Delete(ctx context.Context, id string) error

	// ListForService returns the providers supporting the service, ordered by
	// rating descending with ties broken by id ascending.
	ListForService(ctx context.Context, serviceID string) ([]*Provider, error)

	// UpdateRating overwrites the provider's average rating.
	UpdateRating(ctx context.Context, id string, rating float64) error
}

type pgxProviderRepository struct {
	pool *pgxpool.Pool
}

func NewPgxProviderRepository(pool *pgxpool.Pool) ProviderRepository {
	return &pgxProviderRepository{pool: pool}
}

func (r *pgxProviderRepository) Create(ctx context.Context, p *Provider) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create provider tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	const insertProvider = `
		INSERT INTO public.providers (display_name, rating, location)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	if err := tx.QueryRow(ctx, insertProvider, p.DisplayName, p.Rating, p.Location).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("create provider failed: %w", err)
	}

	for _, serviceID := range p.ServiceIDs {
		const insertLink = `
			INSERT INTO public.provider_services (provider_id, service_id)
			VALUES ($1, $2)
		`
		if _, err := tx.Exec(ctx, insertLink, p.ID, serviceID); err != nil {
			return fmt.Errorf("link provider service failed: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *pgxProviderRepository) GetByID(ctx context.Context, id string) (*Provider, error) {
	const query = `
		SELECT
			p.id,
			p.display_name,
			p.rating,
			p.location,
			p.created_at,
			p.updated_at,
			COALESCE(array_agg(ps.service_id) FILTER (WHERE ps.service_id IS NOT NULL), '{}') AS service_ids
		FROM public.providers p
		LEFT JOIN public.provider_services ps ON ps.provider_id = p.id
		WHERE p.id = $1
		GROUP BY p.id
	`

	var p Provider
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.DisplayName, &p.Rating, &p.Location,
		&p.CreatedAt, &p.UpdatedAt, &p.ServiceIDs,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProviderNotFound
		}
		return nil, fmt.Errorf("get provider failed: %w", err)
	}
	return &p, nil
}

func (r *pgxProviderRepository) List(ctx context.Context, filter ProviderFilter) ([]*Provider, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"p.id", "p.display_name", "p.rating", "p.location",
		"p.created_at", "p.updated_at",
		"COALESCE(array_agg(ps.service_id) FILTER (WHERE ps.service_id IS NOT NULL), '{}') AS service_ids",
		"count(*) OVER() AS total_count",
	).
		From("public.providers p").
		LeftJoin("public.provider_services ps ON ps.provider_id = p.id").
		GroupBy("p.id").
		OrderBy("p.rating DESC", "p.id ASC")

	if filter.ServiceID != "" {
		query = query.Where(squirrel.Expr(
			"EXISTS (SELECT 1 FROM public.provider_services x WHERE x.provider_id = p.id AND x.service_id = ?)",
			filter.ServiceID,
		))
	}

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
		return nil, 0, fmt.Errorf("build list providers query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list providers failed: %w", err)
	}
	defer rows.Close()

	var providers []*Provider
	var total int

	for rows.Next() {
		var p Provider
		if err := rows.Scan(
			&p.ID, &p.DisplayName, &p.Rating, &p.Location,
			&p.CreatedAt, &p.UpdatedAt, &p.ServiceIDs, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan provider failed: %w", err)
		}
		providers = append(providers, &p)
	}

	return providers, total, nil
}

func (r *pgxProviderRepository) Update(ctx context.Context, p *Provider) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update provider tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	const updateProvider = `
		UPDATE public.providers
		SET display_name = $1, rating = $2, location = $3, updated_at = now()
		WHERE id = $4
	`
	ct, err := tx.Exec(ctx, updateProvider, p.DisplayName, p.Rating, p.Location, p.ID)
	if err != nil {
		return fmt.Errorf("update provider failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrProviderNotFound
	}

	// Replace the supported-service set wholesale.
	if _, err := tx.Exec(ctx, `DELETE FROM public.provider_services WHERE provider_id = $1`, p.ID); err != nil {
		return fmt.Errorf("clear provider services failed: %w", err)
	}
	for _, serviceID := range p.ServiceIDs {
		const insertLink = `
			INSERT INTO public.provider_services (provider_id, service_id)
			VALUES ($1, $2)
		`
		if _, err := tx.Exec(ctx, insertLink, p.ID, serviceID); err != nil {
			return fmt.Errorf("link provider service failed: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *pgxProviderRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM public.providers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete provider failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrProviderNotFound
	}
	return nil
}

// ListForService fetches the full provider set for the service. The wizard
// shows every candidate, so no pagination is applied here.
func (r *pgxProviderRepository) ListForService(ctx context.Context, serviceID string) ([]*Provider, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"p.id", "p.display_name", "p.rating", "p.location",
		"p.created_at", "p.updated_at",
		"COALESCE(array_agg(ps.service_id) FILTER (WHERE ps.service_id IS NOT NULL), '{}') AS service_ids",
	).
		From("public.providers p").
		LeftJoin("public.provider_services ps ON ps.provider_id = p.id").
		Where(squirrel.Expr(
			"EXISTS (SELECT 1 FROM public.provider_services x WHERE x.provider_id = p.id AND x.service_id = ?)",
			serviceID,
		)).
		GroupBy("p.id").
		OrderBy("p.rating DESC", "p.id ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build providers for service query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list providers for service failed: %w", err)
	}
	defer rows.Close()

	var providers []*Provider
	for rows.Next() {
		var p Provider
		if err := rows.Scan(
			&p.ID, &p.DisplayName, &p.Rating, &p.Location,
			&p.CreatedAt, &p.UpdatedAt, &p.ServiceIDs,
		); err != nil {
			return nil, fmt.Errorf("scan provider failed: %w", err)
		}
		providers = append(providers, &p)
	}

	return providers, nil
}

func (r *pgxProviderRepository) UpdateRating(ctx context.Context, id string, rating float64) error {
	const query = `
		UPDATE public.providers SET rating = $1, updated_at = now() WHERE id = $2
	`
	ct, err := r.pool.Exec(ctx, query, rating, id)
	if err != nil {
		return fmt.Errorf("update provider rating failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrProviderNotFound
	}
	return nil
}
