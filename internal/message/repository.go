package message

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, m *Message) error
	GetByID(ctx context.Context, id string) (*Message, error)
	List(ctx context.Context, filter Filter) ([]*Message, int, error)
	MarkRead(ctx context.Context, id string, t time.Time) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, m *Message) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.messages").
		Columns("sender_id", "recipient_id", "body").
		Values(m.SenderID, m.RecipientID, m.Body).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create message query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&m.ID, &m.CreatedAt); err != nil {
		return fmt.Errorf("create message failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Message, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"m.id", "m.sender_id", "u.name", "m.recipient_id", "m.body", "m.read_at", "m.created_at",
	).
		From("public.messages m").
		Join("public.profiles u ON m.sender_id = u.id").
		Where(squirrel.Eq{"m.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get message query failed: %w", err)
	}

	var m Message
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&m.ID, &m.SenderID, &m.SenderName, &m.RecipientID, &m.Body, &m.ReadAt, &m.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get message failed: %w", err)
	}
	return &m, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Message, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"m.id", "m.sender_id", "u.name", "m.recipient_id", "m.body", "m.read_at", "m.created_at",
		"count(*) OVER() as total_count",
	).
		From("public.messages m").
		Join("public.profiles u ON m.sender_id = u.id")

	if filter.WithUserID != "" {
		// Both directions of a single conversation.
		query = query.Where(squirrel.Or{
			squirrel.And{
				squirrel.Eq{"m.sender_id": filter.UserID},
				squirrel.Eq{"m.recipient_id": filter.WithUserID},
			},
			squirrel.And{
				squirrel.Eq{"m.sender_id": filter.WithUserID},
				squirrel.Eq{"m.recipient_id": filter.UserID},
			},
		})
	} else {
		query = query.Where(squirrel.Or{
			squirrel.Eq{"m.sender_id": filter.UserID},
			squirrel.Eq{"m.recipient_id": filter.UserID},
		})
	}
	if filter.UnreadOnly {
		query = query.Where(squirrel.Eq{"m.recipient_id": filter.UserID}).
			Where(squirrel.Eq{"m.read_at": nil})
	}

	query = query.OrderBy("m.created_at DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 50
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list messages query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list messages failed: %w", err)
	}
	defer rows.Close()

	var messages []*Message
	var total int

	for rows.Next() {
		var m Message
		if err := rows.Scan(
			&m.ID, &m.SenderID, &m.SenderName, &m.RecipientID, &m.Body, &m.ReadAt, &m.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan message failed: %w", err)
		}
		messages = append(messages, &m)
	}

	return messages, total, nil
}

func (r *pgxRepository) MarkRead(ctx context.Context, id string, t time.Time) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.messages").
		Set("read_at", t).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"read_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build mark read query failed: %w", err)
	}

	// Zero rows affected means either missing or already read; both are fine
	// for an idempotent read receipt.
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("mark message read failed: %w", err)
	}
	return nil
}
