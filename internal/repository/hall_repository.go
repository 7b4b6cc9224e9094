package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hall-booking-service/internal/domain"
)

// HallRepository encapsulates hall persistence.
type HallRepository interface {
	Create(ctx context.Context, hall *domain.Hall) error
	GetByID(ctx context.Context, id int64) (*domain.Hall, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Hall, error)
}

type hallRepository struct {
	pool *pgxpool.Pool
}

// NewHallRepository returns a Postgres-backed implementation.
func NewHallRepository(pool *pgxpool.Pool) HallRepository {
	return &hallRepository{pool: pool}
}

func (r *hallRepository) Create(ctx context.Context, hall *domain.Hall) error {
	const query = `
        INSERT INTO event_halls (owner_id, name, location, capacity)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		hall.OwnerID,
		hall.Name,
		hall.Location,
		hall.Capacity,
	).Scan(&hall.ID, &hall.CreatedAt, &hall.UpdatedAt)
}

func (r *hallRepository) GetByID(ctx context.Context, id int64) (*domain.Hall, error) {
	const query = `
        SELECT id, owner_id, name, location, capacity, created_at, updated_at
        FROM event_halls WHERE id=$1`

	var hall domain.Hall
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&hall.ID,
		&hall.OwnerID,
		&hall.Name,
		&hall.Location,
		&hall.Capacity,
		&hall.CreatedAt,
		&hall.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &hall, nil
}

func (r *hallRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Hall, error) {
	const query = `
        SELECT id, owner_id, name, location, capacity, created_at, updated_at
        FROM event_halls WHERE owner_id=$1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHalls(rows)
}

func scanHalls(rows pgx.Rows) ([]domain.Hall, error) {
	var result []domain.Hall
	for rows.Next() {
		var hall domain.Hall
		if err := rows.Scan(
			&hall.ID,
			&hall.OwnerID,
			&hall.Name,
			&hall.Location,
			&hall.Capacity,
			&hall.CreatedAt,
			&hall.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, hall)
	}
	return result, rows.Err()
}
