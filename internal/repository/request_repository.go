package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sara-relief/relief-service/internal/domain"
)

// RequestRepository encapsulates aid request persistence.
type RequestRepository interface {
	Create(ctx context.Context, request *domain.Request) error
	Update(ctx context.Context, request *domain.Request) error
	GetByID(ctx context.Context, id string) (*domain.Request, error)
	List(ctx context.Context, filter RequestFilter) ([]domain.Request, error)
	Count(ctx context.Context, filter RequestFilter) (int, error)
	Delete(ctx context.Context, id string) error
}

type requestRepository struct {
	pool *pgxpool.Pool
}

// NewRequestRepository instantiates repository.
func NewRequestRepository(pool *pgxpool.Pool) RequestRepository {
	return &requestRepository{pool: pool}
}

const requestColumns = `id, owner_id, title, description, resource_type, quantity_needed, location,
               urgency, status, needed_by, created_at, updated_at`

func (r *requestRepository) Create(ctx context.Context, request *domain.Request) error {
	const query = `
        INSERT INTO requests (id, owner_id, title, description, resource_type, quantity_needed, location, urgency, status, needed_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING created_at, updated_at`

	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, query,
		request.ID,
		request.OwnerID,
		request.Title,
		request.Description,
		request.ResourceType,
		request.QuantityNeeded,
		request.Location,
		request.Urgency,
		request.Status,
		request.NeededBy,
	).Scan(&request.CreatedAt, &request.UpdatedAt)
	return translate(err)
}

func (r *requestRepository) Update(ctx context.Context, request *domain.Request) error {
	const query = `
        UPDATE requests SET title=$1, description=$2, resource_type=$3, quantity_needed=$4, location=$5,
            urgency=$6, status=$7, needed_by=$8, updated_at=NOW()
        WHERE id=$9
        RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		request.Title,
		request.Description,
		request.ResourceType,
		request.QuantityNeeded,
		request.Location,
		request.Urgency,
		request.Status,
		request.NeededBy,
		request.ID,
	).Scan(&request.UpdatedAt)
	return translate(err)
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	request, err := scanRequest(r.pool.QueryRow(ctx, `SELECT `+requestColumns+` FROM requests WHERE id=$1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return request, nil
}

func (r *requestRepository) List(ctx context.Context, filter RequestFilter) ([]domain.Request, error) {
	p := filter.sql()
	query := `SELECT ` + requestColumns + ` FROM requests` + p.where() + filter.orderBy() + p.limit(filter.Limit)

	rows, err := r.pool.Query(ctx, query, p.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []domain.Request
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *request)
	}
	return requests, rows.Err()
}

func (r *requestRepository) Count(ctx context.Context, filter RequestFilter) (int, error) {
	p := filter.sql()
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM requests`+p.where(), p.args...).Scan(&count)
	return count, err
}

func (r *requestRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM requests WHERE id=$1`, id)
	return ignoreMissing(translate(err))
}

func scanRequest(row pgx.Row) (*domain.Request, error) {
	var request domain.Request
	if err := row.Scan(
		&request.ID,
		&request.OwnerID,
		&request.Title,
		&request.Description,
		&request.ResourceType,
		&request.QuantityNeeded,
		&request.Location,
		&request.Urgency,
		&request.Status,
		&request.NeededBy,
		&request.CreatedAt,
		&request.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &request, nil
}
