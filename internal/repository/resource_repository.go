package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sara-relief/relief-service/internal/domain"
)

// ResourceRepository encapsulates donated resource persistence.
type ResourceRepository interface {
	Create(ctx context.Context, resource *domain.Resource) error
	Update(ctx context.Context, resource *domain.Resource) error
	GetByID(ctx context.Context, id string) (*domain.Resource, error)
	List(ctx context.Context, filter ResourceFilter) ([]domain.Resource, error)
	Count(ctx context.Context, filter ResourceFilter) (int, error)
	Delete(ctx context.Context, id string) error
}

type resourceRepository struct {
	pool *pgxpool.Pool
}

// NewResourceRepository instantiates repository.
func NewResourceRepository(pool *pgxpool.Pool) ResourceRepository {
	return &resourceRepository{pool: pool}
}

const resourceColumns = `id, owner_id, name, description, type, quantity, location, contact_info,
               status, verified, created_at, updated_at`

func (r *resourceRepository) Create(ctx context.Context, resource *domain.Resource) error {
	const query = `
        INSERT INTO resources (id, owner_id, name, description, type, quantity, location, contact_info, status, verified)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING created_at, updated_at`

	if resource.ID == "" {
		resource.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, query,
		resource.ID,
		resource.OwnerID,
		resource.Name,
		resource.Description,
		resource.Type,
		resource.Quantity,
		resource.Location,
		resource.ContactInfo,
		resource.Status,
		resource.Verified,
	).Scan(&resource.CreatedAt, &resource.UpdatedAt)
	return translate(err)
}

func (r *resourceRepository) Update(ctx context.Context, resource *domain.Resource) error {
	const query = `
        UPDATE resources SET name=$1, description=$2, type=$3, quantity=$4, location=$5,
            contact_info=$6, status=$7, verified=$8, updated_at=NOW()
        WHERE id=$9
        RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		resource.Name,
		resource.Description,
		resource.Type,
		resource.Quantity,
		resource.Location,
		resource.ContactInfo,
		resource.Status,
		resource.Verified,
		resource.ID,
	).Scan(&resource.UpdatedAt)
	return translate(err)
}

func (r *resourceRepository) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	resource, err := scanResource(r.pool.QueryRow(ctx, `SELECT `+resourceColumns+` FROM resources WHERE id=$1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return resource, nil
}

func (r *resourceRepository) List(ctx context.Context, filter ResourceFilter) ([]domain.Resource, error) {
	p := filter.sql()
	query := `SELECT ` + resourceColumns + ` FROM resources` + p.where() + ` ORDER BY created_at DESC` + p.limit(filter.Limit)

	rows, err := r.pool.Query(ctx, query, p.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []domain.Resource
	for rows.Next() {
		resource, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, *resource)
	}
	return resources, rows.Err()
}

func (r *resourceRepository) Count(ctx context.Context, filter ResourceFilter) (int, error) {
	p := filter.sql()
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM resources`+p.where(), p.args...).Scan(&count)
	return count, err
}

func (r *resourceRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM resources WHERE id=$1`, id)
	return ignoreMissing(translate(err))
}

func scanResource(row pgx.Row) (*domain.Resource, error) {
	var resource domain.Resource
	if err := row.Scan(
		&resource.ID,
		&resource.OwnerID,
		&resource.Name,
		&resource.Description,
		&resource.Type,
		&resource.Quantity,
		&resource.Location,
		&resource.ContactInfo,
		&resource.Status,
		&resource.Verified,
		&resource.CreatedAt,
		&resource.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &resource, nil
}
