package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sara-relief/relief-service/internal/domain"
)

// AssignmentRepository persists volunteer assignments.
//
// Create returns ErrConflict when the (volunteer, request) pair already exists.
// UpdateStatus marks the linked request FULFILLED in the same unit of work
// whenever the new status is COMPLETED.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.Assignment) error
	GetByID(ctx context.Context, id string) (*domain.Assignment, error)
	UpdateStatus(ctx context.Context, id string, status domain.AssignmentStatus, at time.Time) (*domain.Assignment, error)
	Exists(ctx context.Context, volunteerID, requestID string) (bool, error)
	List(ctx context.Context, filter AssignmentFilter) ([]domain.Assignment, error)
	Count(ctx context.Context, filter AssignmentFilter) (int, error)
	Delete(ctx context.Context, id string) error
}

type assignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository instantiates repository.
func NewAssignmentRepository(pool *pgxpool.Pool) AssignmentRepository {
	return &assignmentRepository{pool: pool}
}

const assignmentColumns = `id, volunteer_id, request_id, status, notes, assigned_at, completed_at`

func (r *assignmentRepository) Create(ctx context.Context, assignment *domain.Assignment) error {
	const query = `
        INSERT INTO volunteer_assignments (id, volunteer_id, request_id, status, notes, assigned_at)
        VALUES ($1,$2,$3,$4,$5,$6)`

	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx, query,
		assignment.ID,
		assignment.VolunteerID,
		assignment.RequestID,
		assignment.Status,
		assignment.Notes,
		assignment.AssignedAt,
	)
	return translate(err)
}

func (r *assignmentRepository) GetByID(ctx context.Context, id string) (*domain.Assignment, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	assignment, err := scanAssignment(r.pool.QueryRow(ctx, `SELECT `+assignmentColumns+` FROM volunteer_assignments WHERE id=$1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return assignment, nil
}

func (r *assignmentRepository) UpdateStatus(ctx context.Context, id string, status domain.AssignmentStatus, at time.Time) (*domain.Assignment, error) {
	const update = `
        UPDATE volunteer_assignments
        SET status=$1, completed_at = CASE WHEN $1 = 'COMPLETED' THEN $2::timestamptz ELSE completed_at END
        WHERE id=$3
        RETURNING ` + assignmentColumns
	const fulfill = `UPDATE requests SET status=$1, updated_at=$2 WHERE id=$3`
	if !validID(id) {
		return nil, ErrNotFound
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	assignment, err := scanAssignment(tx.QueryRow(ctx, update, string(status), at, id))
	if err != nil {
		return nil, translate(err)
	}
	if status == domain.AssignmentStatusCompleted {
		if _, err := tx.Exec(ctx, fulfill, domain.RequestStatusFulfilled, at, assignment.RequestID); err != nil {
			return nil, translate(err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (r *assignmentRepository) Exists(ctx context.Context, volunteerID, requestID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM volunteer_assignments WHERE volunteer_id=$1 AND request_id=$2)`
	if !validID(volunteerID) || !validID(requestID) {
		return false, nil
	}
	var exists bool
	err := r.pool.QueryRow(ctx, query, volunteerID, requestID).Scan(&exists)
	return exists, err
}

func (r *assignmentRepository) List(ctx context.Context, filter AssignmentFilter) ([]domain.Assignment, error) {
	p := filter.sql()
	query := `SELECT ` + assignmentColumns + ` FROM volunteer_assignments` + p.where() + ` ORDER BY assigned_at DESC` + p.limit(filter.Limit)

	rows, err := r.pool.Query(ctx, query, p.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []domain.Assignment
	for rows.Next() {
		assignment, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, *assignment)
	}
	return assignments, rows.Err()
}

func (r *assignmentRepository) Count(ctx context.Context, filter AssignmentFilter) (int, error) {
	p := filter.sql()
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM volunteer_assignments`+p.where(), p.args...).Scan(&count)
	return count, err
}

func (r *assignmentRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM volunteer_assignments WHERE id=$1`, id)
	return ignoreMissing(translate(err))
}

func scanAssignment(row pgx.Row) (*domain.Assignment, error) {
	var assignment domain.Assignment
	if err := row.Scan(
		&assignment.ID,
		&assignment.VolunteerID,
		&assignment.RequestID,
		&assignment.Status,
		&assignment.Notes,
		&assignment.AssignedAt,
		&assignment.CompletedAt,
	); err != nil {
		return nil, err
	}
	return &assignment, nil
}
