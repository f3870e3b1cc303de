package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/membership-service/internal/domain"
)

// ErrAlreadyApproved signals a repeated approval attempt on the same form.
var ErrAlreadyApproved = errors.New("form already approved")

// FormRepository defines persistence access for join forms.
type FormRepository interface {
	// List returns forms newest first. A non-nil organization restricts the
	// result to that organization inside the query itself, so rows for other
	// organizations never leave the store.
	List(ctx context.Context, organization *string) ([]domain.JoinForm, error)
	GetByID(ctx context.Context, id string) (*domain.JoinForm, error)
	// Approve atomically creates the person record and flips the form's
	// approval fields. Concurrent calls on the same id are serialized by the
	// row lock; exactly one succeeds, the rest get ErrAlreadyApproved.
	Approve(ctx context.Context, id string) (*domain.Person, error)
}

type formRepository struct {
	pool *pgxpool.Pool
}

// NewFormRepository returns a Postgres-backed implementation.
func NewFormRepository(pool *pgxpool.Pool) FormRepository {
	return &formRepository{pool: pool}
}

const formColumns = `id, first_name, middle_name, last_name, email, phone,
        organization_to_join, department, position, message,
        approved, approved_at, person_id, created_at, updated_at`

func scanForm(row pgx.Row, form *domain.JoinForm) error {
	return row.Scan(
		&form.ID,
		&form.FirstName,
		&form.MiddleName,
		&form.LastName,
		&form.Email,
		&form.Phone,
		&form.OrganizationToJoin,
		&form.Department,
		&form.Position,
		&form.Message,
		&form.Approved,
		&form.ApprovedAt,
		&form.PersonID,
		&form.CreatedAt,
		&form.UpdatedAt,
	)
}

func (r *formRepository) List(ctx context.Context, organization *string) ([]domain.JoinForm, error) {
	query := `SELECT ` + formColumns + ` FROM join_forms ORDER BY created_at DESC`
	args := []any{}
	if organization != nil {
		query = `SELECT ` + formColumns + ` FROM join_forms
        WHERE organization_to_join=$1 ORDER BY created_at DESC`
		args = append(args, *organization)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	forms := make([]domain.JoinForm, 0)
	for rows.Next() {
		var form domain.JoinForm
		if err := scanForm(rows, &form); err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
	return forms, rows.Err()
}

func (r *formRepository) GetByID(ctx context.Context, id string) (*domain.JoinForm, error) {
	const query = `SELECT ` + formColumns + ` FROM join_forms WHERE id=$1`

	var form domain.JoinForm
	if err := scanForm(r.pool.QueryRow(ctx, query, id), &form); err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *formRepository) Approve(ctx context.Context, id string) (*domain.Person, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const lockQuery = `SELECT ` + formColumns + ` FROM join_forms WHERE id=$1 FOR UPDATE`

	var form domain.JoinForm
	if err := scanForm(tx.QueryRow(ctx, lockQuery, id), &form); err != nil {
		return nil, err
	}
	if form.Approved {
		return nil, ErrAlreadyApproved
	}

	const insertPerson = `
        INSERT INTO persons (first_name, last_name, email, phone, affiliated_organization, join_date)
        VALUES ($1, $2, $3, $4, $5, NOW())
        RETURNING id, join_date`

	person := domain.Person{
		FirstName:              form.FirstName,
		LastName:               form.LastName,
		Email:                  form.Email,
		Phone:                  form.Phone,
		AffiliatedOrganization: form.OrganizationToJoin,
	}
	if err := tx.QueryRow(ctx, insertPerson,
		person.FirstName,
		person.LastName,
		person.Email,
		person.Phone,
		person.AffiliatedOrganization,
	).Scan(&person.ID, &person.JoinDate); err != nil {
		return nil, err
	}

	const approveForm = `
        UPDATE join_forms
        SET approved=TRUE, approved_at=NOW(), person_id=$1, updated_at=NOW()
        WHERE id=$2 AND approved=FALSE`

	cmd, err := tx.Exec(ctx, approveForm, person.ID, form.ID)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, ErrAlreadyApproved
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &person, nil
}
