package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/membership-service/internal/domain"
)

// PersonRepository defines read access to confirmed members. Persons are
// only ever created inside the approve transaction.
type PersonRepository interface {
	ListByOrganization(ctx context.Context, organization string) ([]domain.Person, error)
}

type personRepository struct {
	pool *pgxpool.Pool
}

// NewPersonRepository returns a Postgres-backed implementation.
func NewPersonRepository(pool *pgxpool.Pool) PersonRepository {
	return &personRepository{pool: pool}
}

func (r *personRepository) ListByOrganization(ctx context.Context, organization string) ([]domain.Person, error) {
	const query = `
        SELECT id, first_name, last_name, email, phone, affiliated_organization, join_date
        FROM persons
        WHERE affiliated_organization=$1
        ORDER BY join_date DESC`

	rows, err := r.pool.Query(ctx, query, organization)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	persons := make([]domain.Person, 0)
	for rows.Next() {
		var person domain.Person
		if err := rows.Scan(
			&person.ID,
			&person.FirstName,
			&person.LastName,
			&person.Email,
			&person.Phone,
			&person.AffiliatedOrganization,
			&person.JoinDate,
		); err != nil {
			return nil, err
		}
		persons = append(persons, person)
	}
	return persons, rows.Err()
}
