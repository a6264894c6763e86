package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/salon-booking-service/internal/domain"
)

// PostgresProvider reads the catalog from the back-office database.
type PostgresProvider struct {
	pool *pgxpool.Pool
}

// NewPostgresProvider instantiates the provider.
func NewPostgresProvider(pool *pgxpool.Pool) *PostgresProvider {
	return &PostgresProvider{pool: pool}
}

// Services returns all catalog services.
func (p *PostgresProvider) Services(ctx context.Context) ([]domain.Service, error) {
	const query = `SELECT id, name, description, price, duration, category FROM services ORDER BY id`
	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Service
	for rows.Next() {
		var svc domain.Service
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.Description, &svc.Price, &svc.Duration, &svc.Category); err != nil {
			return nil, err
		}
		result = append(result, svc)
	}
	return result, rows.Err()
}

// ServiceByID returns a single service or ErrNotFound.
func (p *PostgresProvider) ServiceByID(ctx context.Context, id string) (*domain.Service, error) {
	const query = `SELECT id, name, description, price, duration, category FROM services WHERE id=$1`
	var svc domain.Service
	err := p.pool.QueryRow(ctx, query, id).Scan(&svc.ID, &svc.Name, &svc.Description, &svc.Price, &svc.Duration, &svc.Category)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

// Staff returns all staff members.
func (p *PostgresProvider) Staff(ctx context.Context) ([]domain.StaffMember, error) {
	const query = `SELECT id, name, specialty, experience, bio FROM staff_members ORDER BY id`
	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StaffMember
	for rows.Next() {
		var member domain.StaffMember
		if err := rows.Scan(&member.ID, &member.Name, &member.Specialty, &member.Experience, &member.Bio); err != nil {
			return nil, err
		}
		result = append(result, member)
	}
	return result, rows.Err()
}

// StaffByID returns a single staff member or ErrNotFound.
func (p *PostgresProvider) StaffByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	const query = `SELECT id, name, specialty, experience, bio FROM staff_members WHERE id=$1`
	var member domain.StaffMember
	err := p.pool.QueryRow(ctx, query, id).Scan(&member.ID, &member.Name, &member.Specialty, &member.Experience, &member.Bio)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}
