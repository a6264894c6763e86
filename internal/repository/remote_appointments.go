package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/salon-booking-service/internal/domain"
)

// RemoteAppointmentSource fetches the back-office appointment feed used only
// for the startup reconciliation merge.
type RemoteAppointmentSource interface {
	FetchAppointments(ctx context.Context) ([]domain.Appointment, error)
}

type pgRemoteSource struct {
	pool *pgxpool.Pool
}

// NewRemoteAppointmentSource builds a postgres-backed remote source.
func NewRemoteAppointmentSource(pool *pgxpool.Pool) RemoteAppointmentSource {
	return &pgRemoteSource{pool: pool}
}

func (r *pgRemoteSource) FetchAppointments(ctx context.Context) ([]domain.Appointment, error) {
	const query = `
        SELECT id, service_ids, staff_id, date, start_time, total_duration, total_price,
               client_name, phone, email, notes, status, created_at
        FROM appointments ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointments(rows)
}

func scanAppointments(rows pgx.Rows) ([]domain.Appointment, error) {
	var result []domain.Appointment
	for rows.Next() {
		var appt domain.Appointment
		if err := rows.Scan(
			&appt.ID,
			&appt.ServiceIDs,
			&appt.StaffID,
			&appt.Date,
			&appt.Time,
			&appt.TotalDuration,
			&appt.TotalPrice,
			&appt.ClientName,
			&appt.Phone,
			&appt.Email,
			&appt.Notes,
			&appt.Status,
			&appt.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, appt)
	}
	return result, rows.Err()
}
