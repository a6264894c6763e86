package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/salon-booking-service/internal/domain"
)

// AppointmentPersister stores the full appointment list as a single JSON
// value under one key, the server-side analog of the browser storage the
// booking UI used. Missing or corrupt data loads as an empty list so a bad
// blob can never take the booking engine down.
type AppointmentPersister struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

// NewAppointmentPersister builds a persister on top of the shared Redis wrapper.
func NewAppointmentPersister(r *Redis, key string, logger *zap.Logger) *AppointmentPersister {
	return &AppointmentPersister{client: r.Client, key: key, logger: logger}
}

// Load reads the persisted appointment list.
func (p *AppointmentPersister) Load(ctx context.Context) ([]domain.Appointment, error) {
	raw, err := p.client.Get(ctx, p.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []domain.Appointment{}, nil
	}
	if err != nil {
		return nil, err
	}

	var appointments []domain.Appointment
	if err := json.Unmarshal(raw, &appointments); err != nil {
		p.logger.Warn("persisted appointment data corrupt; treating as empty", zap.Error(err))
		return []domain.Appointment{}, nil
	}
	return appointments, nil
}

// Save writes the full appointment list back.
func (p *AppointmentPersister) Save(ctx context.Context, appointments []domain.Appointment) error {
	raw, err := json.Marshal(appointments)
	if err != nil {
		return err
	}
	return p.client.Set(ctx, p.key, raw, 0).Err()
}
