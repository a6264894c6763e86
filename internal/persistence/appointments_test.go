package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/salon-booking-service/internal/config"
	"github.com/spec-kit/salon-booking-service/internal/domain"
)

func newTestPersister(t *testing.T) (*AppointmentPersister, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	r := NewRedis(config.RedisConfig{Addr: mr.Addr()}, zap.NewNop())
	t.Cleanup(r.Close)
	return NewAppointmentPersister(r, "salon:appointments", zap.NewNop()), mr
}

func TestAppointmentPersister_RoundTrip(t *testing.T) {
	persister, _ := newTestPersister(t)
	ctx := context.Background()

	appointments := []domain.Appointment{
		{
			ID:            "a1",
			ServiceIDs:    []string{"svc-haircut", "svc-color"},
			StaffID:       "staff-anna",
			Date:          "2026-09-01",
			Time:          "10:00",
			TotalDuration: 120,
			TotalPrice:    165,
			ClientName:    "Jo Client",
			Phone:         "5551234567",
			Status:        domain.AppointmentStatusConfirmed,
			CreatedAt:     time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC),
		},
	}
	require.NoError(t, persister.Save(ctx, appointments))

	loaded, err := persister.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, appointments, loaded)
}

func TestAppointmentPersister_MissingKeyLoadsEmpty(t *testing.T) {
	persister, _ := newTestPersister(t)

	loaded, err := persister.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, loaded)
}

func TestAppointmentPersister_CorruptDataLoadsEmpty(t *testing.T) {
	persister, mr := newTestPersister(t)
	require.NoError(t, mr.Set("salon:appointments", "{not json"))

	loaded, err := persister.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, loaded)
}

func TestAppointmentPersister_SaveOverwrites(t *testing.T) {
	persister, _ := newTestPersister(t)
	ctx := context.Background()

	require.NoError(t, persister.Save(ctx, []domain.Appointment{{ID: "a1"}, {ID: "a2"}}))
	require.NoError(t, persister.Save(ctx, []domain.Appointment{{ID: "a2"}}))

	loaded, err := persister.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Equal(t, "a2", loaded[0].ID)
}

func TestAppointmentPersister_ConnectionErrorSurfaces(t *testing.T) {
	persister, mr := newTestPersister(t)
	mr.Close()

	_, err := persister.Load(context.Background())
	require.Error(t, err)
	require.Error(t, persister.Save(context.Background(), nil))
}
