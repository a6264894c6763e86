package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStaticProvider_Catalog(t *testing.T) {
	p := NewStaticProvider()
	ctx := context.Background()

	services, err := p.Services(ctx)
	require.NoError(t, err)
	require.Len(t, services, 8)

	staff, err := p.Staff(ctx)
	require.NoError(t, err)
	require.Len(t, staff, 4)

	svc, err := p.ServiceByID(ctx, "2")
	require.NoError(t, err)
	require.Equal(t, "Hair Coloring", svc.Name)
	require.Equal(t, 120, svc.Duration)

	member, err := p.StaffByID(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, "Anna Smith", member.Name)

	_, err = p.ServiceByID(ctx, "999")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = p.StaffByID(ctx, "999")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStaticProvider_ListsAreCopies(t *testing.T) {
	p := NewStaticProvider()
	ctx := context.Background()

	services, err := p.Services(ctx)
	require.NoError(t, err)
	services[0].Name = "mutated"

	again, err := p.Services(ctx)
	require.NoError(t, err)
	require.Equal(t, "Haircut & Styling", again[0].Name)
}
