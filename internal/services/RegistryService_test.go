package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zhiyu/internal/models"
	"zhiyu/internal/store"
	"zhiyu/internal/structures"
	"zhiyu/internal/testutil"
)

func newRegistry(t *testing.T) RegistryServiceInterface {
	t.Helper()
	engine := store.NewEngine(&structures.Config{}, store.NewMemorySubstrate(), &testutil.MockLogger{}, testutil.NewMockMetrics())
	return NewRegistryService(engine, &testutil.MockLogger{})
}

func TestGearRegistry_CRUD(t *testing.T) {
	r := newRegistry(t)
	ctx := context.Background()

	created, err := r.CreateGear(ctx, models.GearSet{OwnerID: "u_2", Name: "Combo", Rod: "A1", Line: "C1", Hook: "D1"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, found, err := r.GearByID(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Combo", got.Name)

	updated, found, err := r.UpdateGear(ctx, created.ID, func(g *models.GearSet) { g.Reel = "B9" })
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "B9", updated.Reel)
	assert.Equal(t, "A1", updated.Rod)

	removed, err := r.DeleteGear(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	_, found, err = r.GearByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGearRegistry_ValidatesRequiredFields(t *testing.T) {
	r := newRegistry(t)
	ctx := context.Background()

	_, err := r.CreateGear(ctx, models.GearSet{Name: "No Owner"})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = r.CreateGear(ctx, models.GearSet{OwnerID: "u_2"})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestGearRegistry_KeepsExplicitID(t *testing.T) {
	r := newRegistry(t)
	ctx := context.Background()

	created, err := r.CreateGear(ctx, models.GearSet{ID: "g_7", OwnerID: "u_2", Name: "Named"})
	require.NoError(t, err)
	assert.Equal(t, "g_7", created.ID)

	_, err = r.CreateGear(ctx, models.GearSet{ID: "g_7", OwnerID: "u_2", Name: "Clash"})
	assert.ErrorIs(t, err, store.ErrDuplicateID)
}

func TestGearRegistry_MyGearFiltersByOwner(t *testing.T) {
	r := newRegistry(t)
	ctx := context.Background()

	_, err := r.CreateGear(ctx, models.GearSet{OwnerID: "u_2", Name: "Mine"})
	require.NoError(t, err)
	_, err = r.CreateGear(ctx, models.GearSet{OwnerID: "u_9", Name: "Theirs"})
	require.NoError(t, err)

	mine, err := r.MyGear(ctx, "u_2")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Mine", mine[0].Name)
}

func TestSpotRegistry_CRUD(t *testing.T) {
	r := newRegistry(t)
	ctx := context.Background()

	created, err := r.CreateSpot(ctx, models.FishingSpot{OwnerID: "u_2", Name: "Pond", Category: "pay pond"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	updated, found, err := r.UpdateSpot(ctx, created.ID, func(s *models.FishingSpot) { s.Category = "wild" })
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "wild", updated.Category)

	spots, err := r.MySpots(ctx, "u_2")
	require.NoError(t, err)
	require.Len(t, spots, 1)

	removed, err := r.DeleteSpot(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = r.DeleteSpot(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestSpotRegistry_ValidatesRequiredFields(t *testing.T) {
	r := newRegistry(t)

	_, err := r.CreateSpot(context.Background(), models.FishingSpot{OwnerID: "u_2"})
	assert.ErrorIs(t, err, ErrMissingFields)
}
