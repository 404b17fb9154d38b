package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zhiyu/internal/models"
)

func TestBootstrap_SeedsFreshStore(t *testing.T) {
	engine, _ := newTestEngine(0)
	ctx := context.Background()

	require.NoError(t, NewBootstrapper(engine, engine.logger).Bootstrap(ctx))

	accounts, err := NewCollection[models.Account](engine, CollectionAccounts).List(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "u_1", accounts[0].ID)
	assert.Equal(t, models.RoleAdmin, accounts[0].Role)
	assert.Equal(t, "u_2", accounts[1].ID)
	assert.Equal(t, models.RoleUser, accounts[1].Role)
	assert.Equal(t, models.StatusActive, accounts[1].Status)

	gear, err := NewCollection[models.GearSet](engine, CollectionGearSets).List(ctx)
	require.NoError(t, err)
	require.Len(t, gear, 2)
	assert.Equal(t, "u_2", gear[0].OwnerID)
	assert.NotEmpty(t, gear[0].Rod)

	spots, err := NewCollection[models.FishingSpot](engine, CollectionSpots).List(ctx)
	require.NoError(t, err)
	assert.Len(t, spots, 2)

	messages, err := NewCollection[models.SystemMessage](engine, CollectionMessages).List(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "m_1", messages[0].ID)
	assert.Equal(t, models.SeveritySuccess, messages[0].Severity)

	// Records collection exists but starts empty.
	_, ok, err := engine.substrate.Get(CollectionRecords)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBootstrap_SkipsPopulatedStore(t *testing.T) {
	engine, _ := newTestEngine(0)
	ctx := context.Background()

	accounts := NewCollection[models.Account](engine, CollectionAccounts)
	require.NoError(t, accounts.Create(ctx, models.Account{ID: "u_9", Username: "existing"}))

	b := NewBootstrapper(engine, engine.logger)
	require.NoError(t, b.Bootstrap(ctx))

	got, err := accounts.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "u_9", got[0].ID)
}

func TestBootstrap_Idempotent(t *testing.T) {
	engine, _ := newTestEngine(0)
	ctx := context.Background()

	b := NewBootstrapper(engine, engine.logger)
	require.NoError(t, b.Bootstrap(ctx))
	require.NoError(t, b.Bootstrap(ctx))

	accounts, err := NewCollection[models.Account](engine, CollectionAccounts).List(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
}

