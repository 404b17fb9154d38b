package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zhiyu/internal/models"
	"zhiyu/internal/providers"
	"zhiyu/internal/store"
	"zhiyu/internal/structures"
	"zhiyu/internal/testutil"
)

func newAuthEngine(t *testing.T) *store.Engine {
	t.Helper()

	engine := store.NewEngine(&structures.Config{}, store.NewMemorySubstrate(), &testutil.MockLogger{}, testutil.NewMockMetrics())
	accounts := store.NewCollection[models.Account](engine, store.CollectionAccounts)
	ctx := context.Background()
	require.NoError(t, accounts.Create(ctx, models.Account{ID: "u_1", Username: "admin", DisplayName: "System Admin", Role: models.RoleAdmin, Status: models.StatusActive}))
	require.NoError(t, accounts.Create(ctx, models.Account{ID: "u_2", Username: "fisher", DisplayName: "Veteran Angler", Role: models.RoleUser, Status: models.StatusActive}))
	require.NoError(t, accounts.Create(ctx, models.Account{ID: "u_3", Username: "banned", Status: models.StatusBanned}))
	return engine
}

func TestLogin_KnownUser(t *testing.T) {
	engine := newAuthEngine(t)
	bus := providers.NewBusProvider()
	auth := NewAuthService(engine, bus, &testutil.MockLogger{})

	var events []providers.AuthChangedEvent
	bus.SubscribeAuthChanged(func(e providers.AuthChangedEvent) { events = append(events, e) })

	account, err := auth.Login(context.Background(), "fisher")
	require.NoError(t, err)
	assert.Equal(t, "u_2", account.ID)

	current, ok := auth.Current()
	require.True(t, ok)
	assert.Equal(t, "fisher", current.Username)

	require.Len(t, events, 1)
	require.NotNil(t, events[0].Account)
	assert.Equal(t, "u_2", events[0].Account.ID)
}

func TestLogin_UnknownUser(t *testing.T) {
	auth := NewAuthService(newAuthEngine(t), providers.NewBusProvider(), &testutil.MockLogger{})

	_, err := auth.Login(context.Background(), "stranger")
	assert.ErrorIs(t, err, ErrUnknownUser)

	_, ok := auth.Current()
	assert.False(t, ok)
}

func TestLogin_BannedUser(t *testing.T) {
	auth := NewAuthService(newAuthEngine(t), providers.NewBusProvider(), &testutil.MockLogger{})

	_, err := auth.Login(context.Background(), "banned")
	assert.ErrorIs(t, err, ErrAccountBanned)
}

func TestSession_SurvivesServiceRestart(t *testing.T) {
	engine := newAuthEngine(t)
	bus := providers.NewBusProvider()
	logger := &testutil.MockLogger{}

	auth := NewAuthService(engine, bus, logger)
	_, err := auth.Login(context.Background(), "fisher")
	require.NoError(t, err)

	// A fresh service over the same engine restores the persisted session.
	restarted := NewAuthService(engine, bus, logger)
	current, ok := restarted.Current()
	require.True(t, ok)
	assert.Equal(t, "u_2", current.ID)
}

func TestLogout_ClearsSession(t *testing.T) {
	engine := newAuthEngine(t)
	bus := providers.NewBusProvider()
	auth := NewAuthService(engine, bus, &testutil.MockLogger{})

	_, err := auth.Login(context.Background(), "fisher")
	require.NoError(t, err)

	var last *providers.AuthChangedEvent
	bus.SubscribeAuthChanged(func(e providers.AuthChangedEvent) { last = &e })

	require.NoError(t, auth.Logout())

	_, ok := auth.Current()
	assert.False(t, ok)
	require.NotNil(t, last)
	assert.Nil(t, last.Account)

	restarted := NewAuthService(engine, bus, &testutil.MockLogger{})
	_, ok = restarted.Current()
	assert.False(t, ok)
}

func TestUpdateProfile(t *testing.T) {
	engine := newAuthEngine(t)
	auth := NewAuthService(engine, providers.NewBusProvider(), &testutil.MockLogger{})
	ctx := context.Background()

	_, err := auth.Login(ctx, "fisher")
	require.NoError(t, err)

	updated, err := auth.UpdateProfile(ctx, "Night Angler", "avatar_3")
	require.NoError(t, err)
	assert.Equal(t, "Night Angler", updated.DisplayName)
	assert.Equal(t, "avatar_3", updated.Avatar)

	// Empty arguments leave fields untouched.
	updated, err = auth.UpdateProfile(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, "Night Angler", updated.DisplayName)
	assert.Equal(t, "avatar_3", updated.Avatar)

	accounts := store.NewCollection[models.Account](engine, store.CollectionAccounts)
	stored, found, err := accounts.FindByID(ctx, "u_2")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Night Angler", stored.DisplayName)
}

func TestUpdateProfile_RequiresSession(t *testing.T) {
	auth := NewAuthService(newAuthEngine(t), providers.NewBusProvider(), &testutil.MockLogger{})

	_, err := auth.UpdateProfile(context.Background(), "Name", "")
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}
